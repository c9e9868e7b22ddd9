// Package shellhist reads the user's shell history file to find the most
// recent command (wtf handler). zsh and bash formats are supported.
package shellhist

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readTailBytes bounds how much of a large history file is scanned; the last
// command is always within the final few KB.
const readTailBytes = 8192

// LastCommand returns the most recent command from the user's shell history.
// The HISTFILE environment variable overrides the default per-shell location.
func LastCommand() (string, bool) {
	shell := os.Getenv("SHELL")

	if strings.Contains(shell, "zsh") {
		if cmd, ok := lastFromZshFile(zshHistFile()); ok {
			return cmd, true
		}
	}
	if cmd, ok := lastFromBashFile(bashHistFile()); ok {
		return cmd, true
	}
	// $SHELL may be unset or wrong; try zsh regardless.
	return lastFromZshFile(zshHistFile())
}

func zshHistFile() string {
	if path := os.Getenv("HISTFILE"); path != "" {
		return path
	}
	return filepath.Join(userHome(), ".zsh_history")
}

func bashHistFile() string {
	if path := os.Getenv("HISTFILE"); path != "" {
		return path
	}
	return filepath.Join(userHome(), ".bash_history")
}

// lastFromZshFile parses the tail of a zsh history file. Extended history
// lines look like ": 1700000000:0;command".
func lastFromZshFile(path string) (string, bool) {
	data, err := readTail(path)
	if err != nil {
		return "", false
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ": ") {
			if _, cmd, found := strings.Cut(line, ";"); found {
				return strings.TrimSpace(cmd), true
			}
		}
		return line, true
	}
	return "", false
}

func lastFromBashFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(data), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line, true
		}
	}
	return "", false
}

// readTail reads at most readTailBytes from the end of path. zsh history can
// contain arbitrary bytes; invalid UTF-8 is replaced on the way out.
func readTail(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	offset := info.Size() - readTailBytes
	if offset < 0 {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return []byte(strings.ToValidUTF8(string(data), "�")), nil
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
