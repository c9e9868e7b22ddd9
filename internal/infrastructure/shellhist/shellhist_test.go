package shellhist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeHistory(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLastFromZshExtendedFormat(t *testing.T) {
	path := writeHistory(t, ".zsh_history",
		": 1700000001:0;git status\n: 1700000002:0;make build && make test\n")

	cmd, ok := lastFromZshFile(path)
	if !ok {
		t.Fatal("no command found")
	}
	if cmd != "make build && make test" {
		t.Fatalf("cmd = %q", cmd)
	}
}

func TestLastFromZshPlainFormat(t *testing.T) {
	path := writeHistory(t, ".zsh_history", "ls -la\ncargo build\n")
	cmd, ok := lastFromZshFile(path)
	if !ok || cmd != "cargo build" {
		t.Fatalf("cmd = %q, %v", cmd, ok)
	}
}

func TestLastFromZshSkipsTrailingBlankLines(t *testing.T) {
	path := writeHistory(t, ".zsh_history", ": 1700000001:0;npm install\n\n\n")
	cmd, ok := lastFromZshFile(path)
	if !ok || cmd != "npm install" {
		t.Fatalf("cmd = %q, %v", cmd, ok)
	}
}

func TestLastFromZshReadsOnlyTailOfLargeFile(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 2000; i++ {
		b.WriteString(": 1700000000:0;echo filler\n")
	}
	b.WriteString(": 1700009999:0;kubectl get pods\n")
	path := writeHistory(t, ".zsh_history", b.String())

	cmd, ok := lastFromZshFile(path)
	if !ok || cmd != "kubectl get pods" {
		t.Fatalf("cmd = %q, %v", cmd, ok)
	}
}

func TestLastFromBash(t *testing.T) {
	path := writeHistory(t, ".bash_history", "cd /tmp\npython app.py\n")
	cmd, ok := lastFromBashFile(path)
	if !ok || cmd != "python app.py" {
		t.Fatalf("cmd = %q, %v", cmd, ok)
	}
}

func TestMissingFile(t *testing.T) {
	if _, ok := lastFromZshFile(filepath.Join(t.TempDir(), "nope")); ok {
		t.Fatal("found command in missing file")
	}
	if _, ok := lastFromBashFile(filepath.Join(t.TempDir(), "nope")); ok {
		t.Fatal("found command in missing file")
	}
}
