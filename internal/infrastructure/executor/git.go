package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	gitDiffTimeout = 30 * time.Second

	// MaxDiffChars bounds the diff text sent to the backend.
	MaxDiffChars = 8000
)

// ErrGitNotInstalled is reported when the git binary is missing from PATH.
var ErrGitNotInstalled = errors.New("git is not installed or not in PATH")

// GitInstalled reports whether git is on PATH (check command).
func GitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// GitDiff shells out to `git diff` and returns the diff text plus a short
// description of what was diffed.
func GitDiff(ctx context.Context, ref string, staged bool) (string, string, error) {
	args := []string{"diff"}
	description := "unstaged changes"
	switch {
	case staged:
		args = append(args, "--staged")
		description = "staged changes"
	case ref != "":
		args = append(args, ref)
		description = fmt.Sprintf("changes from %s", ref)
	}

	ctx, cancel := context.WithTimeout(ctx, gitDiffTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", "", ErrGitNotInstalled
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "failed to run git diff"
		}
		return "", "", fmt.Errorf("git error: %s", msg)
	}

	return strings.TrimSpace(stdout.String()), description, nil
}

// DiffStats summarizes a unified diff.
type DiffStats struct {
	FilesChanged int
	Additions    int
	Deletions    int
}

// CountDiffStats scans diff text for changed files and added/removed lines.
func CountDiffStats(diff string) DiffStats {
	stats := DiffStats{
		FilesChanged: strings.Count(diff, "diff --git"),
	}
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			stats.Additions++
		case strings.HasPrefix(line, "-"):
			stats.Deletions++
		}
	}
	return stats
}

// TruncateDiff caps oversized diffs before they reach the backend.
func TruncateDiff(diff string) (string, bool) {
	if len(diff) <= MaxDiffChars {
		return diff, false
	}
	return diff[:MaxDiffChars] + "\n\n... (truncated)", true
}
