package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecuteCapturesExitCodeAndStderr(t *testing.T) {
	e := NewShellExecutor("/bin/sh")
	result := e.Execute(context.Background(), "echo out; echo err >&2; exit 3")

	if result.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", result.ExitCode)
	}
	if strings.TrimSpace(result.Stdout) != "out" || strings.TrimSpace(result.Stderr) != "err" {
		t.Fatalf("captured output = %q / %q", result.Stdout, result.Stderr)
	}
}

func TestExecuteSuccess(t *testing.T) {
	e := NewShellExecutor("/bin/sh")
	result := e.Execute(context.Background(), "true")
	if result.ExitCode != 0 || result.TimedOut {
		t.Fatalf("result = %+v", result)
	}
}

func TestCountDiffStats(t *testing.T) {
	diff := strings.Join([]string{
		"diff --git a/main.go b/main.go",
		"--- a/main.go",
		"+++ b/main.go",
		"+added line",
		"+another added",
		"-removed line",
		" context",
		"diff --git a/other.go b/other.go",
		"--- a/other.go",
		"+++ b/other.go",
		"+x",
	}, "\n")

	stats := CountDiffStats(diff)
	if stats.FilesChanged != 2 || stats.Additions != 3 || stats.Deletions != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestTruncateDiff(t *testing.T) {
	small, truncated := TruncateDiff("short diff")
	if truncated || small != "short diff" {
		t.Fatalf("small diff modified: %q %v", small, truncated)
	}

	big := strings.Repeat("x", MaxDiffChars+100)
	out, truncated := TruncateDiff(big)
	if !truncated {
		t.Fatal("oversized diff not truncated")
	}
	if !strings.HasSuffix(out, "... (truncated)") {
		t.Fatalf("missing truncation marker: %q", out[len(out)-30:])
	}
	if len(out) > MaxDiffChars+len("\n\n... (truncated)") {
		t.Fatalf("truncated length = %d", len(out))
	}
}
