package ai

import (
	"errors"
	"fmt"
)

// ErrBackendNotAvailable is returned when no credential can be resolved.
// The message carries remediation steps because it is shown to the user as-is.
var ErrBackendNotAvailable = errors.New(
	"no AI backend available. Please either:\n" +
		"  1. Install GitHub CLI and authenticate:\n" +
		"     brew install gh && gh auth login && gh auth refresh -s copilot\n" +
		"  2. Set a GH_TOKEN or GITHUB_TOKEN environment variable\n" +
		"You also need an active GitHub Copilot subscription")

// maxDiagnosticLen bounds diagnostic payloads so a failing call cannot flood
// the terminal with a full HTML error page.
const maxDiagnosticLen = 300

// BackendError describes a failed backend call: a non-200 status, a transport
// failure, or a response body that did not match the expected shape.
type BackendError struct {
	Status     int
	Diagnostic string
}

func (e *BackendError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("GitHub Models API HTTP %d: %s", e.Status, e.Diagnostic)
	}
	return fmt.Sprintf("GitHub Models API error: %s", e.Diagnostic)
}

func truncateDiagnostic(s string) string {
	if len(s) > maxDiagnosticLen {
		return s[:maxDiagnosticLen]
	}
	return s
}
