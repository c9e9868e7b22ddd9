package ai

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

const ghTokenTimeout = 10 * time.Second

// TokenSource resolves a GitHub bearer token from the environment or the gh
// CLI, caching the first successful resolution for the rest of the process.
// Credential rotation mid-process is not observed.
type TokenSource struct {
	lookupEnv func(string) string
	ghToken   func(context.Context) (string, error)

	cached string
}

// NewTokenSource builds a token source using the real environment and gh CLI.
func NewTokenSource() *TokenSource {
	return &TokenSource{
		lookupEnv: os.Getenv,
		ghToken:   ghAuthToken,
	}
}

// Resolve returns the bearer token, or false when no credential is available.
// Resolution order: GH_TOKEN, GITHUB_TOKEN, then `gh auth token`.
func (t *TokenSource) Resolve(ctx context.Context) (string, bool) {
	if t.cached != "" {
		return t.cached, true
	}

	for _, name := range []string{"GH_TOKEN", "GITHUB_TOKEN"} {
		if token := t.lookupEnv(name); token != "" {
			t.cached = token
			return token, true
		}
	}

	token, err := t.ghToken(ctx)
	if err != nil || token == "" {
		return "", false
	}
	t.cached = token
	return token, true
}

func ghAuthToken(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, ghTokenTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GhInstalled reports whether the GitHub CLI is on PATH (check command).
func GhInstalled() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}
