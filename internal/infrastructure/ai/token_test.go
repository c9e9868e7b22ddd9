package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTokenSourceResolutionOrder(t *testing.T) {
	env := map[string]string{"GITHUB_TOKEN": "from-env"}
	ghCalled := false
	source := &TokenSource{
		lookupEnv: func(name string) string { return env[name] },
		ghToken: func(context.Context) (string, error) {
			ghCalled = true
			return "from-gh", nil
		},
	}

	token, ok := source.Resolve(context.Background())
	if !ok || token != "from-env" {
		t.Fatalf("Resolve() = %q, %v", token, ok)
	}
	if ghCalled {
		t.Fatal("gh CLI consulted although environment had a token")
	}
}

func TestTokenSourceFallsBackToGhAndCaches(t *testing.T) {
	calls := 0
	source := &TokenSource{
		lookupEnv: func(string) string { return "" },
		ghToken: func(context.Context) (string, error) {
			calls++
			return "gh-token", nil
		},
	}

	for i := 0; i < 3; i++ {
		token, ok := source.Resolve(context.Background())
		if !ok || token != "gh-token" {
			t.Fatalf("Resolve() = %q, %v", token, ok)
		}
	}
	if calls != 1 {
		t.Fatalf("gh invoked %d times, want cached after first resolution", calls)
	}
}

func TestTokenSourceUnavailable(t *testing.T) {
	source := &TokenSource{
		lookupEnv: func(string) string { return "" },
		ghToken:   func(context.Context) (string, error) { return "", errors.New("no gh") },
	}
	if _, ok := source.Resolve(context.Background()); ok {
		t.Fatal("Resolve() succeeded with no credential source")
	}
}

func TestFactorySetModelInvalidatesCachedBackend(t *testing.T) {
	factory := NewFactory("openai/gpt-4o-mini")
	factory.tokens = stubTokens("t")

	first, err := factory.Backend()
	if err != nil {
		t.Fatalf("Backend() error = %v", err)
	}
	if !strings.Contains(first.Name(), "openai/gpt-4o-mini") {
		t.Fatalf("Name() = %q", first.Name())
	}

	again, err := factory.Backend()
	if err != nil {
		t.Fatalf("Backend() error = %v", err)
	}
	if again != first {
		t.Fatal("backend not cached between calls")
	}

	factory.SetModel("deepseek/DeepSeek-R1")
	fresh, err := factory.Backend()
	if err != nil {
		t.Fatalf("Backend() error = %v", err)
	}
	if fresh == first {
		t.Fatal("SetModel did not invalidate cached backend")
	}
	if !strings.Contains(fresh.Name(), "deepseek/DeepSeek-R1") {
		t.Fatalf("Name() = %q, want new model", fresh.Name())
	}
}

func TestFactoryBackendUnavailableWithoutToken(t *testing.T) {
	factory := NewFactory("")
	factory.tokens = stubTokens("")
	if _, err := factory.Backend(); !errors.Is(err, ErrBackendNotAvailable) {
		t.Fatalf("error = %v, want ErrBackendNotAvailable", err)
	}
}
