package check

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubFactory struct {
	backend ports.Backend
	err     error
}

func (s stubFactory) Backend() (ports.Backend, error) { return s.backend, s.err }
func (s stubFactory) SetModel(string)                 {}

type namedBackend struct{ name string }

func (b namedBackend) Name() string      { return b.name }
func (b namedBackend) IsAvailable() bool { return true }
func (b namedBackend) Ask(context.Context, string, string) (string, error) {
	return "", nil
}
func (b namedBackend) AskMessages(context.Context, []domain.Message) (string, error) {
	return "", nil
}

func TestRunAllHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: domain.Config{Model: "openai/gpt-4o-mini", Language: "en"}},
		Factory:        stubFactory{backend: namedBackend{name: "GitHub Models API (openai/gpt-4o-mini)"}},
		GhInstalled:    func() bool { return true },
		ResolveToken:   func(context.Context) (string, bool) { return "tok", true },
		GitInstalled:   func() bool { return true },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.AllOK() {
		t.Fatalf("AllOK() = false, checks %+v", report.Checks)
	}
	if len(report.Checks) != 5 {
		t.Fatalf("checks = %d, want 5", len(report.Checks))
	}
}

func TestRunReportsMissingToken(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: domain.Config{Model: "m", Language: "en"}},
		Factory:        stubFactory{err: errors.New("no AI backend available")},
		GhInstalled:    func() bool { return false },
		ResolveToken:   func(context.Context) (string, bool) { return "", false },
		GitInstalled:   func() bool { return true },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.AllOK() {
		t.Fatal("AllOK() = true despite missing token and backend")
	}

	var tokenStatus domain.HealthStatus
	for _, check := range report.Checks {
		if check.Name == "GitHub token" {
			tokenStatus = check.Status
		}
	}
	if tokenStatus != domain.HealthError {
		t.Fatalf("token check status = %q, want error", tokenStatus)
	}
}

func TestRunConfigLoadFailureIsTerminal(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("yaml: bad")}}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected config load error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("checks = %+v", report.Checks)
	}
}
