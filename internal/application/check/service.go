// Package check runs environment diagnostics for the check command.
package check

import (
	"context"
	"fmt"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Factory        ports.BackendFactory
	History        ports.HistoryRepository

	// Environment probes, injected so tests can stub them.
	GhInstalled  func() bool
	ResolveToken func(ctx context.Context) (string, bool)
	GitInstalled func() bool
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, model %s, language %s", cfg.Model, cfg.Language)))

	if s.GhInstalled != nil && s.GhInstalled() {
		checks = append(checks, ok("GitHub CLI", "gh found on PATH"))
	} else {
		checks = append(checks, warn("GitHub CLI", "gh not installed; set GH_TOKEN or GITHUB_TOKEN instead"))
	}

	if s.ResolveToken != nil {
		if _, found := s.ResolveToken(ctx); found {
			checks = append(checks, ok("GitHub token", "resolved"))
		} else {
			checks = append(checks, fail("GitHub token", "no token via GH_TOKEN, GITHUB_TOKEN, or gh auth token"))
		}
	}

	if s.Factory != nil {
		if backend, err := s.Factory.Backend(); err == nil {
			checks = append(checks, ok("Backend", backend.Name()))
		} else {
			checks = append(checks, fail("Backend", err.Error()))
		}
	}

	if s.GitInstalled != nil {
		if s.GitInstalled() {
			checks = append(checks, ok("Git", "git found on PATH"))
		} else {
			checks = append(checks, warn("Git", "git not installed; diff explanations unavailable"))
		}
	}

	if s.History != nil {
		checks = append(checks, ok("History store",
			fmt.Sprintf("%d entries at %s", s.History.Count(), s.History.Path())))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
