package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/xplain-go/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != domain.DefaultLanguage || cfg.Model != domain.DefaultModel {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.History.Backend != domain.HistoryBackendJSON || cfg.History.MaxEntries != domain.DefaultMaxHistoryEntries {
		t.Fatalf("history defaults not applied: %+v", cfg.History)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: vi\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "vi" {
		t.Fatalf("language = %q", cfg.Language)
	}
	if cfg.Model != domain.DefaultModel || cfg.History.MaxEntries != domain.DefaultMaxHistoryEntries {
		t.Fatalf("missing fields not hydrated: %+v", cfg)
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: en\nmodel: openai/gpt-4o\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XPLAIN_LANG", "ja")
	t.Setenv("XPLAIN_MODEL", "deepseek/DeepSeek-R1")
	t.Setenv("XPLAIN_VERBOSE", "true")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "ja" || cfg.Model != "deepseek/DeepSeek-R1" || !cfg.Verbose {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("Load() succeeded on malformed YAML")
	}
}
