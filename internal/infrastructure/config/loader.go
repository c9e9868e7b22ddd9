// Package config loads YAML configuration with environment overrides.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.xplain/config.yaml (overridable
// via XPLAIN_CONFIG). Environment variables XPLAIN_LANG, XPLAIN_MODEL and
// XPLAIN_VERBOSE win over file values.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return applyEnvOverrides(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return applyEnvOverrides(hydrateDefaults(cfg)), nil
}

// Path returns the resolved config file location (config command display).
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("XPLAIN_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".xplain", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Language:            domain.DefaultLanguage,
		Model:               domain.DefaultModel,
		History: domain.HistorySettings{
			Backend:    domain.HistoryBackendJSON,
			MaxEntries: domain.DefaultMaxHistoryEntries,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Language == "" {
		cfg.Language = domain.DefaultLanguage
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultModel
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendJSON
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = domain.DefaultMaxHistoryEntries
	}
	return cfg
}

func applyEnvOverrides(cfg domain.Config) domain.Config {
	if lang := os.Getenv("XPLAIN_LANG"); lang != "" {
		cfg.Language = lang
	}
	if model := os.Getenv("XPLAIN_MODEL"); model != "" {
		cfg.Model = model
	}
	if verbose := os.Getenv("XPLAIN_VERBOSE"); verbose != "" {
		cfg.Verbose = strings.EqualFold(verbose, "true") || verbose == "1"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
