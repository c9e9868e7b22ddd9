// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like HTTP clients, storage files, or CLI frameworks.
package ports

import (
	"context"

	"github.com/doeshing/xplain-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.xplain/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Backend is the single external AI chat-completion service explanations are
// delegated to. IsAvailable only checks that a credential can be resolved; it
// never validates the token against the remote service.
type Backend interface {
	Name() string
	IsAvailable() bool
	Ask(ctx context.Context, prompt, systemPrompt string) (string, error)
	AskMessages(ctx context.Context, messages []domain.Message) (string, error)
}

// BackendFactory builds and caches the active backend instance. Setting a new
// model invalidates any cached backend so the next call constructs a fresh one.
type BackendFactory interface {
	Backend() (Backend, error)
	SetModel(model string)
}

// HistoryRepository is the append-only log of past queries and explanations.
// Add trims oldest-first once the retained count exceeds the configured
// maximum. Get uses a 1-based index counting backward from the most recent
// entry.
type HistoryRepository interface {
	Add(commandType domain.CommandType, query, explanation, language string, metadata map[string]any) error
	List(limit int, typeFilter domain.CommandType) ([]domain.HistoryEntry, error)
	Search(query string, limit int) ([]domain.HistoryEntry, error)
	Get(index int) (domain.HistoryEntry, bool)
	Clear() error
	Count() int
	Path() string
}

// CommandExecutor re-runs shell commands to capture fresh output (wtf handler).
type CommandExecutor interface {
	Execute(ctx context.Context, command string) domain.ExecutionResult
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
