// Package explain orchestrates the explanation lifecycle: validate, build a
// prompt, call the backend, persist to history.
package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

// ErrUnsupportedLanguage is a configuration/validation error; handlers report
// it and exit non-zero without calling the backend.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// chatContextWindow bounds how many transcript messages accompany each chat
// turn.
const chatContextWindow = 10

// Service orchestrates a single explanation end-to-end.
type Service struct {
	Factory ports.BackendFactory
	History ports.HistoryRepository
	Logger  ports.Logger

	// TLDR swaps the system prompt for the one-line variant.
	TLDR bool
}

// Request describes one explanation to produce.
type Request struct {
	Kind     Kind
	Input    string
	Context  string
	Filename string
	Ref      string
	ExitCode int
	Language string

	// RecordType is the history entry type; RecordQuery overrides the stored
	// query text (defaults to Input). Metadata is stored as-is.
	RecordType  domain.CommandType
	RecordQuery string
	Metadata    map[string]any
}

// Explain validates the request, asks the backend, and appends a history
// entry. History is only written after a successful backend response; a
// failed append is logged and does not fail the explanation.
func (s *Service) Explain(ctx context.Context, req Request) (string, error) {
	if err := validateLanguage(req.Language); err != nil {
		return "", err
	}

	prompt, err := renderPrompt(req)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	backend, err := s.Factory.Backend()
	if err != nil {
		return "", err
	}

	s.Logger.Debug("calling backend", map[string]interface{}{
		"backend": backend.Name(),
		"kind":    string(req.Kind),
	})

	system := SystemPrompt
	if s.TLDR {
		system = TLDRSystemPrompt
	}
	explanation, err := backend.Ask(ctx, prompt, system)
	if err != nil {
		return "", err
	}

	s.record(req, explanation)
	return explanation, nil
}

// Chat sends one conversation turn with the trailing transcript window as
// context and records it under the chat type.
func (s *Service) Chat(ctx context.Context, message string, transcript []domain.Message, language string, metadata map[string]any) (string, error) {
	if err := validateLanguage(language); err != nil {
		return "", err
	}

	backend, err := s.Factory.Backend()
	if err != nil {
		return "", err
	}

	messages := []domain.Message{{Role: domain.RoleSystem, Content: chatSystemPrompt(language)}}
	if len(transcript) > chatContextWindow {
		transcript = transcript[len(transcript)-chatContextWindow:]
	}
	messages = append(messages, transcript...)
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: message})

	reply, err := backend.AskMessages(ctx, messages)
	if err != nil {
		return "", err
	}

	s.record(Request{
		Input:      message,
		Language:   language,
		RecordType: domain.TypeChat,
		Metadata:   metadata,
	}, reply)
	return reply, nil
}

func (s *Service) record(req Request, explanation string) {
	if s.History == nil || req.RecordType == "" {
		return
	}
	query := req.RecordQuery
	if query == "" {
		query = req.Input
	}
	if err := s.History.Add(req.RecordType, query, explanation, req.Language, req.Metadata); err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
	}
}

func validateLanguage(code string) error {
	if domain.IsSupportedLanguage(code) {
		return nil
	}
	return fmt.Errorf("%w: %s\nSupported: %s",
		ErrUnsupportedLanguage, code, strings.Join(domain.LanguageCodes(), ", "))
}
