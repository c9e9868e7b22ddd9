// Package ai implements the GitHub Models chat-completion backend.
//
// A single HTTP-based backend satisfies ports.Backend. Token resolution and
// model selection live in TokenSource and Factory so no package-level mutable
// state is needed; the factory is constructed once per process invocation and
// threaded through the command handlers.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

const (
	defaultEndpoint   = "https://models.github.ai/inference/chat/completions"
	httpClientTimeout = 120 * time.Second

	requestTemperature = 0.4
	requestMaxTokens   = 2048
)

// modelsBackend talks to the GitHub Models API.
type modelsBackend struct {
	endpoint   string
	model      string
	tokens     *TokenSource
	httpClient *http.Client
}

func newModelsBackend(endpoint, model string, tokens *TokenSource, client *http.Client) *modelsBackend {
	return &modelsBackend{
		endpoint:   endpoint,
		model:      model,
		tokens:     tokens,
		httpClient: client,
	}
}

func (b *modelsBackend) Name() string {
	return fmt.Sprintf("GitHub Models API (%s)", b.model)
}

// IsAvailable reports whether a token can be resolved. It does not validate
// the token against the remote service.
func (b *modelsBackend) IsAvailable() bool {
	_, ok := b.tokens.Resolve(context.Background())
	return ok
}

// Ask wraps a single user message (and optional system message) into the
// AskMessages contract.
func (b *modelsBackend) Ask(ctx context.Context, prompt, systemPrompt string) (string, error) {
	var messages []domain.Message
	if systemPrompt != "" {
		messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	}
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: prompt})
	return b.AskMessages(ctx, messages)
}

type chatRequest struct {
	Messages    []domain.Message `json:"messages"`
	Model       string           `json:"model"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

type chatResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AskMessages performs a single synchronous call to the chat-completion
// endpoint. A non-200 response or a malformed body fails with a BackendError;
// no retry is attempted.
func (b *modelsBackend) AskMessages(ctx context.Context, messages []domain.Message) (string, error) {
	token, ok := b.tokens.Resolve(ctx)
	if !ok {
		return "", ErrBackendNotAvailable
	}

	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		Model:       b.model,
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", &BackendError{Diagnostic: truncateDiagnostic(err.Error())}
	}
	defer resp.Body.Close()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return "", &BackendError{Diagnostic: truncateDiagnostic("read response body: " + err.Error())}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{Status: resp.StatusCode, Diagnostic: truncateDiagnostic(raw.String())}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw.Bytes(), &parsed); err != nil {
		return "", &BackendError{Diagnostic: truncateDiagnostic("failed to parse API response: " + err.Error())}
	}
	if parsed.Error != nil {
		return "", &BackendError{Diagnostic: truncateDiagnostic(parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 {
		return "", &BackendError{Diagnostic: "failed to parse API response: no choices returned"}
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

var _ ports.Backend = (*modelsBackend)(nil)
