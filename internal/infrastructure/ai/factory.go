package ai

import (
	"net/http"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

// Factory creates and caches the active backend instance. It holds the
// requested model and the shared HTTP client; SetModel invalidates the cached
// backend so the next request is built for the new model.
type Factory struct {
	httpClient   *http.Client
	tokens       *TokenSource
	endpoint     string
	defaultModel string

	model  string
	cached ports.Backend
}

// NewFactory builds a factory. defaultModel is the config-resolved model used
// until SetModel overrides it; empty falls back to domain.DefaultModel.
func NewFactory(defaultModel string) *Factory {
	if defaultModel == "" {
		defaultModel = domain.DefaultModel
	}
	return &Factory{
		httpClient:   &http.Client{Timeout: httpClientTimeout},
		tokens:       NewTokenSource(),
		endpoint:     defaultEndpoint,
		defaultModel: defaultModel,
	}
}

// SetModel records the requested model and drops any cached backend.
func (f *Factory) SetModel(model string) {
	if model == "" || model == f.model {
		return
	}
	f.model = model
	f.cached = nil
}

// Backend returns the cached backend, constructing one if needed. It fails
// with ErrBackendNotAvailable when no token can be resolved.
func (f *Factory) Backend() (ports.Backend, error) {
	if f.cached != nil {
		return f.cached, nil
	}

	model := f.model
	if model == "" {
		model = f.defaultModel
	}
	backend := newModelsBackend(f.endpoint, model, f.tokens, f.httpClient)
	if !backend.IsAvailable() {
		return nil, ErrBackendNotAvailable
	}
	f.cached = backend
	return backend, nil
}

var _ ports.BackendFactory = (*Factory)(nil)
