package app

import (
	"context"

	"github.com/doeshing/xplain-go/internal/application/check"
	"github.com/doeshing/xplain-go/internal/application/explain"
	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/infrastructure/ai"
	"github.com/doeshing/xplain-go/internal/infrastructure/config"
	"github.com/doeshing/xplain-go/internal/infrastructure/executor"
	"github.com/doeshing/xplain-go/internal/infrastructure/history"
	"github.com/doeshing/xplain-go/internal/pkg/logger"
	"github.com/doeshing/xplain-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Factory        *ai.Factory
	HistoryStore   ports.HistoryRepository
	Executor       ports.CommandExecutor
	ExplainService *explain.Service
	CheckService   *check.Service
}

// BuildContainer constructs the dependency graph. Backend/model/tldr overrides
// from flags are applied by the CLI layer after construction.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose || cfg.Verbose)
	factory := ai.NewFactory(cfg.Model)
	historyStore := buildHistoryStore(cfg, log)
	shellExec := executor.NewShellExecutor("")

	explainService := &explain.Service{
		Factory: factory,
		History: historyStore,
		Logger:  log,
	}

	tokens := ai.NewTokenSource()
	checkService := &check.Service{
		ConfigProvider: cfgLoader,
		Factory:        factory,
		History:        historyStore,
		GhInstalled:    ai.GhInstalled,
		ResolveToken:   tokens.Resolve,
		GitInstalled:   executor.GitInstalled,
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Factory:        factory,
		HistoryStore:   historyStore,
		Executor:       shellExec,
		ExplainService: explainService,
		CheckService:   checkService,
	}, nil
}

// buildHistoryStore selects the configured backend, falling back to the JSON
// store when the sqlite database cannot be opened.
func buildHistoryStore(cfg domain.Config, log ports.Logger) ports.HistoryRepository {
	dir := cfg.History.Dir
	if dir == "" {
		dir = history.DefaultDir()
	}

	if cfg.History.Backend == domain.HistoryBackendSQLite {
		store, err := history.NewSQLiteStore(dir, cfg.History.MaxEntries)
		if err == nil {
			return store
		}
		log.Warn("sqlite history unavailable, falling back to json", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return history.NewJSONStore(dir, cfg.History.MaxEntries)
}
