package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/factgraph/internal/analysis"
	"github.com/specialistvlad/factgraph/internal/config"
	"github.com/specialistvlad/factgraph/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	analyzer *analysis.Analyzer

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Each App owns an
// isolated logger.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		analyzer: analysis.New(cfg.WorkerCount),
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads the build files of the workspace.
func (a *App) Load(ctx context.Context) (*config.Model, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading build files...", "root", a.config.Root)

	m, err := a.loader.Load(ctx, a.config.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to load build files: %w", err)
	}
	logger.Info("Build files loaded.", "files", len(m.Files), "targets", len(m.Targets))
	return m, nil
}

// Run loads the workspace and analyzes every target. When a target fails
// the partial result is returned together with the error.
func (a *App) Run(ctx context.Context) (*analysis.Result, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	m, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(m.Targets) == 0 {
		logger.Warn("No targets found, analysis not required.")
	}

	res, err := a.analyzer.Run(ctx, m)
	if err != nil {
		return res, fmt.Errorf("analysis failed: %w", err)
	}

	logger.Debug("App.Run method finished.")
	return res, nil
}
