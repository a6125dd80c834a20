package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/flowkit/internal/ctxlog"
	"github.com/specialistvlad/flowkit/internal/flowfile"
	"github.com/specialistvlad/flowkit/internal/pipeline"
	"github.com/specialistvlad/flowkit/internal/registry"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FlowPath  string
	LogFormat string
	LogLevel  string
}

// NewConfig applies defaults and validates a config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FlowPath == "" {
		return nil, fmt.Errorf("flow path is required")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	steps    []pipeline.Step
}

// New constructs the application: it configures an isolated logger,
// registers the component modules, and loads the flow definition. When no
// modules are passed, the compiled-in core modules are used.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	if err := reg.RegisterModules(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All component modules registered.", "components", reg.Names())

	steps, err := flowfile.Load(ctx, cfg.FlowPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load flow definition: %w", err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		steps:    steps,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run assembles the pipeline and executes it, printing the resulting data
// and context to the application's output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.steps) == 0 {
		a.logger.Warn("No steps found in flow definition, nothing to run.")
		return nil
	}

	pl, err := pipeline.New(ctx, a.registry, a.steps)
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}

	payload, err := pl.Run(ctx, nil)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	a.printPayload(payload)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// printPayload renders the run's observable result: the final datum and
// every context entry.
func (a *App) printPayload(payload *pipeline.Payload) {
	if payload.Data != nil {
		fmt.Fprintf(a.outW, "data = %s\n", formatValue(datumCty(payload)))
	}
	for _, key := range payload.Context.Keys() {
		v, _ := payload.Context.Value(key)
		fmt.Fprintf(a.outW, "context %s = %s\n", key, formatValue(v))
	}
}

func datumCty(payload *pipeline.Payload) cty.Value {
	type ctyer interface{ Cty() cty.Value }
	if c, ok := payload.Data.(ctyer); ok {
		return c.Cty()
	}
	return cty.NilVal
}

func formatValue(v cty.Value) string {
	if v == cty.NilVal {
		return "(none)"
	}
	if v.Type().Equals(cty.String) {
		return fmt.Sprintf("%q", v.AsString())
	}
	return v.GoString()
}
