package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/vk/tomeview/internal/indexstore"
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/internal/topic"
)

// Output formats of Inspect.
const (
	FormatJSON    = "json"
	FormatInspect = "inspect"
)

// Actor is the State actor of topics built by the application.
const Actor = "tomeview"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	registry *registry.Registry
	store    *indexstore.Store
	builder  *topic.Builder
}

// NewApp is the constructor for the main application. Results go to outW
// and logs to logW. With no modules the core modules are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	if err := reg.RegisterModules(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if cfg.ManifestPath != "" {
		if err := reg.LoadManifestsRecursively(ctx, cfg.ManifestPath); err != nil {
			return nil, err
		}
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	a := &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		registry: reg,
	}

	var resolver topic.IndexResolver = topic.DeclaredResolver{}
	if cfg.IndexDB != "" {
		store, err := indexstore.Open(ctx, cfg.IndexDB)
		if err != nil {
			return nil, err
		}
		a.store = store
		resolver = store
	}
	a.builder = topic.NewBuilder(reg, resolver)

	return a, nil
}

// Context returns the application context, which carries its logger.
func (a *App) Context() context.Context { return a.ctx }

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Build creates a topic instance. A nil data seeds the declared defaults.
func (a *App) Build(ctx context.Context, typeName string, index topic.Index, data any) (*topic.Topic, error) {
	return a.builder.Create(ctxlog.WithLogger(ctx, a.logger), typeName, topic.NewState(Actor), index, data)
}

// InspectOptions selects what Inspect builds and prints.
type InspectOptions struct {
	Topic string
	Index topic.Index
	// DataPath names a JSON file holding the topic data. Empty seeds
	// defaults.
	DataPath string
	// Format is FormatJSON or FormatInspect.
	Format string
	// Query, when set, prints the JSONPath matches instead of the topic.
	Query string
	// Depth overrides Config.InspectDepth when non-nil.
	Depth *int
}

// Inspect builds a topic and prints it to the output writer.
func (a *App) Inspect(ctx context.Context, opts InspectOptions) error {
	var data any
	if opts.DataPath != "" {
		loaded, err := LoadData(opts.DataPath)
		if err != nil {
			return err
		}
		data = loaded
	}

	tp, err := a.Build(ctx, opts.Topic, opts.Index, data)
	if err != nil {
		return err
	}
	a.logger.Debug("Topic built for inspection.", "topic", tp.Topic(), "key", tp.Identity().Key)

	if opts.Query != "" {
		matches, err := tp.Query(opts.Query)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if _, err := fmt.Fprintln(a.outW, oj.JSON(m, &ojg.Options{Sort: true})); err != nil {
				return err
			}
		}
		return nil
	}

	switch opts.Format {
	case FormatJSON, "":
		_, err = fmt.Fprintln(a.outW, tp.String())
	case FormatInspect:
		depth := a.config.InspectDepth
		if opts.Depth != nil {
			depth = *opts.Depth
		}
		_, err = fmt.Fprintln(a.outW, tp.Inspect(depth))
	default:
		err = fmt.Errorf("unknown output format %q", opts.Format)
	}
	return err
}

// Validate prints every registered topic type. Registry validation already
// ran in NewApp, so reaching this point means the manifests are consistent.
func (a *App) Validate(ctx context.Context) error {
	if err := a.registry.Validate(ctxlog.WithLogger(ctx, a.logger)); err != nil {
		return err
	}
	for _, t := range a.registry.Types() {
		line := fmt.Sprintf("%s: %d field(s)", t.Name, len(t.Fields()))
		if len(t.Index) > 0 {
			line += fmt.Sprintf(", index %v", t.Index)
		}
		if t.Source != "" {
			line += " (" + t.Source + ")"
		}
		if _, err := fmt.Fprintln(a.outW, line); err != nil {
			return err
		}
	}
	a.logger.Info("Topic types are valid.", "count", len(a.registry.Types()))
	return nil
}

// Close releases the index store, if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// LoadData parses a JSON document from path.
func LoadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topic data: %w", err)
	}
	data, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse topic data %s: %w", path, err)
	}
	if data == nil {
		return nil, errors.New("topic data must not be null")
	}
	return data, nil
}
