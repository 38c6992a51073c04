package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/avrotype/internal/config"
	"github.com/vk/avrotype/internal/ctxlog"
	"github.com/vk/avrotype/registry"
	"github.com/vk/avrotype/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	appConfig  *Config
	config     *config.Model
	registry   *registry.Registry
	resolver   *resolver.Resolver
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, registry and
// resolver. Sources passed in are loaded ahead of the configured modules.
//
// Startup errors in configuration are fatal and cause a panic.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, sources ...registry.Source) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel := config.NewModel()
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		cfgModel = loaded
	}
	logger.Debug("Configuration loaded.", "modules", cfgModel.Modules, "preferred", cfgModel.PreferredModule)

	reg := registry.New(nil, registry.WithLogger(logger))
	for _, src := range sources {
		reg.Load(src)
	}

	names := cfgModel.Modules
	if len(names) == 0 {
		names = defaultModules
	}
	for _, name := range names {
		if _, loaded := reg.Source(name); loaded {
			continue
		}
		mod, ok := bundledModules[name]
		if !ok {
			panic(fmt.Errorf("unknown module '%s' in configuration", name))
		}
		mod.Register(reg)
	}
	logger.Debug("Type sources loaded.", "count", len(reg.Sources()))

	if p := cfgModel.PreferredModule; p != "" {
		if _, ok := reg.Source(p); !ok {
			panic(fmt.Errorf("preferred module '%s' is not loaded", p))
		}
		reg.SetPreferred(p)
	}
	for from, to := range cfgModel.Aliases {
		reg.Alias(from, to)
	}

	return &App{
		outW:      outW,
		logger:    logger,
		appConfig: appConfig,
		config:    cfgModel,
		registry:  reg,
		resolver:  resolver.New(reg, resolver.WithLogger(logger)),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Resolver returns the application's resolver. This is primarily for testing.
func (a *App) Resolver() *resolver.Resolver {
	return a.resolver
}
