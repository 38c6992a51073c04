package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/vk/avrotype/internal/ctxlog"
	"github.com/vk/avrotype/internal/fsutil"
	"github.com/vk/avrotype/resolver"
	"github.com/vk/avrotype/schema"
)

var schemaExtensions = []string{".avsc", ".json", ".yaml", ".yml"}

// ErrUnresolved is returned by Run when at least one type failed to resolve.
var ErrUnresolved = errors.New("unresolved types")

// Run resolves the configured name and every named schema found under the
// schema paths, printing one line per type. When a serve port is
// configured it then serves the resolver over HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	failures := 0
	if a.appConfig.Name != "" {
		if !a.reportName(ctx, a.appConfig.Name, a.appConfig.Container) {
			failures++
		}
	}

	if len(a.appConfig.SchemaPaths) > 0 {
		files, err := fsutil.CollectFiles(a.appConfig.SchemaPaths, false, schemaExtensions...)
		if err != nil {
			return fmt.Errorf("failed to find schema files: %w", err)
		}
		a.logger.Info("Schema files discovered.", "count", len(files))
		for _, file := range files {
			failures += a.reportFile(ctx, file)
		}
	}

	stats := a.resolver.Stats()
	a.logger.Info("Resolution finished.", "failures", failures, "hits", stats.Hits, "misses", stats.Misses, "scans", stats.Scans)

	if a.appConfig.ServePort > 0 {
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := a.serve(ctx, a.appConfig.ServePort); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d", ErrUnresolved, failures)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// reportName resolves and instantiates a single name.
func (a *App) reportName(ctx context.Context, name string, c resolver.Container) bool {
	logger := ctxlog.FromContext(ctxlog.With(ctx, "name", name, "container", c.String()))
	h, err := a.resolver.TypeOfName(name, c)
	if err != nil {
		logger.Error("Type resolution failed.", "error", err)
		fmt.Fprintf(a.outW, "%s => error: %v\n", name, err)
		return false
	}
	fmt.Fprintf(a.outW, "%s => %s (%s)\n", name, h.Name(), h.CtyType().FriendlyName())

	v, err := resolver.Instantiate(h)
	if err != nil {
		logger.Warn("Type has no default instance.", "error", err)
		fmt.Fprintf(a.outW, "  new: error: %v\n", err)
		return true
	}
	fmt.Fprintf(a.outW, "  new: %T\n", v)
	return true
}

// reportFile parses one schema file and resolves every named schema in it.
// It returns the number of failures.
func (a *App) reportFile(ctx context.Context, file string) int {
	logger := ctxlog.FromContext(ctxlog.With(ctx, "file", file))

	s, err := schema.ParseFile(file)
	if err != nil {
		logger.Error("Schema could not be parsed.", "error", err)
		fmt.Fprintf(a.outW, "%s: error: %v\n", file, err)
		return 1
	}
	logger.Debug("Schema parsed.", "tag", s.Tag().String())

	failures := 0
	err = schema.Walk(s, func(n schema.NamedSchema) error {
		h, err := a.resolver.TypeOf(n)
		if err != nil {
			failures++
			logger.Error("Type resolution failed.", "schema", n.FullName(), "error", err)
			fmt.Fprintf(a.outW, "%s => error: %v\n", n.FullName(), err)
			return nil
		}
		fmt.Fprintf(a.outW, "%s => %s (%s)\n", n.FullName(), h.Name(), h.CtyType().FriendlyName())
		if doc := n.Doc(); doc != "" {
			fmt.Fprintf(a.outW, "  doc: %s\n", doc)
		}

		rec, ok := n.(*schema.RecordSchema)
		if !ok {
			return nil
		}
		for _, f := range rec.Fields() {
			fh, err := a.resolver.TypeOf(f.Type)
			switch {
			case err != nil:
				// The failing named type is reported on its own line.
				fmt.Fprintf(a.outW, "  %s: error: %v\n", f.Name, err)
			case fh == nil:
				fmt.Fprintf(a.outW, "  %s: null\n", f.Name)
			default:
				fmt.Fprintf(a.outW, "  %s: %s\n", f.Name, fh.Name())
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Schema walk failed.", "error", err)
		return failures + 1
	}
	return failures
}
