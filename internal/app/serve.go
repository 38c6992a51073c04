package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/vk/avrotype/internal/ctxlog"
	"github.com/vk/avrotype/registry"
	"github.com/vk/avrotype/resolver"
)

// resolveResponse is the body returned by the /resolve endpoint.
type resolveResponse struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Cty    string `json:"cty,omitempty"`
	Module string `json:"module,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handler builds the HTTP routes served by the app.
func (a *App) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/stats", a.statsHandler)
	mux.HandleFunc("/resolve", a.resolveHandler)
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.resolver.Stats())
}

// resolveHandler serves GET /resolve?name=<type>&container=none|array|map.
func (a *App) resolveHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		a.writeJSON(w, http.StatusBadRequest, resolveResponse{Error: "query parameter 'name' is required"})
		return
	}
	c, err := ParseContainer(r.URL.Query().Get("container"))
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, resolveResponse{Name: name, Error: err.Error()})
		return
	}

	h, err := a.resolver.TypeOfName(name, c)
	if err != nil {
		status := http.StatusInternalServerError
		var nf *registry.NotFoundError
		var amb *registry.AmbiguousError
		switch {
		case errors.As(err, &nf):
			status = http.StatusNotFound
		case errors.As(err, &amb):
			status = http.StatusConflict
		}
		a.writeJSON(w, status, resolveResponse{Name: name, Error: err.Error()})
		return
	}

	resp := resolveResponse{
		Name: name,
		Type: h.Name(),
		Kind: h.Kind().String(),
		Cty:  h.CtyType().FriendlyName(),
	}
	if t := h.Registered(); t != nil {
		resp.Module = t.Module
	}
	a.writeJSON(w, http.StatusOK, resp)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Failed to encode response.", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// serve runs the HTTP server until ctx is done and then shuts it down.
func (a *App) serve(ctx context.Context, port int) error {
	logger := ctxlog.FromContext(ctx)
	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Resolver server starting.", "address", fmt.Sprintf("http://localhost%s", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("resolver server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	logger.Info("Shutting down resolver server.")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Resolver server shutdown failed.", "error", err)
		return err
	}
	logger.Debug("Resolver server shut down gracefully.")
	return nil
}

// ParseContainer maps the container spelling used on the command line and
// in queries to a resolver.Container. The empty string means none.
func ParseContainer(s string) (resolver.Container, error) {
	switch s {
	case "", "none":
		return resolver.None, nil
	case "array":
		return resolver.ArrayOf, nil
	case "map":
		return resolver.MapOf, nil
	}
	return resolver.None, fmt.Errorf("invalid container '%s': must be 'none', 'array' or 'map'", s)
}
