package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/avrotype/internal/hcl"
	"github.com/vk/avrotype/resolver"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := NewConfig(Config{Name: "int32", LogLevel: "error"})
	require.NoError(t, err)
	return NewApp(io.Discard, cfg, hcl.NewLoader())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	rec := get(t, newTestApp(t).handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestHandler_Resolve(t *testing.T) {
	t.Parallel()
	h := newTestApp(t).handler()

	testCases := []struct {
		target     string
		wantStatus int
		want       resolveResponse
	}{
		{
			target:     "/resolve?name=int32&container=array",
			wantStatus: http.StatusOK,
			want:       resolveResponse{Name: "int32", Type: "[]int32", Kind: "list", Cty: "list of number"},
		},
		{
			target:     "/resolve?name=uuid.UUID",
			wantStatus: http.StatusOK,
			want:       resolveResponse{Name: "uuid.UUID", Type: "uuid.UUID", Kind: "named", Cty: "dynamic", Module: "wellknown"},
		},
		{
			target:     "/resolve?name=ns.Missing",
			wantStatus: http.StatusNotFound,
			want:       resolveResponse{Name: "ns.Missing", Error: `type "ns.Missing" not found in any registered source`},
		},
		{
			target:     "/resolve",
			wantStatus: http.StatusBadRequest,
			want:       resolveResponse{Error: "query parameter 'name' is required"},
		},
		{
			target:     "/resolve?name=int32&container=set",
			wantStatus: http.StatusBadRequest,
			want:       resolveResponse{Name: "int32", Error: "invalid container 'set': must be 'none', 'array' or 'map'"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			rec := get(t, h, tc.target)
			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got resolveResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	h := a.handler()

	get(t, h, "/resolve?name=string")
	get(t, h, "/resolve?name=string")

	rec := get(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats resolver.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, resolver.Stats{Hits: 1, Misses: 1, Scans: 1}, stats)
}

func TestServe_StopsWithContext(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, a.serve(ctx, 0))
}

func TestParseContainer(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]resolver.Container{
		"":      resolver.None,
		"none":  resolver.None,
		"array": resolver.ArrayOf,
		"map":   resolver.MapOf,
	} {
		got, err := ParseContainer(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseContainer("list")
	require.Error(t, err)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.ErrorContains(t, err, "at least one schema path or a type name is required")

	_, err = NewConfig(Config{Name: "int32", ServePort: 70000})
	require.Error(t, err)

	cfg, err := NewConfig(Config{SchemaPaths: []string{"schemas"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"schemas"}, cfg.SchemaPaths)
}
