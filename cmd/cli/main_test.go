package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/avrotype/internal/cli"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A config file with a syntax error makes app.NewApp() panic while
	// loading configuration.
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte("resolver {\n"), 0600), "failed to set up test file")

	args := []string{"-config", configPath, "-name", "int32"}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked", "The error message should indicate that a panic was recovered.")
	require.Contains(t, runErr.Error(), "failed to parse", "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_Report(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	schemaPath := filepath.Join(tempDir, "event.avsc")
	schema := `{
  "type": "record",
  "name": "Event",
  "namespace": "com.acme",
  "fields": [{"name": "at", "type": "long"}]
}`
	require.NoError(t, os.WriteFile(schemaPath, []byte(schema), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-log-level", "error", schemaPath})

	// --- Assert ---
	// No source declares com.acme.Event, so the run fails with exit code 1.
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, out.String(), "com.acme.Event => error:")
}

func TestRun_ResolveName(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", "-name", "time.Time", "-container", "array"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "time.Time => []time.Time (")
	require.Contains(t, out.String(), "  new: []time.Time\n")
}
