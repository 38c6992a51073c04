package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/avrotype/internal/app"
	"github.com/vk/avrotype/internal/hcl"
	"github.com/vk/avrotype/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// WriteFiles writes files, keyed by slash separated relative path, under
// root and returns root.
func WriteFiles(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return root
}

// RunApp writes files into a temporary directory and runs the app over it.
// Files under "schemas/" become the schema path and files under "config/"
// the configuration path; cfg supplies everything else. Extra sources are
// loaded ahead of the configured modules.
func RunApp(t *testing.T, files map[string]string, cfg app.Config, sources ...registry.Source) *HarnessResult {
	t.Helper()

	tmpDir := WriteFiles(t, t.TempDir(), files)
	if dir := filepath.Join(tmpDir, "schemas"); exists(dir) {
		cfg.SchemaPaths = append(cfg.SchemaPaths, dir)
	}
	if dir := filepath.Join(tmpDir, "config"); exists(dir) {
		cfg.ConfigPath = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	var (
		testApp  *app.App
		panicErr any
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, &cfg, hcl.NewLoader(), sources...)
	}()

	t.Cleanup(func() {
		if os.Getenv("AVROTYPE_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background())
	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
