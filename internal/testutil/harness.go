// Package testutil runs whole workspaces through the application for the
// integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/factgraph/internal/analysis"
	"github.com/specialistvlad/factgraph/internal/app"
	"github.com/specialistvlad/factgraph/internal/hcl"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Result    *analysis.Result
	Root      string
}

// WriteWorkspace lays files out under a fresh temp dir and returns it.
// Paths are slash-separated and relative to the workspace root.
func WriteWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, 4)
}

// RunIntegrationTestWithContext writes files to a temporary workspace and
// analyzes it with the given worker count.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, workers int) *HarnessResult {
	t.Helper()

	root := WriteWorkspace(t, files)
	cfg, err := app.NewConfig(app.Config{
		Root:        root,
		Glob:        hcl.DefaultGlob,
		LogLevel:    "debug",
		LogFormat:   "json",
		WorkerCount: workers,
	})
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	testApp := app.NewApp(logBuffer, cfg, hcl.NewLoader(cfg.Glob))
	res, runErr := testApp.Run(ctx)

	if os.Getenv("FACTGRAPH_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Result:    res,
		Root:      root,
	}
}
