package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/factgraph/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_Analyze(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "BUILD.hcl"), []byte(`target "a" {}`), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"analyze", root})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Analyzed 1 targets")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	invalidHCL := `
		target "a" {
			propagate {
		// Missing closing brace here
	`
	require.NoError(t, os.WriteFile(filepath.Join(root, "BUILD.hcl"), []byte(invalidHCL), 0o600))

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"analyze", root})

	// --- Assert ---
	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, err.Error(), "failed to parse build file")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"--help"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"keys", "--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
