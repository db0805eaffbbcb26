package integration_tests

import (
	"testing"

	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_FailedTargetSkipsDependents(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"bad/BUILD.hcl": `
target "bad" {
  propagate {
    library = ["libbad.a"]
  }
}
`,
		"mid/BUILD.hcl":   `target "mid" { deps = ["//bad"] }`,
		"top/BUILD.hcl":   `target "top" { deps = ["//mid"] }`,
		"alone/BUILD.hcl": `target "alone" {}`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTestWithContext(t.Context(), t, files, 1)

	// --- Assert ---
	require.Error(t, result.Err)
	require.ErrorContains(t, result.Err, "execution failed for //bad:bad")
	require.ErrorContains(t, result.Err, `value for "library" must be list of file, got tuple`)

	testutil.AssertState(t, result, "//alone", dag.Done)
	testutil.AssertState(t, result, "//bad", dag.Failed)
	testutil.AssertState(t, result, "//mid", dag.Skipped)
	testutil.AssertState(t, result, "//top", dag.Skipped)
}

func TestErrorHandling_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"BUILD.hcl": `
target "a" {
  propagate {
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	require.Nil(t, result.Result)
	require.ErrorContains(t, result.Err, "failed to parse build file")
}

func TestErrorHandling_StructuralErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "cycle",
			files: map[string]string{
				"a/BUILD.hcl": `target "a" { deps = ["//c"] }`,
				"b/BUILD.hcl": `target "b" { deps = ["//a"] }`,
				"c/BUILD.hcl": `target "c" { sealed_deps = ["//b"] }`,
			},
			wantErr: "cycle detected",
		},
		{
			name: "duplicate target",
			files: map[string]string{
				"a/BUILD.hcl": "target \"x\" {}\ntarget \"x\" {}\n",
			},
			wantErr: "target //a:x is defined twice",
		},
		{
			name: "unknown variable",
			files: map[string]string{
				"a/BUILD.hcl": `
target "x" {
  propagate {
    define = var.defines
  }
}
`,
			},
			wantErr: "Unknown variable",
		},
		{
			name: "unknown exported key in a dependency record",
			files: map[string]string{
				"a/BUILD.hcl": `
target "x" {
  deps = [":y"]
  propagate {
    define = dep[":y"].include
  }
}

target "y" {}
`,
			},
			wantErr: "Unknown key",
		},
		{
			name: "unknown block",
			files: map[string]string{
				"a/BUILD.hcl": `
target "x" {
  everywhere {
    define = ["X"]
  }
}
`,
			},
			wantErr: "everywhere",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunIntegrationTest(t, tc.files)

			// --- Assert ---
			require.Error(t, result.Err)
			require.Nil(t, result.Result)
			require.ErrorContains(t, result.Err, tc.wantErr)
		})
	}
}
