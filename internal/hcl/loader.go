package hcl

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/factgraph/internal/config"
	"github.com/specialistvlad/factgraph/internal/ctxlog"
)

// DefaultGlob matches build files anywhere under the root.
const DefaultGlob = "**/BUILD.hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	glob string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a loader that reads the files matching glob, relative
// to the root passed to Load. An empty glob means DefaultGlob.
func NewLoader(glob string) *Loader {
	if glob == "" {
		glob = DefaultGlob
	}
	return &Loader{glob: glob}
}

// Load parses every build file under root and merges their targets into one
// model. Duplicate labels are an error.
func (l *Loader) Load(ctx context.Context, root string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "root", root, "glob", l.glob)

	files, err := l.findBuildFiles(root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered build files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, rel := range files {
		hclFile, diags := parser.ParseHCLFile(filepath.Join(root, filepath.FromSlash(rel)))
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse build file %s: %w", rel, diags)
		}

		var fr fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &fr)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode build file %s: %w", rel, diags)
		}

		pkg := packageOf(rel)
		for _, tb := range fr.Targets {
			target, err := l.translateTarget(ctx, pkg, rel, tb)
			if err != nil {
				return nil, err
			}
			if err := model.Add(target); err != nil {
				return nil, err
			}
		}
		model.Files = append(model.Files, rel)
	}

	logger.Debug("HCL loading complete.", "files", len(model.Files), "targets", len(model.Targets))
	return model, nil
}

// findBuildFiles returns the slash-separated paths under root that match the
// glob, sorted so that loading order never depends on the file system.
func (l *Loader) findBuildFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing workspace root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), l.glob)
	if err != nil {
		return nil, fmt.Errorf("invalid build file glob %q: %w", l.glob, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// packageOf returns the package of a build file: its directory, with the
// root itself being "".
func packageOf(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}
