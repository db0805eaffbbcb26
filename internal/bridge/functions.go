package bridge

import (
	"fmt"
	"path"
	"strings"

	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// FileFunc returns the file(path) function. Paths are relative to pkg and
// interned through factory, so two targets naming the same file share one
// artifact.
func FileFunc(factory *facts.ArtifactFactory, pkg string) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the file artifact at path, relative to the current package.",
		Params: []function.Parameter{
			{Name: "path", Type: cty.String},
		},
		Type: function.StaticReturnType(FileType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			p := args[0].AsString()
			if strings.TrimSpace(p) == "" {
				return cty.NilVal, fmt.Errorf("file path must not be empty")
			}
			if strings.HasPrefix(p, "/") {
				return cty.NilVal, fmt.Errorf("file path %q must be relative to the package", p)
			}
			if joined := path.Clean(path.Join(pkg, p)); joined == ".." || strings.HasPrefix(joined, "../") {
				return cty.NilVal, fmt.Errorf("file path %q resolves outside the workspace", p)
			}
			return FileVal(factory.Source(pkg, p)), nil
		},
	})
}

// FunctionNames lists the functions available to fact expressions.
var FunctionNames = []string{"concat", "distinct", "file"}

// Functions returns the function table for an hcl.EvalContext.
func Functions(factory *facts.ArtifactFactory, pkg string) map[string]function.Function {
	return map[string]function.Function{
		"file":     FileFunc(factory, pkg),
		"concat":   stdlib.ConcatFunc,
		"distinct": stdlib.DistinctFunc,
	}
}
