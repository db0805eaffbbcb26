package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/factgraph/internal/bundle"
)

// fileRoot decodes the top level of a build file. Anything other than
// target blocks is rejected by the decoder.
type fileRoot struct {
	Targets []*targetBlock `hcl:"target,block"`
}

type targetBlock struct {
	Name string `hcl:"name,label"`

	Deps       []string `hcl:"deps,optional"`
	SealedDeps []string `hcl:"sealed_deps,optional"`

	Flags             []string `hcl:"flags,optional"`
	Includes          []string `hcl:"includes,optional"`
	SystemIncludes    []string `hcl:"system_includes,optional"`
	SdkFrameworks     []string `hcl:"sdk_frameworks,optional"`
	WeakSdkFrameworks []string `hcl:"weak_sdk_frameworks,optional"`
	SdkDylibs         []string `hcl:"sdk_dylibs,optional"`
	FrameworkDirs     []string `hcl:"framework_dirs,optional"`

	Providers hcl.Expression `hcl:"providers,optional"`

	Remain hcl.Body `hcl:",remain"`
}

// factBlocks maps each fact block type to the tier its attributes go to.
var factBlocks = map[string]bundle.Tier{
	"propagate":   bundle.Propagated,
	"direct_only": bundle.DirectOnly,
	"sealed":      bundle.Sealed,
}

var factBlocksSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "propagate"},
		{Type: "direct_only"},
		{Type: "sealed"},
	},
}
