package bridge

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func eval(t *testing.T, src string, ctx *hcl.EvalContext) cty.Value {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	v, diags := expr.Value(ctx)
	require.False(t, diags.HasErrors(), diags.Error())
	return v
}

func artifacts(t *testing.T, v cty.Value) []string {
	t.Helper()
	var out []string
	for _, e := range v.AsValueSlice() {
		a, ok := e.EncapsulatedValue().(*facts.Artifact)
		require.True(t, ok)
		out = append(out, a.ExecPath())
	}
	return out
}

func TestExport(t *testing.T) {
	f := facts.NewArtifactFactory()
	b := bundle.NewBuilder()
	bundle.AddOwn(b, facts.Header, f.Get("lib/a.h"))
	bundle.AddDirectOnly(b, facts.Header, f.Get("lib/b.h"))
	bundle.AddSealed(b, facts.Header, f.Get("lib/private.h"))
	bundle.AddOwn(b, facts.Define, "DEBUG=1")
	bundle.AddOwn(b, facts.Include, facts.PathFragment("lib/include"))

	rec := Export(b.Freeze())

	assert.Equal(t, []string{"define", "header"}, rec.Names())

	headers, ok := rec.Lookup("header")
	require.True(t, ok)
	assert.True(t, headers.Type().Equals(cty.List(FileType)))
	assert.Equal(t, []string{"lib/a.h", "lib/b.h"}, artifacts(t, headers))

	defines, ok := rec.Lookup("define")
	require.True(t, ok)
	assert.True(t, defines.RawEquals(cty.ListVal([]cty.Value{cty.StringVal("DEBUG=1")})))

	for _, name := range []string{"include", "INCLUDE", "source", "no_such_key"} {
		_, ok := rec.Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestRecord_Object(t *testing.T) {
	b := bundle.NewBuilder()
	bundle.AddOwn(b, facts.Linkopt, "-ObjC")
	obj := Export(b.Freeze()).Object(facts.Registry)

	require.True(t, obj.Type().IsObjectType())
	assert.Len(t, obj.Type().AttributeTypes(), len(facts.Registry.Exported()))

	assert.True(t, obj.GetAttr("linkopt").RawEquals(cty.ListVal([]cty.Value{cty.StringVal("-ObjC")})))
	assert.True(t, obj.GetAttr("header").RawEquals(cty.ListValEmpty(FileType)))
	assert.False(t, obj.Type().HasAttribute("include"))
}

func TestElementType(t *testing.T) {
	ty, ok := ElementType(facts.Library)
	require.True(t, ok)
	assert.True(t, ty.Equals(FileType))

	ty, ok = ElementType(facts.Define)
	require.True(t, ok)
	assert.True(t, ty.Equals(cty.String))

	_, ok = ElementType(facts.SdkFramework)
	assert.False(t, ok)
}

func TestWriter_AddElementsFromExpression(t *testing.T) {
	f := facts.NewArtifactFactory()
	b := bundle.NewBuilder()
	w := NewWriter(b, facts.Registry)
	ctx := &hcl.EvalContext{Functions: Functions(f, "app/lib")}

	require.NoError(t, w.AddElements("header", eval(t, `[file("a.h"), file("sub/b.h"), file("a.h")]`, ctx)))
	require.NoError(t, w.AddElements("define", eval(t, `["A", "B=${1 + 1}"]`, ctx)))
	require.NoError(t, w.AddElementsToTier(bundle.DirectOnly, "module_map", eval(t, `[file("module.modulemap")]`, ctx)))
	frozen := b.Freeze()

	headers := bundle.Get(frozen, facts.Header).ToList()
	require.Len(t, headers, 2)
	assert.Same(t, f.Get("app/lib/a.h"), headers[0])
	assert.Same(t, f.Get("app/lib/sub/b.h"), headers[1])

	assert.Equal(t, []string{"A", "B=2"}, bundle.Get(frozen, facts.Define).ToList())
	assert.Len(t, bundle.TierSet(frozen, bundle.DirectOnly, facts.ModuleMap).ToList(), 1)
}

func TestWriter_Errors(t *testing.T) {
	f := facts.NewArtifactFactory()
	file := FileVal(f.Get("x.h"))

	testCases := []struct {
		name    string
		key     string
		value   cty.Value
		wantErr func(t *testing.T, err error)
	}{
		{
			name:  "unregistered name",
			key:   "no_such_key",
			value: cty.ListValEmpty(cty.String),
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownKey)
			},
		},
		{
			name:  "registered but not exportable",
			key:   "include",
			value: cty.ListVal([]cty.Value{cty.StringVal("x")}),
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownKey)
			},
		},
		{
			name:  "strings where files are expected",
			key:   "header",
			value: cty.ListVal([]cty.Value{cty.StringVal("x.h")}),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				require.ErrorAs(t, err, &tm)
				assert.Equal(t, "header", tm.Key)
				assert.Equal(t, "list of file", tm.Expected)
				assert.Equal(t, "list of string", tm.Actual)
			},
		},
		{
			name:  "files where strings are expected",
			key:   "define",
			value: cty.TupleVal([]cty.Value{file}),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				assert.ErrorAs(t, err, &tm)
			},
		},
		{
			name:  "numbers where strings are expected",
			key:   "define",
			value: cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				require.ErrorAs(t, err, &tm)
				assert.Equal(t, "list of string", tm.Expected)
				assert.Equal(t, "list of number", tm.Actual)
			},
		},
		{
			name:  "bools where strings are expected",
			key:   "define",
			value: cty.TupleVal([]cty.Value{cty.True}),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				require.ErrorAs(t, err, &tm)
				assert.Equal(t, "tuple", tm.Actual)
			},
		},
		{
			name:  "mixed tuple",
			key:   "linkopt",
			value: cty.TupleVal([]cty.Value{cty.StringVal("-lz"), cty.NumberIntVal(3)}),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				assert.ErrorAs(t, err, &tm)
			},
		},
		{
			name:  "bare value instead of a collection",
			key:   "define",
			value: cty.StringVal("DEBUG"),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				require.ErrorAs(t, err, &tm)
				assert.Equal(t, "string", tm.Actual)
			},
		},
		{
			name:  "null",
			key:   "define",
			value: cty.NullVal(cty.List(cty.String)),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				require.ErrorAs(t, err, &tm)
				assert.Equal(t, "null", tm.Actual)
			},
		},
		{
			name:  "null element",
			key:   "define",
			value: cty.TupleVal([]cty.Value{cty.StringVal("A"), cty.NullVal(cty.String)}),
			wantErr: func(t *testing.T, err error) {
				var tm *TypeMismatchError
				assert.ErrorAs(t, err, &tm)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := bundle.NewBuilder()
			err := NewWriter(b, facts.Registry).AddElements(tc.key, tc.value)
			require.Error(t, err)
			tc.wantErr(t, err)
			assert.True(t, b.Freeze().IsEmpty(), "a rejected write adds nothing")
		})
	}
}

func TestWriter_EmptyCollections(t *testing.T) {
	for name, v := range map[string]cty.Value{
		"empty tuple":        cty.EmptyTupleVal,
		"empty dynamic list": cty.ListValEmpty(cty.DynamicPseudoType),
		"empty string set":   cty.SetValEmpty(cty.String),
	} {
		t.Run(name, func(t *testing.T) {
			b := bundle.NewBuilder()
			require.NoError(t, NewWriter(b, facts.Registry).AddElements("define", v))
			assert.True(t, b.Freeze().IsEmpty())
		})
	}
}

func TestWriter_AddProviders(t *testing.T) {
	f := facts.NewArtifactFactory()

	childBuilder := bundle.NewBuilder()
	bundle.AddOwn(childBuilder, facts.Library, f.Get("liba.a"))
	bundle.AddDirectOnly(childBuilder, facts.ModuleMap, f.Get("a.modulemap"))
	child := childBuilder.Freeze()

	b := bundle.NewBuilder()
	w := NewWriter(b, facts.Registry)
	require.NoError(t, w.AddProviders(cty.TupleVal([]cty.Value{BundleVal(child)})))
	frozen := b.Freeze()

	assert.Equal(t, []*facts.Artifact{f.Get("liba.a")}, bundle.TierSet(frozen, bundle.Propagated, facts.Library).ToList())
	assert.Equal(t, []*facts.Artifact{f.Get("a.modulemap")}, bundle.TierSet(frozen, bundle.Sealed, facts.ModuleMap).ToList())

	t.Run("not a collection", func(t *testing.T) {
		err := NewWriter(bundle.NewBuilder(), facts.Registry).AddProviders(BundleVal(child))
		var et *ElementTypeError
		require.ErrorAs(t, err, &et)
		assert.Equal(t, "bundle", et.Actual)
	})

	t.Run("element is not a bundle", func(t *testing.T) {
		err := NewWriter(bundle.NewBuilder(), facts.Registry).AddProviders(
			cty.TupleVal([]cty.Value{BundleVal(child), cty.StringVal("//lib:a")}))
		var et *ElementTypeError
		require.ErrorAs(t, err, &et)
		assert.Equal(t, "string", et.Actual)
	})

	t.Run("empty list", func(t *testing.T) {
		b := bundle.NewBuilder()
		require.NoError(t, NewWriter(b, facts.Registry).AddProviders(cty.EmptyTupleVal))
		assert.True(t, b.Freeze().IsEmpty())
	})
}

func TestRoundTrip(t *testing.T) {
	f := facts.NewArtifactFactory()
	src := bundle.NewBuilder()
	bundle.AddOwn(src, facts.Library, f.Get("liba.a"), f.Get("libb.a"))
	bundle.AddOwn(src, facts.Linkopt, "-lz", "-ObjC")
	rec := Export(src.Freeze())

	dst := bundle.NewBuilder()
	w := NewWriter(dst, facts.Registry)
	for _, name := range rec.Names() {
		v, _ := rec.Lookup(name)
		require.NoError(t, w.AddElements(name, v))
	}
	out := dst.Freeze()

	assert.Equal(t, []*facts.Artifact{f.Get("liba.a"), f.Get("libb.a")}, bundle.Get(out, facts.Library).ToList())
	assert.Equal(t, []string{"-lz", "-ObjC"}, bundle.Get(out, facts.Linkopt).ToList())
}

func TestFunctions(t *testing.T) {
	f := facts.NewArtifactFactory()
	ctx := &hcl.EvalContext{
		Functions: Functions(f, "pkg"),
		Variables: map[string]cty.Value{
			"dep": cty.ObjectVal(map[string]cty.Value{
				"header": cty.ListVal([]cty.Value{FileVal(f.Get("dep/x.h"))}),
			}),
		},
	}

	v := eval(t, `concat(dep.header, [file("y.h")])`, ctx)
	assert.Equal(t, []string{"dep/x.h", "pkg/y.h"}, artifacts(t, v))

	v = eval(t, `distinct(["a", "b", "a"])`, ctx)
	assert.True(t, v.RawEquals(cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")})))

	assert.ElementsMatch(t, FunctionNames, keysOf(ctx.Functions))
}

func TestFileFunc_Errors(t *testing.T) {
	fn := FileFunc(facts.NewArtifactFactory(), "pkg")

	_, err := fn.Call([]cty.Value{cty.StringVal("")})
	assert.Error(t, err)

	_, err = fn.Call([]cty.Value{cty.StringVal("/etc/passwd")})
	assert.Error(t, err)
}

func TestFileFunc_PackageRelative(t *testing.T) {
	f := facts.NewArtifactFactory()
	fn := FileFunc(f, "app/lib")

	for _, p := range []string{"../../../etc/passwd", "../../..", "x/../../../../y.h"} {
		t.Run(p, func(t *testing.T) {
			_, err := fn.Call([]cty.Value{cty.StringVal(p)})
			assert.ErrorContains(t, err, "outside the workspace")
		})
	}

	v, err := fn.Call([]cty.Value{cty.StringVal("../common/shared.h")})
	require.NoError(t, err)
	a, ok := v.EncapsulatedValue().(*facts.Artifact)
	require.True(t, ok)
	assert.Equal(t, "app/common/shared.h", a.ExecPath())
	assert.Equal(t, 1, f.Len(), "rejected paths create no artifacts")
}

func TestErrorMessages(t *testing.T) {
	err := &TypeMismatchError{Key: "header", Expected: "list of file", Actual: "list of string"}
	assert.Equal(t, `value for "header" must be list of file, got list of string`, err.Error())

	assert.Equal(t, "providers must be a list of bundles, got string", (&ElementTypeError{Actual: "string"}).Error())
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
