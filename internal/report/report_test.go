package report

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() *bundle.Bundle {
	files := facts.NewArtifactFactory()
	b := bundle.NewBuilder()
	bundle.AddOwn(b, facts.Header, files.Source("net", "net.h"))
	bundle.AddSealed(b, facts.Header, files.Source("net", "private.h"))
	bundle.AddOwn(b, facts.Include, facts.PathFragment("net/include"))
	bundle.AddDirectOnly(b, facts.Define, "NET=1")
	return b.Freeze()
}

var net = label.MustParse("//net")

func TestBundleFacts(t *testing.T) {
	f, err := BundleFacts(net, sample(), "")
	require.NoError(t, err)
	assert.Equal(t, "//net:net", f.Target)
	assert.Equal(t, []Entry{
		{Key: "DEFINE", Order: "stable", Values: []string{"NET=1"}},
		{Key: "HEADER", Order: "stable", Values: []string{"File:net/net.h", "File:net/private.h"}},
		{Key: "INCLUDE", Order: "link", Values: []string{"net/include"}},
	}, f.Facts)

	t.Run("filter by key or export name", func(t *testing.T) {
		for _, name := range []string{"HEADER", "header"} {
			f, err := BundleFacts(net, sample(), name)
			require.NoError(t, err)
			require.Len(t, f.Facts, 1)
			assert.Equal(t, "HEADER", f.Facts[0].Key)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := BundleFacts(net, sample(), "linkopt")
		assert.EqualError(t, err, `target //net:net has no facts for key "linkopt"`)
	})
}

func TestExportRecord(t *testing.T) {
	f := ExportRecord(net, sample())
	assert.Equal(t, "exports", f.View)
	assert.Equal(t, []Entry{
		{Key: "define", Order: "stable", Values: []string{"NET=1"}},
		{Key: "header", Order: "stable", Values: []string{"File:net/net.h"}},
	}, f.Facts)
}

func TestKeys(t *testing.T) {
	keys := Keys(facts.Registry)
	require.Len(t, keys, len(facts.Registry.All()))
	assert.Equal(t, KeyInfo{Name: "LIBRARY", Type: "*facts.Artifact", Order: "link", Export: "library"}, keys[0])

	SortKeys(keys)
	assert.Equal(t, "ASSET_CATALOG", keys[0].Name)
}

func TestWriteFacts(t *testing.T) {
	f := ExportRecord(net, sample())

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteFacts(&buf, YAML, f))

		var decoded Facts
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *f, decoded)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteFacts(&buf, Text, f))
		out := buf.String()
		assert.Contains(t, out, "//net:net (exports)")
		assert.Contains(t, out, "header")
		assert.Contains(t, out, "    File:net/net.h\n")
	})

	t.Run("text without facts", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteFacts(&buf, Text, ExportRecord(net, bundle.Empty())))
		assert.Contains(t, buf.String(), "no facts")
	})
}

func TestWriteKeys(t *testing.T) {
	keys := []KeyInfo{
		{Name: "DEFINE", Type: "string", Order: "stable", Export: "define"},
		{Name: "INCLUDE", Type: "facts.PathFragment", Order: "link"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteKeys(&buf, Text, keys))
	assert.Equal(t,
		"NAME     TYPE                ORDER   EXPORT\n"+
			"DEFINE   string              stable  define\n"+
			"INCLUDE  facts.PathFragment  link    -\n",
		buf.String())

	buf.Reset()
	require.NoError(t, WriteKeys(&buf, YAML, keys[1:]))
	assert.Equal(t, "- name: INCLUDE\n  type: facts.PathFragment\n  order: link\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	_, err = ParseFormat("xml")
	assert.EqualError(t, err, `unknown format "xml": must be 'yaml' or 'text'`)
}
