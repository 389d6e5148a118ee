package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csl-lang/csl/internal/parser"
)

func TestKeySignaturePlainKey(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")
	kd := entry.Schemas[0].RootTable.Key("name")
	require.NotNil(t, kd)

	assert.Equal(t, "name: string", keySignature(kd))
}

func TestKeySignatureOptionalWithDefault(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", `config App { level?: "low", "high" = "low"; }`)
	kd := entry.Schemas[0].RootTable.Key("level")
	require.NotNil(t, kd)

	sig := keySignature(kd)
	assert.Contains(t, sig, "level?:")
	assert.Contains(t, sig, `= "low"`)
}

func TestTypeSignatureArray(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { names: string[]; }")
	kd := entry.Schemas[0].RootTable.Key("names")
	require.NotNil(t, kd)

	assert.Equal(t, "[string]", typeSignature(kd.Type))
}

func TestTypeSignatureNestedTableSummarizesKeyCount(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { nested: { a: string; b: number; }; }")
	kd := entry.Schemas[0].RootTable.Key("nested")
	require.NotNil(t, kd)

	assert.Equal(t, "{ 2 keys }", typeSignature(kd.Type))
}

func TestBuildHoverForSchema(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")
	hover := buildHover(&Symbol{Schema: entry.Schemas[0]})
	require.NotNil(t, hover)
	assert.Equal(t, "schema App", hover.Signature)
}

func TestBuildHoverNilSymbol(t *testing.T) {
	assert.Nil(t, buildHover(nil))
}

func TestBuildHoverForKey(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")
	kd := entry.Schemas[0].RootTable.Key("name")
	hover := buildHover(&Symbol{Key: kd})
	require.NotNil(t, hover)
	assert.Equal(t, "name: string", hover.Signature)
}

func TestTypeSignatureUnion(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { v: string | number; }")
	kd := entry.Schemas[0].RootTable.Key("v")
	require.NotNil(t, kd)
	_, isUnion := kd.Type.(*parser.UnionType)
	require.True(t, isUnion)
	assert.Equal(t, "string | number", typeSignature(kd.Type))
}
