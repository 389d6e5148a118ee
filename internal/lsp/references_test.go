package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csl-lang/csl/internal/lexer"
)

const schemaWithConstraint = `config App {
	timeout: duration;
	retries: number;
	constraints {
		requires retries => timeout;
	}
}`

func symbolForKey(t *testing.T, entry *Entry, name string) *Symbol {
	t.Helper()
	kd := entry.Schemas[0].RootTable.Key(name)
	require.NotNil(t, kd)
	return &Symbol{Key: kd}
}

func TestSymbolAtResolvesDeclaration(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", schemaWithConstraint)
	require.Empty(t, entry.ParseDiagnostics)

	sym := SymbolAt(entry, lexer.Position{Line: 1, Column: 2})
	require.NotNil(t, sym)
	require.NotNil(t, sym.Key)
	assert.Equal(t, "timeout", sym.Key.Name)
}

func TestReferencesIncludesDeclarationWhenRequested(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", schemaWithConstraint)
	require.Empty(t, entry.ParseDiagnostics)

	sym := symbolForKey(t, entry, "timeout")

	withDecl := References(entry, sym, true)
	withoutDecl := References(entry, sym, false)

	assert.Equal(t, len(withoutDecl)+1, len(withDecl))
}

func TestReferencesAreSorted(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", schemaWithConstraint)
	sym := symbolForKey(t, entry, "timeout")

	indices := References(entry, sym, true)
	for i := 1; i < len(indices); i++ {
		assert.Less(t, indices[i-1], indices[i])
	}
}

func TestRenameBackticksNonBareIdentifier(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", schemaWithConstraint)
	sym := symbolForKey(t, entry, "timeout")

	edits := Rename(entry, sym, "my-timeout")
	require.NotEmpty(t, edits)
	for _, e := range edits {
		assert.Equal(t, "`my-timeout`", e.NewText)
	}
}

func TestRenameKeepsBareIdentifierUnquoted(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", schemaWithConstraint)
	sym := symbolForKey(t, entry, "timeout")

	edits := Rename(entry, sym, "timeoutSeconds")
	require.NotEmpty(t, edits)
	for _, e := range edits {
		assert.Equal(t, "timeoutSeconds", e.NewText)
	}
}
