package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csl-lang/csl/internal/lexer"
)

func TestTokenAtFindsContainingToken(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")

	idx, ok := tokenAt(entry.TokensNoComments, lexer.Position{Line: 0, Column: 8})
	require.True(t, ok)
	assert.Equal(t, "App", entry.TokensNoComments[idx].Value)
}

func TestTokenAtFallsBackToLastTokenBeforePosition(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")

	last := entry.TokensNoComments[len(entry.TokensNoComments)-1]
	idx, ok := tokenAt(entry.TokensNoComments, lexer.Position{Line: 5, Column: 0})
	require.True(t, ok)
	assert.Equal(t, last.Value, entry.TokensNoComments[idx].Value)
}

func TestDeepestTableAtDescendsNestedTables(t *testing.T) {
	c := NewCache()
	src := `config App {
	outer: {
		inner: {
			leaf: string;
		};
	};
}`
	entry := c.Put("file:///a.csl", src)

	leafLine := uint32(3)
	table := deepestTableAt(entry.Schemas, lexer.Position{Line: leafLine, Column: 4})
	require.NotNil(t, table)
	require.Len(t, table.ExplicitKeys, 1)
	assert.Equal(t, "leaf", table.ExplicitKeys[0].Name)
}

func TestKeyDeclAtFindsOwnNameNotReference(t *testing.T) {
	c := NewCache()
	src := `config App {
	timeout: duration;
	constraints {
		validate timeout;
	}
}`
	entry := c.Put("file:///a.csl", src)
	require.Len(t, entry.Schemas, 1)

	kd := keyDeclAt(entry.Schemas[0].RootTable, lexer.Position{Line: 1, Column: 2})
	require.NotNil(t, kd)
	assert.Equal(t, "timeout", kd.Name)
}

func TestDefinitionAtResolvesReference(t *testing.T) {
	c := NewCache()
	src := `config App {
	timeout: duration;
	constraints {
		validate timeout;
	}
}`
	entry := c.Put("file:///a.csl", src)
	require.Empty(t, entry.ParseDiagnostics)

	var refIdx int
	found := false
	for i, tok := range entry.TokensNoComments {
		if tok.Value == "timeout" && i > 0 {
			if _, isDef := entry.TokenDefs[i]; isDef {
				refIdx = i
				found = true
			}
		}
	}
	require.True(t, found, "expected a resolved reference to timeout")

	def := definitionAt(entry, entry.TokensNoComments[refIdx].Range.Start)
	require.NotNil(t, def)
	assert.Equal(t, "timeout", def.Key.Name)
}
