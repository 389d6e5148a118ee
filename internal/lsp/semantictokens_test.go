package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSemanticTokensQuintupleShape(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")

	data := EncodeSemanticTokens(entry.TokensWithComments)
	require.NotEmpty(t, data)
	assert.Equal(t, 0, len(data)%5)
}

func TestEncodeSemanticTokensFirstTokenIsAbsolute(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")

	data := EncodeSemanticTokens(entry.TokensWithComments)
	require.GreaterOrEqual(t, len(data), 5)
	firstTok := entry.TokensWithComments[0]
	assert.Equal(t, firstTok.Range.Start.Line, data[0])
	assert.Equal(t, firstTok.Range.Start.Column, data[1])
}

func TestEncodeSemanticTokensModifiersAlwaysZero(t *testing.T) {
	c := NewCache()
	entry := c.Put("file:///a.csl", "config App { name: string; }")

	data := EncodeSemanticTokens(entry.TokensWithComments)
	for i := 4; i < len(data); i += 5 {
		assert.Equal(t, uint32(0), data[i])
	}
}

func TestEncodeSemanticTokensEmptyInput(t *testing.T) {
	assert.Empty(t, EncodeSemanticTokens(nil))
}
