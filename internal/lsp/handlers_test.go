package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.lsp.dev/protocol"
)

func TestConvertCompletionKind(t *testing.T) {
	tests := []struct {
		name     string
		input    CompletionKind
		expected protocol.CompletionItemKind
	}{
		{"Keyword", CompletionKindKeyword, protocol.CompletionItemKindKeyword},
		{"TypeName", CompletionKindTypeName, protocol.CompletionItemKindClass},
		{"Field", CompletionKindField, protocol.CompletionItemKindField},
		{"Snippet", CompletionKindSnippet, protocol.CompletionItemKindSnippet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convertCompletionKind(tt.input))
		})
	}
}

func TestToLexerAndLSPPositionRoundTrip(t *testing.T) {
	lspPos := protocol.Position{Line: 3, Character: 7}
	lexPos := toLexerPos(lspPos)
	assert.Equal(t, uint32(3), lexPos.Line)
	assert.Equal(t, uint32(7), lexPos.Column)
	assert.Equal(t, lspPos, toLSPPosition(lexPos))
}

// Handler dispatch methods (handleHover, handleDefinition, etc.) thread
// jsonrpc2.Request/Replier values whose fields are unexported outside
// the jsonrpc2 package, so they are not unit-testable here; their query
// logic is covered directly in definition_test.go, hover_test.go,
// references_test.go, completion_test.go, semantictokens_test.go, and
// foldingrange_test.go.
