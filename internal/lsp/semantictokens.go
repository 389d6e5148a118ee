package lsp

import (
	"unicode/utf8"

	"github.com/csl-lang/csl/internal/lexer"
)

// EncodeSemanticTokens encodes tokens as the LSP semanticTokens/full data
// array: a flat sequence of [deltaLine, deltaStartChar, length,
// tokenType, tokenModifiers] quintuples, delta-encoded relative to the
// previous token's start position, per SPEC_FULL §4.6. CSL defines no
// modifiers, so that field is always 0. A token that spans multiple
// lines reports the rune length of its source literal, per spec.
func EncodeSemanticTokens(tokens []lexer.Token) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevStart uint32
	for i, tok := range tokens {
		line := tok.Range.Start.Line
		start := tok.Range.Start.Column

		var deltaLine uint32
		var deltaStart uint32
		if i == 0 || line != prevLine {
			deltaLine = line - prevLine
			deltaStart = start
		} else {
			deltaLine = 0
			deltaStart = start - prevStart
		}

		length := tokenLength(tok)
		tokenType := uint32(tok.Kind.SemanticIndex())

		data = append(data, deltaLine, deltaStart, length, tokenType, 0)

		prevLine = line
		prevStart = start
	}

	return data
}

func tokenLength(tok lexer.Token) uint32 {
	if tok.Range.Start.Line == tok.Range.End.Line {
		return tok.Range.End.Column - tok.Range.Start.Column
	}
	return uint32(utf8.RuneCountInString(tok.Value))
}
