package lsp

import "github.com/csl-lang/csl/internal/lexer"

// FoldKind is the LSP FoldingRangeKind this package produces.
type FoldKind string

const (
	FoldRegion  FoldKind = "region"
	FoldComment FoldKind = "comment"
)

// FoldRange is one collapsible line span.
type FoldRange struct {
	StartLine uint32
	EndLine   uint32
	Kind      FoldKind
}

// FoldingRanges computes brace-delimited and comment-run folds over
// tokens, per SPEC_FULL §4.6: braces pair LIFO, and a run of two or more
// consecutive comment tokens (no non-comment token between them) folds
// as a single comment block. tokens must include comments.
func FoldingRanges(tokens []lexer.Token) []FoldRange {
	var ranges []FoldRange
	ranges = append(ranges, braceFolds(tokens)...)
	ranges = append(ranges, commentFolds(tokens)...)
	return ranges
}

func braceFolds(tokens []lexer.Token) []FoldRange {
	var ranges []FoldRange
	var stack []lexer.Token

	for _, tok := range tokens {
		if tok.Kind != lexer.KindPunctuator {
			continue
		}
		switch tok.Value {
		case "{":
			stack = append(stack, tok)
		case "}":
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if tok.Range.Start.Line > open.Range.Start.Line {
				ranges = append(ranges, FoldRange{
					StartLine: open.Range.Start.Line,
					EndLine:   tok.Range.Start.Line,
					Kind:      FoldRegion,
				})
			}
		}
	}
	return ranges
}

func commentFolds(tokens []lexer.Token) []FoldRange {
	var ranges []FoldRange
	i := 0
	for i < len(tokens) {
		if tokens[i].Kind != lexer.KindComment {
			i++
			continue
		}
		start := i
		for i < len(tokens) && tokens[i].Kind == lexer.KindComment {
			i++
		}
		end := i - 1
		if end > start {
			ranges = append(ranges, FoldRange{
				StartLine: tokens[start].Range.Start.Line,
				EndLine:   tokens[end].Range.Start.Line,
				Kind:      FoldComment,
			})
		}
	}
	return ranges
}
