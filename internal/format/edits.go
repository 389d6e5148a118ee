package format

import (
	"strings"

	"github.com/csl-lang/csl/internal/lexer"
)

// TextEdit replaces the text covered by Range with NewText. Ranges are
// whole-line, matching the line-granular diff in diff.go rather than a
// character-level LCS: formatting rewrites are expected to touch spacing
// and ordering within a line, not mid-line substrings.
type TextEdit struct {
	Range   lexer.Region
	NewText string
}

// computeEdits walks original and formatted line by line and emits one
// TextEdit per changed line, extending a run of consecutive changed lines
// into a single edit so callers (the LSP formatting handler, in
// particular) don't have to coalesce themselves.
func computeEdits(original, formatted string) []TextEdit {
	origLines := strings.Split(original, "\n")
	formLines := strings.Split(formatted, "\n")

	maxLines := len(origLines)
	if len(formLines) > maxLines {
		maxLines = len(formLines)
	}

	var edits []TextEdit
	i := 0
	for i < maxLines {
		origLine, haveOrig := lineAt(origLines, i)
		formLine, haveForm := lineAt(formLines, i)
		if origLine == formLine && haveOrig == haveForm {
			i++
			continue
		}

		start := i
		var newLines []string
		for i < maxLines {
			o, hasO := lineAt(origLines, i)
			f, hasF := lineAt(formLines, i)
			if o == f && hasO == hasF {
				break
			}
			if hasF {
				newLines = append(newLines, f)
			}
			i++
		}
		// The edit's range ends at the start of line i, so the newline that
		// ends the last replaced line belongs in NewText.
		newText := strings.Join(newLines, "\n")
		if i < maxLines {
			newText += "\n"
		}

		edits = append(edits, TextEdit{
			Range: lexer.Region{
				Start: lexer.Position{Line: uint32(start), Column: 0},
				End:   lexer.Position{Line: uint32(i), Column: 0},
			},
			NewText: newText,
		})
	}
	return edits
}

func lineAt(lines []string, i int) (string, bool) {
	if i < 0 || i >= len(lines) {
		return "", false
	}
	return lines[i], true
}
