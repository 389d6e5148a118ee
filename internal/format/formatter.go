// Package format runs the printer against a CSL document and reports the
// result as both a human-facing diff and a list of LSP-shaped text edits,
// per SPEC_FULL §4.4.
package format

import (
	"fmt"
	"os"

	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
	"github.com/csl-lang/csl/internal/printer"
)

// Formatter formats CSL source text.
type Formatter struct {
	config *Config
}

// New creates a Formatter with the given configuration, falling back to
// DefaultConfig when config is nil.
func New(config *Config) *Formatter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Formatter{config: config}
}

// Result is everything one Format call produces: the canonical text, the
// human-facing diff, and the minimal line-granular edits that would bring
// the original document to that text.
type Result struct {
	Formatted string
	Diff      *DiffResult
	Edits     []TextEdit
}

// Format lexes and parses source, then prints it back canonically. If the
// parser or the lexer reports an error-severity diagnostic, Format returns
// an error and no Result; the printer does not run.
func (f *Formatter) Format(source string) (*Result, error) {
	l := lexer.New(source, "")
	tokens, lexDiags := l.ScanTokens()

	res := parser.Parse(tokens)
	if res.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("cannot format source with syntax errors: %s", res.Diagnostics.Error())
	}
	if hasLexErrors(lexDiags) {
		return nil, fmt.Errorf("cannot format source with lexical errors")
	}

	formatted := printer.PrintIndented(res.Schemas, f.config.IndentSize)
	diff := Diff(source, formatted)
	return &Result{
		Formatted: formatted,
		Diff:      diff,
		Edits:     computeEdits(source, formatted),
	}, nil
}

func hasLexErrors(diags []lexer.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == lexer.SeverityError {
			return true
		}
	}
	return false
}

// FormatFile reads path, formats its contents, and returns the result.
func FormatFile(path string, config *Config) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(config).Format(string(content))
}
