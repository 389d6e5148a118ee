// Package diagnostics renders lexer/parser diagnostics for a terminal,
// shared by the cslc CLI's test command and the LSP's diagnostic
// publisher, per SPEC_FULL §2/§7. It carries none of the source-context
// snippet machinery of compiler/errors/terminal.go: a diagnostic's Region
// already names exactly where it happened, and the CLI/LSP surfaces that
// consume this package render the file themselves when a snippet is
// wanted.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/csl-lang/csl/internal/lexer"
)

// Diagnostic is the minimal shape this package needs: both lexer.
// Diagnostic and parser.Diagnostic satisfy it structurally via the
// FromLexer/FromParser constructors below, since Go has no common
// interface between the two teacher-style diagnostic structs.
type Diagnostic struct {
	File     string
	Message  string
	Region   lexer.Region
	Severity lexer.Severity
	Code     string
}

// FromLexer adapts a slice of lexer.Diagnostic, attaching file.
func FromLexer(file string, diags []lexer.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{File: file, Message: d.Message, Region: d.Region, Severity: d.Severity, Code: d.Code}
	}
	return out
}

// ParserDiagnostic is the subset of parser.Diagnostic's fields this
// package needs, avoiding a direct dependency on the parser package (the
// parser already depends on the lexer; diagnostics should not need to
// import the parser just to render its output).
type ParserDiagnostic struct {
	Message  string
	Region   lexer.Region
	Severity lexer.Severity
	Code     string
}

// FromParser adapts a slice of ParserDiagnostic-shaped values, attaching
// file.
func FromParser(file string, diags []ParserDiagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{File: file, Message: d.Message, Region: d.Region, Severity: d.Severity, Code: d.Code}
	}
	return out
}

// FormatForTerminal renders one diagnostic as a single colorized line:
// "severity[code] file:line:col: message".
func (d Diagnostic) FormatForTerminal() string {
	severityColor := colorForSeverity(d.Severity)
	label := severityColor.Sprintf("%s[%s]", d.severityLabel(), d.Code)
	return fmt.Sprintf("%s %s:%s: %s", label, d.File, d.Region.Start, d.Message)
}

func (d Diagnostic) severityLabel() string {
	if d.Severity == lexer.SeverityWarning {
		return "warning"
	}
	return "error"
}

func colorForSeverity(sev lexer.Severity) *color.Color {
	if sev == lexer.SeverityWarning {
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgRed, color.Bold)
}

// FormatAll renders every diagnostic on its own line, in order.
func FormatAll(diags []Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.FormatForTerminal()
	}
	return strings.Join(lines, "\n")
}

// Summary is the error/warning counts for a diagnostic batch.
type Summary struct {
	ErrorCount   int
	WarningCount int
}

// Summarize counts diags by severity.
func Summarize(diags []Diagnostic) Summary {
	var s Summary
	for _, d := range diags {
		if d.Severity == lexer.SeverityWarning {
			s.WarningCount++
		} else {
			s.ErrorCount++
		}
	}
	return s
}

// FormatSummary renders a one-line colorized summary, or a clean-bill
// message when there is nothing to report.
func FormatSummary(s Summary) string {
	if s.ErrorCount == 0 && s.WarningCount == 0 {
		return color.GreenString("no errors or warnings")
	}

	var parts []string
	if s.ErrorCount > 0 {
		parts = append(parts, color.New(color.FgRed, color.Bold).Sprintf("%d error(s)", s.ErrorCount))
	}
	if s.WarningCount > 0 {
		parts = append(parts, color.New(color.FgYellow, color.Bold).Sprintf("%d warning(s)", s.WarningCount))
	}
	return strings.Join(parts, ", ")
}

// HasErrors reports whether diags contains anything at error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity != lexer.SeverityWarning {
			return true
		}
	}
	return false
}

// StripColors removes ANSI escape sequences from s, for test assertions
// and for --no-color terminal output.
func StripColors(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
