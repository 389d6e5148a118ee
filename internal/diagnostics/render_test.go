package diagnostics

import (
	"strings"
	"testing"

	"github.com/csl-lang/csl/internal/lexer"
)

func TestFormatForTerminalIncludesCodeAndLocation(t *testing.T) {
	d := Diagnostic{
		File:     "app.csl",
		Message:  "unrecognized character sequence: $$$",
		Region:   lexer.Region{Start: lexer.Position{Line: 3, Column: 4}, End: lexer.Position{Line: 3, Column: 7}},
		Severity: lexer.SeverityError,
		Code:     "L014",
	}

	out := StripColors(d.FormatForTerminal())
	if !strings.Contains(out, "L014") {
		t.Errorf("expected code L014 in output, got: %s", out)
	}
	if !strings.Contains(out, "app.csl") {
		t.Errorf("expected file name in output, got: %s", out)
	}
	if !strings.Contains(out, d.Message) {
		t.Errorf("expected message in output, got: %s", out)
	}
}

func TestSummarizeCountsBySeverity(t *testing.T) {
	diags := []Diagnostic{
		{Severity: lexer.SeverityError},
		{Severity: lexer.SeverityError},
		{Severity: lexer.SeverityWarning},
	}
	s := Summarize(diags)
	if s.ErrorCount != 2 || s.WarningCount != 1 {
		t.Errorf("expected 2 errors and 1 warning, got %+v", s)
	}
}

func TestFormatSummaryCleanBill(t *testing.T) {
	out := StripColors(FormatSummary(Summary{}))
	if !strings.Contains(out, "no errors") {
		t.Errorf("expected a clean-bill message, got: %s", out)
	}
}

func TestHasErrors(t *testing.T) {
	onlyWarnings := []Diagnostic{{Severity: lexer.SeverityWarning}}
	if HasErrors(onlyWarnings) {
		t.Errorf("expected HasErrors to be false for warnings-only input")
	}

	withError := []Diagnostic{{Severity: lexer.SeverityWarning}, {Severity: lexer.SeverityError}}
	if !HasErrors(withError) {
		t.Errorf("expected HasErrors to be true once an error is present")
	}
}

func TestFromLexerAttachesFile(t *testing.T) {
	diags := []lexer.Diagnostic{
		{Message: "bad token", Severity: lexer.SeverityError, Code: "L002"},
	}
	out := FromLexer("config.csl", diags)
	if len(out) != 1 || out[0].File != "config.csl" || out[0].Code != "L002" {
		t.Errorf("expected file/code to carry over, got %+v", out)
	}
}
