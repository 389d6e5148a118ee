package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csl-lang/csl/internal/diagnostics"
	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

// NewTestCommand creates the test command: lex+parse a CSL file and print
// its diagnostics.
func NewTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <file>",
		Short: "Lex and parse a CSL file and report diagnostics",
		Long: `Lex and parse a CSL schema file, printing every lexical, syntactic,
and semantic diagnostic found.

Exits 0 when the file is free of error-severity diagnostics (warnings do
not fail the command), 1 otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: runTest,
	}
}

func runTest(cmd *cobra.Command, args []string) error {
	file := args[0]
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	l := lexer.New(string(content), file)
	tokens, lexDiags := l.ScanTokens()

	result := parser.Parse(tokens)

	parserDiags := make([]diagnostics.ParserDiagnostic, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		parserDiags[i] = diagnostics.ParserDiagnostic{
			Message:  d.Message,
			Region:   d.Region,
			Severity: d.Severity,
			Code:     d.Code,
		}
	}

	all := append(diagnostics.FromLexer(file, lexDiags), diagnostics.FromParser(file, parserDiags)...)

	if len(all) == 0 {
		color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "✓ %s\n", file)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), diagnostics.FormatAll(all))
	summary := diagnostics.Summarize(all)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", diagnostics.FormatSummary(summary))

	if diagnostics.HasErrors(all) {
		return fmt.Errorf("%s has %d error(s)", file, summary.ErrorCount)
	}
	return nil
}
