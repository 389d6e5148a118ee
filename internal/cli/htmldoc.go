package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csl-lang/csl/internal/cslconfig"
	"github.com/csl-lang/csl/internal/htmldoc"
	"github.com/csl-lang/csl/internal/lexer"
	"github.com/csl-lang/csl/internal/parser"
)

var (
	htmldocProjectName string
	htmldocDescription string
	htmldocVersion     string
	htmldocBaseURL     string
	htmldocMarkdown    bool
)

// NewHTMLDocCommand creates the htmldoc command: generate an HTML (and
// optionally Markdown) documentation site for a CSL file.
func NewHTMLDocCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmldoc <file> <outdir>",
		Short: "Generate an HTML documentation site for a CSL file",
		Long: `Parse a CSL schema file and generate a browsable HTML documentation
site describing every table, key, type, default, and constraint it
declares. One page is written per nested table; --markdown additionally
writes one flat Markdown file per schema.`,
		Args: cobra.ExactArgs(2),
		RunE: runHTMLDoc,
	}

	cmd.Flags().StringVar(&htmldocProjectName, "name", "", "Project name (defaults to csl.yml, then the input file's base name)")
	cmd.Flags().StringVar(&htmldocDescription, "description", "", "Project description (defaults to csl.yml)")
	cmd.Flags().StringVar(&htmldocVersion, "version", "", "Project version (defaults to csl.yml)")
	cmd.Flags().StringVar(&htmldocBaseURL, "base-url", "", "Base URL for generated links (defaults to csl.yml)")
	cmd.Flags().BoolVar(&htmldocMarkdown, "markdown", false, "Also write a Markdown file per schema")

	return cmd
}

func runHTMLDoc(cmd *cobra.Command, args []string) error {
	file, outDir := args[0], args[1]

	projectCfg, err := cslconfig.Load()
	if err != nil {
		return fmt.Errorf("failed to load csl.yml: %w", err)
	}

	cfg := htmldocConfigFrom(projectCfg, file)

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	l := lexer.New(string(content), file)
	tokens, lexDiags := l.ScanTokens()
	result := parser.Parse(tokens)

	if result.Diagnostics.HasErrors() || hasLexErrors(lexDiags) {
		return fmt.Errorf("%s has syntax errors; run 'cslc test %s' for details", file, file)
	}

	pages, err := htmldoc.Generate(result.Schemas, cfg)
	if err != nil {
		return fmt.Errorf("failed to generate documentation: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}
	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(body), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if htmldocMarkdown {
		for name, body := range htmldoc.GenerateMarkdown(result.Schemas) {
			if err := os.WriteFile(filepath.Join(outDir, name), []byte(body), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
	}

	color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "✓ wrote %d file(s) to %s\n", len(pages), outDir)
	return nil
}

func htmldocConfigFrom(projectCfg *cslconfig.Config, file string) *htmldoc.Config {
	name := htmldocProjectName
	if name == "" {
		name = projectCfg.ProjectName
	}
	if name == "" {
		name = filepath.Base(file)
	}

	description := htmldocDescription
	if description == "" {
		description = projectCfg.Docs.Description
	}
	version := htmldocVersion
	if version == "" {
		version = projectCfg.Docs.Version
	}
	baseURL := htmldocBaseURL
	if baseURL == "" {
		baseURL = projectCfg.Docs.BaseURL
	}

	return &htmldoc.Config{
		ProjectName:        name,
		ProjectVersion:     version,
		ProjectDescription: description,
		BaseURL:            baseURL,
	}
}

func hasLexErrors(diags []lexer.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == lexer.SeverityError {
			return true
		}
	}
	return false
}
