package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csl-lang/csl/internal/format"
)

var (
	formatWrite  bool
	formatCheck  bool
	formatConfig string
)

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Format CSL source files",
		Long: `Format CSL schema files (.csl) using the configured indent style.

By default, shows a diff preview of what would change without modifying
files. Use --write to apply formatting changes, or --check to verify
formatting without writing.

Examples:
  cslc format                  # Show diff for all .csl files
  cslc format --write          # Format and save all files
  cslc format --check          # Exit with error if not formatted
  cslc format schema.csl       # Format a specific file`,
		RunE: runFormat,
	}

	cmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Write formatted output to files")
	cmd.Flags().BoolVarP(&formatCheck, "check", "c", false, "Check if files are formatted (exit 1 if not)")
	cmd.Flags().StringVar(&formatConfig, "config", ".csl-format.yml", "Path to formatting config file")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	config, err := format.LoadConfig(formatConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files, err := findCSLFiles(args)
	if err != nil {
		return fmt.Errorf("failed to find files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .csl files found")
	}

	hasChanges := false
	errorCount := 0

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed, color.Bold)

	for _, file := range files {
		original, err := os.ReadFile(file)
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", file, err)
			errorCount++
			continue
		}

		result, err := format.New(config).Format(string(original))
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", file, err)
			errorCount++
			continue
		}

		if !result.Diff.Changed {
			if !formatCheck {
				successColor.Fprintf(cmd.OutOrStdout(), "✓ %s (no changes)\n", file)
			}
			continue
		}

		hasChanges = true

		switch {
		case formatCheck:
			errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s needs formatting\n", file)
		case formatWrite:
			if err := os.WriteFile(file, []byte(result.Formatted), 0644); err != nil {
				errorColor.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", file, err)
				errorCount++
				continue
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ %s formatted\n", file)
		default:
			titleColor.Fprintf(cmd.OutOrStdout(), "\n=== %s ===\n", file)
			fmt.Fprintln(cmd.OutOrStdout(), result.Diff.String())
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", result.Diff.Stats())
		}
	}

	if !formatWrite && !formatCheck && hasChanges {
		fmt.Fprintln(cmd.OutOrStdout())
		titleColor.Fprintln(cmd.OutOrStdout(), "Run 'cslc format --write' to apply changes")
	}

	if formatCheck && hasChanges {
		return fmt.Errorf("files need formatting")
	}
	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	return nil
}

// findCSLFiles resolves args to a list of .csl files, defaulting to every
// .csl file under the current directory when args is empty. Every match
// is required to stay within the working directory.
func findCSLFiles(patterns []string) ([]string, error) {
	var files []string

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	for _, pattern := range patterns {
		absPattern, err := filepath.Abs(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", pattern, err)
		}

		relPath, err := filepath.Rel(cwd, absPattern)
		if err != nil || strings.HasPrefix(relPath, "..") {
			return nil, fmt.Errorf("path %s is outside working directory", pattern)
		}

		info, err := os.Stat(absPattern)
		if err == nil && info.IsDir() {
			walkErr := filepath.Walk(absPattern, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
					return filepath.SkipDir
				}
				if !info.IsDir() && strings.HasSuffix(path, ".csl") {
					files = append(files, path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, walkErr
			}
			continue
		}

		matches, err := filepath.Glob(absPattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			absMatch, err := filepath.Abs(match)
			if err != nil {
				continue
			}
			relMatch, err := filepath.Rel(cwd, absMatch)
			if err != nil || strings.HasPrefix(relMatch, "..") {
				continue
			}
			if strings.HasSuffix(match, ".csl") {
				files = append(files, match)
			}
		}
	}

	seen := make(map[string]bool)
	unique := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}
	return unique, nil
}
