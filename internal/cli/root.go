// Package cli assembles the cslc command tree: test, htmldoc, format,
// langsvr, and version, per SPEC_FULL §6.1.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand builds the cslc root command and every subcommand.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cslc",
		Short: "CSL schema language toolchain",
		Long: color.CyanString(`cslc - Config Schema Language toolchain

CSL describes the shape of a configuration file: its tables, keys, types,
defaults, and cross-key constraints. cslc lexes and parses CSL documents,
formats them canonically, renders HTML/Markdown documentation sites, and
serves a Language Server Protocol backend for editor integration.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewTestCommand())
	rootCmd.AddCommand(NewHTMLDocCommand())
	rootCmd.AddCommand(NewFormatCommand())
	rootCmd.AddCommand(NewLangsvrCommand())

	return rootCmd
}

// Execute runs the root command, printing any returned error to stderr.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
