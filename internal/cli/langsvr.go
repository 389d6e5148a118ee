package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/csl-lang/csl/internal/lsp"
)

// NewLangsvrCommand creates the langsvr command, CSL's Language Server
// Protocol backend.
func NewLangsvrCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langsvr",
		Short: "Start the CSL Language Server Protocol server",
		Long: `Start the CSL Language Server Protocol (LSP) server.

Provides diagnostics, completion, hover, go-to-definition, find references,
rename, folding ranges, semantic tokens, and document formatting.

The server communicates over JSON-RPC on stdin/stdout. --stdio is accepted
for editor-integration compatibility; it is the only transport this
toolchain implements.`,
		RunE: runLangsvr,
	}
	cmd.Flags().Bool("stdio", true, "Communicate over stdin/stdout (the only supported transport)")
	return cmd
}

func runLangsvr(cmd *cobra.Command, args []string) error {
	server := lsp.NewServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		return err
	}
	os.Exit(server.ExitCode())
	return nil
}
