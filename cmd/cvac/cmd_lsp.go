package main

import (
	"github.com/dhamidi/cvac/cva/codebase"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, opts.compiler())
			return server.RunStdio()
		},
	}
}
