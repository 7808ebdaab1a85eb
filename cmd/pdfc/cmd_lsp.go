package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/pdfc/lsp"
)

const version = "0.1.0"

func newLSPCmd(g *globals) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []lsp.Option{
				lsp.WithEdition(g.editionValue()),
				lsp.WithExtensions(g.cfg.Extensions),
			}
			if watch || g.cfg.Watch {
				opts = append(opts, lsp.WithWatch(g.cfg.Debounce))
			}
			server := lsp.NewServer(version, opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "follow changes to files on disk")

	return cmd
}
