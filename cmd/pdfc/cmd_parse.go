package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/pdfc/format"
	"github.com/dhamidi/pdfc/pdf/parser"
	"github.com/dhamidi/pdfc/pdf/syntax"
)

var entryPoints = map[string]parser.TopEntryPoint{
	"document": parser.EntryPdfDocument,
	"expr":     parser.EntryExpr,
}

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string
	var entry string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			ep, ok := entryPoints[entry]
			if !ok {
				return fmt.Errorf("unknown entry point: %s", entry)
			}
			enc, err := format.New(outputFormat, cmd.OutOrStdout(), filename)
			if err != nil {
				return err
			}

			data, err := afero.ReadFile(g.fs, filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}
			p := syntax.ParseText(data,
				syntax.WithEdition(g.editionValue()),
				syntax.WithEntryPoint(ep),
			)
			if err := enc.Encode(p); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVar(&entry, "entry", "document", "grammar entry point (document, expr)")

	return cmd
}
