package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/pdfc/pdf/parser"
)

func newLexCmd(g *globals) *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the classified tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(g.fs, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			lexed := parser.Lex(g.editionValue(), data)
			if err := writeTokens(cmd.OutOrStdout(), lexed, trivia); err != nil {
				return err
			}
			for range lexed.Errors() {
				return errFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", true, "include whitespace, newlines and comments")

	return cmd
}

// writeTokens prints one `Kind@start..end "text"` line per token, followed
// by an indented line for its lexical error.
func writeTokens(w io.Writer, lexed *parser.LexedStr, trivia bool) error {
	for i := range lexed.Len() {
		kind := lexed.Kind(i)
		if !trivia && kind.IsTrivia() {
			continue
		}
		start, end := lexed.TextRange(i)
		if _, err := fmt.Fprintf(w, "%s@%d..%d %q\n", kind, start, end, lexed.Text(i)); err != nil {
			return err
		}
		if msg, ok := lexed.Error(i); ok {
			if _, err := fmt.Fprintf(w, "  error: %s\n", msg); err != nil {
				return err
			}
		}
	}
	return nil
}
