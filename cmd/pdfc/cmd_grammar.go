package main

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pdfc/pdf/parser"
)

func newGrammarCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the PDF object syntax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify {
				if _, err := parser.Grammar(); err != nil {
					printErrors(cmd, err)
					return errFound
				}
				fmt.Fprintf(cmd.OutOrStdout(), "grammar ok (start: %s)\n", parser.GrammarStart)
				return nil
			}
			_, err := cmd.OutOrStdout().Write(parser.GrammarText)
			return err
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the grammar instead of printing it")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
		return
	}
	fmt.Fprintln(w, err)
}
