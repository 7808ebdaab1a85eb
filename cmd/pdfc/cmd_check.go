package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pdfc/format"
	"github.com/dhamidi/pdfc/pdf/db"
	"github.com/dhamidi/pdfc/pdf/workspace"
)

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Report syntax errors as file:line:col: message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database := db.New(db.WithEdition(g.editionValue()))

			var ids []db.FileID
			for _, arg := range args {
				info, err := g.fs.Stat(arg)
				if err != nil {
					return fmt.Errorf("check %s: %w", arg, err)
				}
				if info.IsDir() {
					found, err := workspace.Load(g.fs, database, arg, g.cfg.Extensions)
					if err != nil {
						return err
					}
					ids = append(ids, found...)
					continue
				}
				id, err := workspace.LoadFile(g.fs, database, arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			failed := 0
			for _, id := range ids {
				path, _ := database.Vfs().Path(id)
				p, err := database.Parse(id)
				if err != nil {
					return err
				}
				if p.Ok() {
					continue
				}
				failed++
				if err := format.NewLineEncoder(cmd.OutOrStdout(), path).Encode(p); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files have errors\n", failed, len(ids))
				return errFound
			}
			return nil
		},
	}
}
