/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Update the pokedb schema in place",
		Long: `Bring an existing pokedb schema up to date after an upgrade.

GORM AutoMigrate adds missing tables, columns and indexes, and name
columns get their "C" collation again. The update is non-destructive:
it does NOT delete tables, columns or rows.

Examples:
  pokedb migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMigrate()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runMigrate() error {
	ctx := context.Background()

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}
	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		return err
	}

	gn.Info("Schema of <em>%s</em> is up to date.", cfg.Database.Database)
	return nil
}
