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
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var force bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the pokedb schema",
		Long: `Create all pokedb tables in an empty PostgreSQL database.

Tables are built by GORM AutoMigrate from the models of entities,
their join tables and import runs. Name columns get "C" collation.

If the database already has tables you are asked before they are
dropped. --force drops them without asking.

Examples:
  pokedb create
  pokedb create --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&force, "force", "f", false,
		"drop existing tables without confirmation")

	return createCmd
}

func runCreate(force bool) error {
	ctx := context.Background()

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()

	if !force {
		hasTables, err := op.HasTables(ctx)
		if err != nil {
			return err
		}
		if hasTables {
			gn.Warn("Database <em>%s</em> has tables, they will be dropped with all data.",
				cfg.Database.Database)
			ok, err := confirm(stdin, "Drop existing tables?")
			if err != nil {
				return err
			}
			if !ok {
				gn.Info("Aborted. No changes made.")
				return nil
			}
			force = true
		}
	}

	if err = ioschema.NewManager(op).Create(ctx, force); err != nil {
		return err
	}

	gn.Info("Created %d tables in <em>%s</em>. Next: <em>pokedb import all</em>",
		len(schema.AllModels()), cfg.Database.Database)
	return nil
}
