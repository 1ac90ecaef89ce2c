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
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/iostore"
	"github.com/gnames/pokedb/pkg/store"
	"github.com/spf13/cobra"
)

// getClearCmd returns the clear command.
func getClearCmd() *cobra.Command {
	var force bool

	clearCmd := &cobra.Command{
		Use:   "clear <entity>|all",
		Short: "Delete all imported rows of an entity",
		Long: `Delete all rows of an entity together with the rows that depend
on them. Evolution edges go with their chains, clearing pokemon also
removes their stats, game indices and membership rows.

Entities: types, abilities, moves, items, species, evolution-chains,
pokemon, or all.

Examples:
  pokedb clear moves
  pokedb clear all --force`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: clearArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runClear(args[0], force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	clearCmd.Flags().BoolVarP(&force, "force", "f", false,
		"delete without confirmation")

	return clearCmd
}

func clearArgs() []string {
	res := []string{"all"}
	for _, e := range store.Entities() {
		res = append(res, e.String())
	}
	return res
}

// clearTargets returns entities to clear, dependents first.
func clearTargets(name string) ([]store.Entity, error) {
	if name == "all" {
		res := store.Entities()
		slices.Reverse(res)
		return res, nil
	}
	e, ok := store.ParseEntity(name)
	if !ok {
		return nil, iostore.UnknownEntityError(name)
	}
	return []store.Entity{e}, nil
}

func runClear(name string, force bool) error {
	ctx := context.Background()

	targets, err := clearTargets(name)
	if err != nil {
		return err
	}

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	gdb, err := op.GORM()
	if err != nil {
		return err
	}
	st := iostore.New(gdb)

	if !force {
		q := fmt.Sprintf("Delete all rows of %s?", name)
		ok, err := confirm(stdin, q)
		if err != nil {
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	for _, e := range targets {
		n, err := st.Count(ctx, e)
		if err != nil {
			return err
		}
		if err = st.Clear(ctx, e); err != nil {
			return err
		}
		gn.Info("Cleared <em>%s</em>: %s rows", e, humanize.Comma(n))
	}
	return nil
}
