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
	"fmt"
	"io"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/iofs"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/spf13/cobra"
)

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	var showSecrets bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after config.yaml, environment variables
and defaults are merged, in the layout of config.yaml. Passwords are
masked unless --show-secrets is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := printConfig(os.Stdout, cfg, showSecrets)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false,
		"print passwords")
	return configCmd
}

func printConfig(w io.Writer, c *config.Config, showSecrets bool) error {
	out := *c
	if !showSecrets {
		if out.Database.Password != "" {
			out.Database.Password = "****"
		}
		if out.Redis.Password != "" {
			out.Redis.Password = "****"
		}
	}
	bs, err := iofs.MarshalConfig(&out)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n%s", config.ConfigFilePath(c.HomeDir), bs)
	return nil
}
