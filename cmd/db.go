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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/pokedb/internal/iodb"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/db"
)

// connect opens the database of the configuration.
func connect(ctx context.Context, dbCfg *config.DatabaseConfig) (db.Operator, error) {
	appName := config.AppName
	if cfg != nil && cfg.IsWorker() {
		appName = fmt.Sprintf("%s-worker-%d", config.AppName, cfg.Import.WorkerID)
	}
	op := iodb.NewPgxOperator(iodb.OptAppName(appName))
	if err := op.Connect(ctx, dbCfg); err != nil {
		return nil, err
	}
	slog.Debug("Connected to database",
		"host", dbCfg.Host, "database", dbCfg.Database)
	return op, nil
}

// requireSchema fails when the database has no tables yet.
func requireSchema(ctx context.Context, op db.Operator) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(&cfg.Database)
	}
	return nil
}

// confirm asks a yes/no question on the terminal.
func confirm(in io.Reader, question string) (bool, error) {
	fmt.Printf("\n%s (yes/no): ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}

var stdin io.Reader = os.Stdin
