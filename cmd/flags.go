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
	"github.com/spf13/cobra"
)

// workerIDFlag returns the value of --worker-id, or -1 for commands
// that are not workers.
func workerIDFlag(cmd *cobra.Command) int {
	if cmd.Flags().Lookup("worker-id") == nil {
		return -1
	}
	id, err := cmd.Flags().GetInt("worker-id")
	if err != nil {
		return -1
	}
	return id
}

// changedInt returns the value of an int flag and whether it was set on
// the command line.
func changedInt(cmd *cobra.Command, name string) (int, bool) {
	f := cmd.Flags()
	if !f.Changed(name) {
		return 0, false
	}
	v, err := f.GetInt(name)
	if err != nil {
		return 0, false
	}
	return v, true
}
