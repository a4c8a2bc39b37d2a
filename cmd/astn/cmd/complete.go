// Copyright 2025 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/spf13/cobra"

	"astn.dev/go/ide/completion"
)

func newCompleteCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [file]",
		Short: "print the completions at a cursor position",
		Long: `complete prints the texts that can be inserted at the cursor position
given by --line and --column.

Each completion is printed followed by a newline. As completions may
themselves span several lines, editors should use --json.

The document is read from the named file, or from standard input if the
file is omitted or "-". A document that cannot be read to the end still
gets the completions found before the point where reading stopped.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runComplete),
	}
	addCursorFlags(cmd.Flags())
	return cmd
}

func runComplete(cmd *Command, args []string) error {
	line, column := checkCursor(cmd)
	cfg := loadSettings(cmd)
	s := loadSchema(cmd, cfg)
	filename, src := readDocument(cmd, args)

	texts, err := completion.Find(filename, src, s, line, column)
	reportIncomplete(cmd, err)
	cmd.Logger().Debug("found completions", "line", line, "column", column, "count", len(texts))
	printResults(cmd, cfg, texts)
	return nil
}
