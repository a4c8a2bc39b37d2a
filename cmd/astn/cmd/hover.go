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

	"astn.dev/go/ide/hover"
)

func newHoverCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hover [file]",
		Short: "print the hover texts at a cursor position",
		Long: `hover prints the name of the property whose value is opened or closed
by the token at the cursor position given by --line and --column.

The document is read as for 'astn complete'.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runHover),
	}
	addCursorFlags(cmd.Flags())
	return cmd
}

func runHover(cmd *Command, args []string) error {
	line, column := checkCursor(cmd)
	cfg := loadSettings(cmd)
	s := loadSchema(cmd, cfg)
	filename, src := readDocument(cmd, args)

	texts, err := hover.Find(filename, src, s, line, column)
	reportIncomplete(cmd, err)
	printResults(cmd, cfg, texts)
	return nil
}
