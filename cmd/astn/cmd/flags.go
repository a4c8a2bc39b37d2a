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
	"fmt"

	"github.com/spf13/pflag"
)

// Common flags
const (
	flagColumn    flagName = "column"
	flagConfig    flagName = "config"
	flagJSON      flagName = "json"
	flagLine      flagName = "line"
	flagSchema    flagName = "schema"
	flagSchemaCmd flagName = "schema-cmd"
	flagVerbose   flagName = "verbose"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.StringP(string(flagSchema), "s", "",
		"schema file describing the document")
	f.String(string(flagSchemaCmd), "",
		"command that writes the schema to its standard output")
	f.StringP(string(flagConfig), "c", "",
		"configuration file (default astn.toml in the current directory, if present)")
	f.Bool(string(flagJSON), false,
		"print results as a JSON array")
	f.BoolP(string(flagVerbose), "v", false,
		"print information about progress")
}

func addCursorFlags(f *pflag.FlagSet) {
	f.IntP(string(flagLine), "l", 0, "cursor line, starting at 1")
	f.IntP(string(flagColumn), "C", 0, "cursor column, starting at 1")
}

type flagName string

// ensureAdded detects if a flag is being used without it first being
// added to the flagSet. Because flagNames are global, it is quite
// easy to accidentally use a flag in a command without adding it to
// the flagSet.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

// IsSet reports whether the flag was given on the command line.
func (f flagName) IsSet(cmd *Command) bool {
	f.ensureAdded(cmd)
	return cmd.Flags().Changed(string(f))
}
