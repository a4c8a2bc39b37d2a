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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"astn.dev/go/astn/errors"
	"astn.dev/go/astn/schema"
	"astn.dev/go/internal/process"
)

// inTest is set by the tests to print paths in a stable form.
var inTest = false

func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

func exitOnErr(cmd *Command, err error, fatal bool) {
	if err == nil {
		return
	}

	// Link x/text as our localizer.
	p := message.NewPrinter(getLang())
	format := func(w io.Writer, format string, args ...interface{}) {
		p.Fprintf(w, format, args...)
	}

	cwd, _ := os.Getwd()

	w := &bytes.Buffer{}
	errors.Print(w, err, &errors.Config{
		Format:  format,
		Cwd:     cwd,
		ToSlash: inTest,
	})

	b := w.Bytes()
	_, _ = cmd.Stderr().Write(b)
	if fatal {
		exit()
	}
}

// loadSchema loads the schema named by the settings, either from a file
// or from the output of a command.
func loadSchema(cmd *Command, cfg *settings) *schema.Schema {
	var (
		s   *schema.Schema
		err error
	)
	switch {
	case cfg.SchemaCmd != "":
		s, err = schemaFromCommand(cmd, cfg.SchemaCmd)
	case cfg.Schema != "":
		cmd.Logger().Debug("loading schema", "file", cfg.Schema)
		s, err = schema.LoadFile(cfg.Schema)
	default:
		err = errors.New("no schema given; use --schema or --schema-cmd")
	}
	exitOnErr(cmd, err, true)
	cmd.Logger().Debug("loaded schema", "root", s.Root.Name, "types", len(s.Types))
	return s
}

func schemaFromCommand(cmd *Command, command string) (*schema.Schema, error) {
	cmd.Logger().Debug("running schema command", "command", command)
	out, err := process.Call(cmd.Context(), command)
	if err != nil {
		var exitErr *process.ExitError
		if errors.As(err, &exitErr) && exitErr.Stderr != "" {
			return nil, fmt.Errorf("%v:\n%s", err, strings.TrimRight(exitErr.Stderr, "\n"))
		}
		return nil, err
	}
	return schema.Parse("schema-cmd", []byte(out))
}

// readDocument returns the name and contents of the document named by
// args. With no argument, or with "-", the document is read from
// standard input.
func readDocument(cmd *Command, args []string) (string, []byte) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		exitOnErr(cmd, err, true)
		return "-", b
	}
	b, err := os.ReadFile(args[0])
	exitOnErr(cmd, err, true)
	if !inTest {
		return args[0], b
	}
	return filepath.ToSlash(args[0]), b
}

// checkCursor reports a fatal error if the cursor flags are not set to
// a valid location.
func checkCursor(cmd *Command) (line, column int) {
	line, column = flagLine.Int(cmd), flagColumn.Int(cmd)
	if line < 1 || column < 1 {
		exitOnErr(cmd, errors.New("--line and --column must be given and at least 1"), true)
	}
	return line, column
}

// reportIncomplete logs the error that stopped reading the document.
// Documents being edited are often incomplete, so this is not fatal.
func reportIncomplete(cmd *Command, err error) {
	if err == nil {
		return
	}
	for _, e := range errors.Errors(err) {
		cmd.Logger().Warn("document read partially", "error", e.Error())
	}
}

// printResults writes texts to the command's output, either one per line
// or as a JSON array.
func printResults(cmd *Command, cfg *settings, texts []string) {
	w := cmd.OutOrStdout()
	if !cfg.JSON {
		for _, text := range texts {
			fmt.Fprintln(w, text)
		}
		return
	}
	if texts == nil {
		texts = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	exitOnErr(cmd, enc.Encode(texts), true)
}
