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
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"astn.dev/go/astn/errors"
	"astn.dev/go/astn/token"
)

// defaultConfigFile is read from the current directory when no
// configuration file is named with --config.
const defaultConfigFile = "astn.toml"

// settings holds the options shared by all commands, as read from the
// configuration file and then overridden by flags.
type settings struct {
	Schema    string `toml:"schema"`
	SchemaCmd string `toml:"schema-cmd"`
	JSON      bool   `toml:"json"`
}

func loadSettings(cmd *Command) *settings {
	cfg := &settings{}

	path := flagConfig.String(cmd)
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cmd.Logger().Debug("reading configuration", "file", path)
		exitOnErr(cmd, decodeSettings(path, data, cfg), true)
	case explicit || !errors.Is(err, os.ErrNotExist):
		exitOnErr(cmd, err, true)
	}

	if flagSchema.IsSet(cmd) {
		cfg.Schema = flagSchema.String(cmd)
		cfg.SchemaCmd = ""
	}
	if flagSchemaCmd.IsSet(cmd) {
		cfg.SchemaCmd = flagSchemaCmd.String(cmd)
	}
	if flagJSON.IsSet(cmd) {
		cfg.JSON = flagJSON.Bool(cmd)
	}
	return cfg
}

func decodeSettings(path string, data []byte, cfg *settings) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, column := decodeErr.Position()
			return errors.Newf(path, token.Location{Line: line, Column: column}, "%s", decodeErr.Error())
		}
		return errors.Wrapf(err, path, token.Location{}, "invalid configuration")
	}
	// A schema file named in the configuration is relative to it.
	if cfg.Schema != "" && !filepath.IsAbs(cfg.Schema) {
		cfg.Schema = filepath.Join(filepath.Dir(path), cfg.Schema)
	}
	return nil
}
