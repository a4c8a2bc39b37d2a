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
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/mod/module"
)

func newVersionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print astn version",
		Long:  ``,
		Args:  cobra.NoArgs,
		RunE:  mkRunE(c, runVersion),
	}
	return cmd
}

const defaultVersion = "(devel)"

// version can be set by a builder using
// -ldflags='-X astn.dev/go/cmd/astn/cmd.version=<version>'.
// Otherwise it is determined from the *debug.BuildInfo.
var version = defaultVersion

func runVersion(cmd *Command, args []string) error {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("unknown error reading build-info")
	}
	// ASTN_VERSION_TEST_CFG adds build settings in tests.
	if v := os.Getenv("ASTN_VERSION_TEST_CFG"); v != "" {
		var extra []debug.BuildSetting
		if err := json.Unmarshal([]byte(v), &extra); err != nil {
			return err
		}
		bi.Settings = append(bi.Settings, extra...)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "astn version %s\n\n", moduleVersion(bi))
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	for _, s := range bi.Settings {
		if strings.HasPrefix(s.Key, "vcs") && s.Value != "" {
			fmt.Fprintf(w, "%13s %s\n", s.Key, s.Value)
		}
	}
	return nil
}

// moduleVersion reports the version set at link time, the main module
// version, or a pseudo-version derived from the VCS settings, in that
// order of preference.
func moduleVersion(bi *debug.BuildInfo) string {
	if version != defaultVersion {
		return version
	}
	if v := bi.Main.Version; v != "" && v != defaultVersion {
		return v
	}
	var vcsTime time.Time
	var vcsRevision string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.time":
			// An invalid time gives a zero timestamp.
			vcsTime, _ = time.Parse(time.RFC3339Nano, s.Value)
		case "vcs.revision":
			vcsRevision = s.Value
		}
	}
	if vcsRevision == "" {
		return defaultVersion
	}
	// cmd/go uses a 12 character revision prefix as well.
	if len(vcsRevision) > 12 {
		vcsRevision = vcsRevision[:12]
	}
	return module.PseudoVersion("", "", vcsTime, vcsRevision)
}
