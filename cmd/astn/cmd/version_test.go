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
	"runtime/debug"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestModuleVersion(t *testing.T) {
	tests := []struct {
		name     string
		main     string
		settings []debug.BuildSetting
		want     string
	}{{
		name: "Devel",
		main: "(devel)",
		want: "(devel)",
	}, {
		name: "Tagged",
		main: "v0.3.0",
		settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
		},
		want: "v0.3.0",
	}, {
		name: "Pseudo",
		settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
		},
		want: "v0.0.0-20240102030405-0123456789ab",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bi := &debug.BuildInfo{
				Main:     debug.Module{Version: tt.main},
				Settings: tt.settings,
			}
			qt.Assert(t, qt.Equals(moduleVersion(bi), tt.want))
		})
	}
}
