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

package process_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/go-quicktest/qt"

	"astn.dev/go/internal/process"
)

func requireSh(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCallOutput(t *testing.T) {
	requireSh(t)
	out, err := process.Call(context.Background(), `sh -c 'echo "hello world"'`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, "hello world\n"))
}

func TestCallExitError(t *testing.T) {
	requireSh(t)
	_, err := process.Call(context.Background(), `sh -c 'echo oops >&2; exit 3'`)
	var exitErr *process.ExitError
	qt.Assert(t, qt.ErrorAs(err, &exitErr))
	qt.Check(t, qt.Equals(exitErr.ExitCode, 3))
	qt.Check(t, qt.Equals(exitErr.Stderr, "oops\n"))
	qt.Check(t, qt.ErrorMatches(err, `command "sh -c 'echo oops >&2; exit 3'" failed with exit code 3`))
}

func TestCallBadCommand(t *testing.T) {
	tests := []struct {
		command string
		err     string
	}{{
		command: "",
		err:     "empty command",
	}, {
		command: `sh -c "unterminated`,
		err:     `cannot parse command .*`,
	}, {
		command: "astn-test-no-such-command-exists",
		err:     `running "astn-test-no-such-command-exists": .*`,
	}}
	for _, tc := range tests {
		t.Run(tc.command, func(t *testing.T) {
			_, err := process.Call(context.Background(), tc.command)
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
		})
	}
}

func TestCallCanceled(t *testing.T) {
	requireSh(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := process.Call(ctx, "sh -c 'sleep 5'")
	qt.Assert(t, qt.IsNotNil(err))
}
