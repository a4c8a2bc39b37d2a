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

// Package process runs external commands given as a single command line.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/google/shlex"
)

// ExitError is returned by [Call] when the command ran but failed.
type ExitError struct {
	Command string

	// Stderr holds what the command wrote to its standard error.
	Stderr string

	// ExitCode is the exit status of the command, or -1 if it was
	// terminated by a signal.
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

// Call runs command and returns its standard output.
//
// The command line is split into words using shell quoting rules; it is
// not interpreted by a shell. If the command exits with a non-zero
// status, the returned error is an *ExitError.
func Call(ctx context.Context, command string) (string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("cannot parse command %q: %v", command, err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{
				Command:  command,
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return "", fmt.Errorf("running %q: %v", command, err)
	}
	return stdout.String(), nil
}
