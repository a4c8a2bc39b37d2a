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

package errors

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"astn.dev/go/astn/token"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		wantW string
	}{{
		name:  "SimplePromoted",
		err:   Promote(fmt.Errorf("hello"), "msg"),
		wantW: "msg: hello\n",
	}, {
		name:  "PromoteWithPercent",
		err:   Promote(fmt.Errorf("hello"), "msg%s"),
		wantW: "msg%s: hello\n",
	}, {
		name:  "PromoteWithEmptyString",
		err:   Promote(fmt.Errorf("hello"), ""),
		wantW: "hello\n",
	}, {
		name:  "TwoErrors",
		err:   Append(Promote(fmt.Errorf("hello"), "x"), Promote(fmt.Errorf("goodbye"), "y")),
		wantW: "x: hello\ny: goodbye\n",
	}, {
		name:  "WrappedMultiple",
		err:   fmt.Errorf("wrap: %w", Append(Promote(fmt.Errorf("hello"), "x"), Promote(fmt.Errorf("goodbye"), "y"))),
		wantW: "x: hello\ny: goodbye\n",
	}, {
		name:  "Positioned",
		err:   Newf("doc.astn", token.Location{Line: 3, Column: 7}, "unexpected %q", ")"),
		wantW: "doc.astn:3:7: unexpected \")\"\n",
	}, {
		name:  "PositionWithoutFile",
		err:   Newf("", token.Location{Line: 1, Column: 2}, "bad"),
		wantW: "1:2: bad\n",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &bytes.Buffer{}
			Print(w, tt.err, nil)
			qt.Assert(t, qt.Equals(w.String(), tt.wantW))
		})
	}
}

func TestPrintConfig(t *testing.T) {
	cwd := filepath.Join(string(filepath.Separator), "work")
	err := Append(
		Newf(filepath.Join(cwd, "sub", "doc.astn"), token.Location{Line: 1, Column: 2}, "found %d", 3),
		Wrapf(fmt.Errorf("inner"), filepath.Join(string(filepath.Separator), "elsewhere", "s.yaml"), token.Location{}, "outer"),
	)
	w := &bytes.Buffer{}
	Print(w, err, &Config{
		Cwd:     cwd,
		ToSlash: true,
		Format: func(w io.Writer, format string, args ...interface{}) {
			fmt.Fprintf(w, "<"+format+">", args...)
		},
	})
	qt.Assert(t, qt.Equals(w.String(), "sub/doc.astn:1:2: <found 3>\n/elsewhere/s.yaml: <outer>: inner\n"))
}

func TestListSort(t *testing.T) {
	var l List
	l.AddNewf("b", token.Location{Line: 1, Column: 1}, "b1")
	l.AddNewf("a", token.Location{Line: 2, Column: 1}, "a2")
	l.AddNewf("a", token.Location{Line: 1, Column: 5}, "a1x")
	l.AddNewf("a", token.Location{Line: 1, Column: 3}, "a1")
	l.RemoveMultiples()

	var got []string
	for _, e := range l {
		format, _ := e.Msg()
		got = append(got, format)
	}
	qt.Assert(t, qt.DeepEquals(got, []string{"a1", "a2", "b1"}))
}

func TestListErr(t *testing.T) {
	var l List
	qt.Assert(t, qt.IsNil(l.Err()))
	l.Add(New("first"))
	l.Add(New("second"))
	qt.Assert(t, qt.ErrorMatches(l.Err(), `first \(and 1 more errors\)`))

	var target List
	qt.Assert(t, qt.IsTrue(As(l.Err(), &target)))
	qt.Assert(t, qt.HasLen(target, 2))
}

func TestWrapfUnwrap(t *testing.T) {
	base := New("boom")
	err := Wrapf(base, "s.yaml", token.Location{Line: 4, Column: 2}, "loading schema")
	qt.Assert(t, qt.IsTrue(Is(err, base)))
	qt.Assert(t, qt.Equals(err.Error(), "s.yaml:4:2: loading schema: boom"))
}
