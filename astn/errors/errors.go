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

// Package errors defines shared types for handling ASTN errors.
//
// Errors produced while loading schemas and reading documents carry the
// file and location they refer to. Several such errors can be collected
// in a [List].
package errors // import "astn.dev/go/astn/errors"

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"astn.dev/go/astn/token"
)

// New is a convenience wrapper for [errors.New] in the core library.
// It does not return an ASTN error.
func New(msg string) error {
	return errors.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Error is the common error message.
type Error interface {
	// Filename reports the file the error refers to, if any.
	Filename() string

	// Position returns the location of the offending token.
	Position() token.Location

	// Error reports the error message with position information.
	Error() string

	// Msg returns the unformatted error message and its arguments.
	Msg() (format string, args []interface{})
}

// Newf creates an Error with the associated position and message.
func Newf(filename string, loc token.Location, format string, args ...interface{}) Error {
	return &posError{
		filename: filename,
		loc:      loc,
		format:   format,
		args:     args,
	}
}

// Wrapf creates an Error with the associated position and message. The
// provided error is added for inspection context.
func Wrapf(err error, filename string, loc token.Location, format string, args ...interface{}) Error {
	return &posError{
		filename: filename,
		loc:      loc,
		format:   format,
		args:     args,
		err:      err,
	}
}

// Promote converts a regular Go error to an Error if it isn't already one.
func Promote(err error, msg string) Error {
	switch x := err.(type) {
	case Error:
		return x
	default:
		return Wrapf(err, "", token.Location{}, "%s", msg)
	}
}

type posError struct {
	filename string
	loc      token.Location
	format   string
	args     []interface{}

	// The underlying error that triggered this one, if any.
	err error
}

func (e *posError) Filename() string         { return e.filename }
func (e *posError) Position() token.Location { return e.loc }
func (e *posError) Unwrap() error            { return e.err }

func (e *posError) Msg() (string, []interface{}) {
	return e.format, e.args
}

func (e *posError) message() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if e.err != nil {
		if msg == "" {
			return e.err.Error()
		}
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e *posError) Error() string {
	var b strings.Builder
	writePos(&b, e.filename, e.loc)
	b.WriteString(e.message())
	return b.String()
}

func writePos(b *strings.Builder, filename string, loc token.Location) {
	switch {
	case filename != "" && loc.IsValid():
		fmt.Fprintf(b, "%s:%v: ", filename, loc)
	case filename != "":
		fmt.Fprintf(b, "%s: ", filename)
	case loc.IsValid():
		fmt.Fprintf(b, "%v: ", loc)
	}
}

// Append combines two errors, flattening Lists as necessary.
func Append(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	var l List
	l.Add(a)
	l.Add(b)
	return l
}

// List is a list of Errors.
// The zero value for a List is an empty List ready to use.
type List []Error

// AddNewf adds an Error with given position and message to a List.
func (p *List) AddNewf(filename string, loc token.Location, format string, args ...interface{}) {
	*p = append(*p, Newf(filename, loc, format, args...))
}

// Add adds err to the list. If err is itself a List its elements are
// added individually.
func (p *List) Add(err error) {
	var l List
	switch {
	case err == nil:
	case errors.As(err, &l):
		*p = append(*p, l...)
	default:
		*p = append(*p, Promote(err, ""))
	}
}

// Reset resets a List to no errors.
func (p *List) Reset() { *p = (*p)[:0] }

// Sort sorts a List. Errors are sorted by filename, then by location,
// then by message.
func (p List) Sort() {
	slices.SortStableFunc(p, func(a, b Error) int {
		if c := strings.Compare(a.Filename(), b.Filename()); c != 0 {
			return c
		}
		e, f := a.Position(), b.Position()
		if e.Line != f.Line {
			return e.Line - f.Line
		}
		if e.Column != f.Column {
			return e.Column - f.Column
		}
		return strings.Compare(a.Error(), b.Error())
	})
}

// RemoveMultiples sorts a List and removes all but the first error per line.
func (p *List) RemoveMultiples() {
	p.Sort()
	var last Error
	i := 0
	for _, e := range *p {
		if last != nil && e.Filename() == last.Filename() && e.Position().Line == last.Position().Line {
			continue
		}
		last = e
		(*p)[i] = e
		i++
	}
	*p = (*p)[:i]
}

// A List implements the error interface.
func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Errors reports the individual errors associated with an error, which is
// the error itself if there is only one or, if the underlying type is a
// List, its individual elements.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	var l List
	if errors.As(err, &l) {
		return l
	}
	return []Error{Promote(err, "")}
}

// Config is used to configure the error printer.
type Config struct {
	// Format formats the given string and arguments and writes it to w.
	// It is used for all printing.
	Format func(w io.Writer, format string, args ...interface{})

	// Cwd is the current working directory. Filenames are taken relative
	// to this path.
	Cwd string

	// ToSlash sets whether to use Unix paths. Mostly used for testing.
	ToSlash bool
}

// Print is a utility function that prints a list of errors to w, one
// error per line. The config may be nil.
func Print(w io.Writer, err error, cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	format := cfg.Format
	if format == nil {
		format = func(w io.Writer, format string, args ...interface{}) {
			fmt.Fprintf(w, format, args...)
		}
	}
	for _, e := range Errors(err) {
		var b strings.Builder
		writePos(&b, relPath(e.Filename(), cfg), e.Position())

		var msg bytes.Buffer
		f, args := e.Msg()
		format(&msg, f, args...)
		if wrapped := errors.Unwrap(e); wrapped != nil {
			if msg.Len() > 0 {
				msg.WriteString(": ")
			}
			msg.WriteString(wrapped.Error())
		}
		b.Write(msg.Bytes())
		b.WriteByte('\n')
		io.WriteString(w, b.String())
	}
}

func relPath(filename string, cfg *Config) string {
	if cfg.Cwd != "" && filepath.IsAbs(filename) {
		if rel, err := filepath.Rel(cfg.Cwd, filename); err == nil && !strings.HasPrefix(rel, "..") {
			filename = rel
		}
	}
	if cfg.ToSlash {
		filename = filepath.ToSlash(filename)
	}
	return filename
}
