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

package completion

import (
	"fmt"

	"astn.dev/go/astn/parser"
	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
	"astn.dev/go/astn/typedtree"
)

// state is the state of a finder. A finder is searching until it has
// seen the token that decides which suggestions apply, and found after
// that.
type state struct {
	found bool

	// lastAfter holds, while searching, the after-token suggestions of
	// the most recent token that lies entirely before the cursor.
	lastAfter Suggestions
}

// next returns the state that follows a token at placement p relative to
// the cursor, together with the suggestions to deliver, if any.
func (s state) next(p token.Placement, in, after Suggestions) (state, Suggestions) {
	if s.found {
		return s, nil
	}
	switch p {
	case token.After:
		return state{lastAfter: after}, nil
	case token.Before:
		return state{found: true}, s.lastAfter
	case token.Inside:
		return state{found: true}, in
	default:
		panic(fmt.Sprintf("unreachable: unknown placement %v", p))
	}
}

// end returns the suggestions to deliver when the document ends.
func (s state) end() Suggestions {
	if s.found {
		return nil
	}
	return s.lastAfter
}

// An Option configures a finder.
type Option func(*config)

type config struct {
	quote schema.SerializeFunc
}

// QuoteWith sets the function that renders default string values. The
// default is [schema.SerializeString].
func QuoteWith(f schema.SerializeFunc) Option {
	return func(c *config) { c.quote = f }
}

// NewFinder returns a handler that delivers, to onSuggestion, each
// completion for a cursor at the given line and column.
//
// If the cursor is inside a token, the token's own suggestions apply.
// Otherwise the suggestions for the position after the closest token
// before the cursor apply. At most one token's suggestions are
// delivered per walk; a token without suggestions still decides.
func NewFinder(line, column int, onSuggestion func(string), opts ...Option) typedtree.Handler {
	cfg := config{quote: schema.SerializeString}
	for _, o := range opts {
		o(&cfg)
	}
	f := &finder{
		cursor:       token.Cursor{Line: line, Column: column},
		onSuggestion: onSuggestion,
	}
	return NewGenerator(f.onToken, f.onEnd, cfg.quote)
}

type finder struct {
	cursor       token.Cursor
	state        state
	onSuggestion func(string)
}

func (f *finder) onToken(a token.Annotation, in, after Suggestions) {
	if f.state.found {
		return
	}
	var s Suggestions
	f.state, s = f.state.next(f.cursor.Classify(a.Range), in, after)
	f.deliver(s)
}

func (f *finder) onEnd() {
	f.deliver(f.state.end())
}

func (f *finder) deliver(s Suggestions) {
	if s == nil {
		return
	}
	for _, text := range s() {
		f.onSuggestion(text)
	}
}

// Find returns the completions for a cursor at line and column of the
// document src, read according to schema s.
//
// Documents being edited are often incomplete. Find returns the
// suggestions gathered up to the point where reading stopped, together
// with the error that stopped it.
func Find(filename string, src []byte, s *schema.Schema, line, column int, opts ...Option) ([]string, error) {
	var result []string
	f := NewFinder(line, column, func(text string) {
		result = append(result, text)
	}, opts...)
	err := parser.Parse(filename, src, s, f)
	return result, err
}
