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

// Package scanner implements a scanner for ASTN source text. It takes a
// []byte as source which can then be tokenized through repeated calls to
// the Scan method.
package scanner // import "astn.dev/go/astn/scanner"

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"astn.dev/go/astn/errors"
	"astn.dev/go/astn/token"
)

// Kind is the lexical class of a token.
type Kind int

const (
	EOF Kind = iota

	OpenParen    // (
	CloseParen   // )
	OpenAngle    // <
	CloseAngle   // >
	OpenBrace    // {
	CloseBrace   // }
	OpenBracket  // [
	CloseBracket // ]
	Bar          // |
	Colon        // :

	Apostrophed // 'text'
	Quoted      // "text"
	Word        // text
	Multiline   // `text`
)

var kindNames = [...]string{
	EOF:          "end of document",
	OpenParen:    "(",
	CloseParen:   ")",
	OpenAngle:    "<",
	CloseAngle:   ">",
	OpenBrace:    "{",
	CloseBrace:   "}",
	OpenBracket:  "[",
	CloseBracket: "]",
	Bar:          "|",
	Colon:        ":",
	Apostrophed:  "apostrophed string",
	Quoted:       "quoted string",
	Word:         "word",
	Multiline:    "multiline string",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

var punctuation = map[rune]Kind{
	'(': OpenParen,
	')': CloseParen,
	'<': OpenAngle,
	'>': CloseAngle,
	'{': OpenBrace,
	'}': CloseBrace,
	'[': OpenBracket,
	']': CloseBracket,
	'|': Bar,
	':': Colon,
}

// A Token is a lexical token together with its location.
type Token struct {
	Kind Kind

	// Text is the source text of the token.
	Text string

	// Value is the unescaped content of a string token, without its
	// delimiters. For other tokens it equals Text.
	Value string

	Range token.Range
}

// Annotation returns the token's annotation.
func (t Token) Annotation() *token.Annotation {
	return &token.Annotation{Text: t.Text, Range: t.Range}
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return t.Kind.String()
	case Apostrophed, Quoted, Word, Multiline:
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

// A Scanner holds the scanner's internal state while processing a given
// text.
type Scanner struct {
	// immutable state
	filename string
	src      []byte

	// scanning state
	ch         rune // current character; -1 at end of file
	offset     int  // character offset
	rdOffset   int  // reading offset (position after current character)
	line       int  // current line, starting at 1
	lineOffset int  // offset of the first character of the current line
}

// New returns a scanner for src. The filename is used in error
// messages only.
func New(filename string, src []byte) *Scanner {
	s := &Scanner{
		filename: filename,
		src:      src,
		line:     1,
	}
	s.next()
	return s
}

// next reads the next Unicode character into s.ch.
func (s *Scanner) next() {
	if s.rdOffset >= len(s.src) {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.line++
			s.lineOffset = s.offset
		}
		s.ch = -1
		return
	}
	s.offset = s.rdOffset
	if s.ch == '\n' {
		s.line++
		s.lineOffset = s.offset
	}
	r, w := rune(s.src[s.rdOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.rdOffset:])
	}
	s.rdOffset += w
	s.ch = r
}

func (s *Scanner) location() token.Location {
	return token.Location{
		Line:     s.line,
		Column:   s.offset - s.lineOffset + 1,
		Position: s.offset,
	}
}

func (s *Scanner) errf(loc token.Location, format string, args ...interface{}) error {
	return errors.Newf(s.filename, loc, format, args...)
}

func (s *Scanner) skipWhitespace() {
	for {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' || s.ch == ',':
			s.next()
		case s.ch == '/' && s.rdOffset < len(s.src) && s.src[s.rdOffset] == '/':
			for s.ch != '\n' && s.ch >= 0 {
				s.next()
			}
		default:
			return
		}
	}
}

// Scan returns the next token. At the end of the source it returns a
// token of kind EOF, repeatedly.
func (s *Scanner) Scan() (Token, error) {
	s.skipWhitespace()

	start := s.location()
	tok := Token{Range: token.Range{Start: start}}
	var err error

	switch ch := s.ch; {
	case ch < 0:
		tok.Kind = EOF
	case punctuation[ch] != 0:
		tok.Kind = punctuation[ch]
		s.next()
	case ch == '\'':
		tok.Kind = Apostrophed
		tok.Value, err = s.scanString('\'')
	case ch == '"':
		tok.Kind = Quoted
		tok.Value, err = s.scanString('"')
	case ch == '`':
		tok.Kind = Multiline
		tok.Value, err = s.scanMultiline()
	default:
		tok.Kind = Word
		for s.ch >= 0 && !isDelimiter(s.ch) {
			s.next()
		}
	}
	if err != nil {
		return Token{}, err
	}

	tok.Text = string(s.src[start.Position:s.offset])
	if tok.Kind != Apostrophed && tok.Kind != Quoted && tok.Kind != Multiline {
		tok.Value = tok.Text
	}
	tok.Range.Length = s.offset - start.Position
	if s.line == start.Line {
		tok.Range.Size = token.SingleLine{ColumnOffset: s.offset - start.Position}
	} else {
		tok.Range.Size = token.MultiLine{Column: s.offset - s.lineOffset + 1}
	}
	return tok, nil
}

func isDelimiter(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', ',', '\'', '"', '`':
		return true
	}
	return punctuation[ch] != 0
}

// scanString scans a single-line string delimited by quote, starting at
// the opening quote, and returns its unescaped value.
func (s *Scanner) scanString(quote rune) (string, error) {
	start := s.location()
	s.next()
	var b strings.Builder
	for s.ch != quote {
		switch s.ch {
		case -1, '\n':
			return "", s.errf(start, "string literal not terminated")
		case '\\':
			s.next()
			switch s.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'':
				b.WriteRune(s.ch)
			default:
				return "", s.errf(s.location(), "unknown escape sequence")
			}
		default:
			b.WriteRune(s.ch)
		}
		s.next()
	}
	s.next()
	return b.String(), nil
}

func (s *Scanner) scanMultiline() (string, error) {
	start := s.location()
	s.next()
	begin := s.offset
	for s.ch != '`' {
		if s.ch < 0 {
			return "", s.errf(start, "multiline string not terminated")
		}
		s.next()
	}
	value := string(s.src[begin:s.offset])
	s.next()
	return value, nil
}
