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

// Package typedtree defines the push-style contract through which a
// schema-aware document walker reports a document's values.
//
// A walker visits a document depth first, in document order. For each
// value it calls the matching method of a [ValueHandler]; container
// methods return the handler that receives the container's children.
// Every structural token is reported together with its
// [token.Annotation]. A nil annotation means the token is absent from
// the document, as happens for the implicit parts of shorthand forms.
package typedtree

import (
	"fmt"

	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
)

// Handler receives the events of a single document.
type Handler interface {
	// Root returns the handler for the document's root value.
	Root() ValueHandler

	// End is called once after the last event, also when the walk
	// stopped early because of an error.
	End()
}

// ValueHandler receives a single value.
type ValueHandler interface {
	OnDictionary(*Dictionary) DictionaryHandler
	OnList(*List) ListHandler
	OnTaggedUnion(*TaggedUnion) TaggedUnionHandler
	OnSimpleString(*SimpleString)
	OnMultilineString(*MultilineString)

	// OnTypeReference is called when a value is defined by a reference
	// to a named type. The referenced value is reported to the returned
	// handler.
	OnTypeReference(*TypeReference) ValueHandler

	OnGroup(*Group) GroupHandler
}

// DictionaryHandler receives the entries of a dictionary.
type DictionaryHandler interface {
	OnEntry(*Entry) ValueHandler
	OnClose(*Close)
}

// ListHandler receives the elements of a list.
type ListHandler interface {
	OnElement() ValueHandler
	OnClose(*Close)
}

// TaggedUnionHandler receives the chosen option of a tagged union.
type TaggedUnionHandler interface {
	OnOption(*Option) ValueHandler
	OnUnexpectedOption(*UnexpectedOption)
	OnEnd()
}

// GroupHandler receives the properties of a group.
type GroupHandler interface {
	OnProperty(*Property) ValueHandler
	OnUnexpectedProperty(*UnexpectedProperty)
	OnClose(*Close)
}

// Dictionary reports an opening brace.
type Dictionary struct {
	Token      *token.Annotation
	Definition *schema.Dictionary
}

// Entry reports the key of a dictionary entry.
type Entry struct {
	Token *token.Annotation
	Key   string
}

// List reports an opening bracket.
type List struct {
	Token      *token.Annotation
	Definition *schema.List
}

// TaggedUnion reports the start of a tagged union value.
type TaggedUnion struct {
	Token      *token.Annotation
	Definition *schema.TaggedUnion
}

// Option reports an option name that is part of the union.
type Option struct {
	Token      *token.Annotation
	Name       string
	Definition *schema.Option
}

// UnexpectedOption reports an option name that is not part of the union.
type UnexpectedOption struct {
	Token           token.Annotation
	Name            string
	ExpectedOptions []string
}

// SimpleString reports a single-line string.
type SimpleString struct {
	Token      *token.Annotation
	Value      string
	Definition *schema.SimpleString
}

// MultilineString reports a multiline string.
type MultilineString struct {
	Token      *token.Annotation
	Lines      []string
	Definition *schema.MultilineString
}

// TypeReference reports a value defined by a named type.
type TypeReference struct {
	Definition *schema.TypeReference
}

// GroupStyle is the surface syntax in which a group is written.
type GroupStyle int

const (
	// Verbose groups list keyed properties between parentheses.
	Verbose GroupStyle = iota

	// Shorthand groups list unkeyed property values between angle
	// brackets.
	Shorthand

	// Mixin groups are nested in a shorthand group; their properties
	// are written inline as part of the enclosing group.
	Mixin

	// Omitted groups are not written at all.
	Omitted
)

var styleNames = [...]string{
	Verbose:   "verbose",
	Shorthand: "shorthand",
	Mixin:     "mixin",
	Omitted:   "omitted",
}

func (s GroupStyle) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("GroupStyle(%d)", int(s))
	}
	return styleNames[s]
}

// Group reports the start of a group.
type Group struct {
	Style GroupStyle

	// Token is the opening token of verbose and shorthand groups and nil
	// for mixin and omitted groups.
	Token      *token.Annotation
	Definition *schema.Group
}

// Property reports a property of a group. Token is the key for
// verbose groups and nil otherwise.
type Property struct {
	Token      *token.Annotation
	Key        string
	Definition *schema.Property
}

// UnexpectedProperty reports a key that is not a property of the group,
// or that was already given.
type UnexpectedProperty struct {
	Token              token.Annotation
	Key                string
	ExpectedProperties []string
}

// Close reports the closing token of a container. Token is nil if the
// container is implicit.
type Close struct {
	Token *token.Annotation
}
