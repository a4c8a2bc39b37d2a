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

// Package schema defines the value definitions that describe the legal
// shape of an ASTN document.
//
// Definitions are immutable once loaded and may be shared freely between
// goroutines.
package schema

import (
	"fmt"
	"strings"
)

// A Schema is a set of named types, one of which is the root of a
// document.
type Schema struct {
	// Types holds the named types in declaration order.
	Types []*Type

	// Root is the type of a document's root value.
	Root *Type
}

// Type looks up a named type.
func (s *Schema) Type(name string) *Type {
	for _, t := range s.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Type is a named value definition.
type Type struct {
	Name  string
	Value ValueDefinition
}

// A ValueDefinition describes the shape of a value. It is one of
// [*Dictionary], [*List], [*TypeReference], [*TaggedUnion],
// [*SimpleString], [*MultilineString] or [*Group].
type ValueDefinition interface {
	// Kind reports which kind of value is defined.
	Kind() Kind
	valueNode()
}

// Kind enumerates the kinds of [ValueDefinition].
type Kind int

const (
	DictionaryKind Kind = iota
	ListKind
	TypeReferenceKind
	TaggedUnionKind
	SimpleStringKind
	MultilineStringKind
	GroupKind
)

var kindNames = [...]string{
	DictionaryKind:      "dictionary",
	ListKind:            "list",
	TypeReferenceKind:   "type reference",
	TaggedUnionKind:     "tagged union",
	SimpleStringKind:    "simple string",
	MultilineStringKind: "multiline string",
	GroupKind:           "group",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Dictionary is a mapping from arbitrary keys to values of one shape.
type Dictionary struct {
	Value ValueDefinition
}

// List is an ordered sequence of values of one shape.
type List struct {
	Value ValueDefinition
}

// TypeReference refers to a named [Type].
type TypeReference struct {
	Name string
	Type *Type // resolved target
}

// Resolve returns the value definition of the referenced type.
func (r *TypeReference) Resolve() ValueDefinition {
	return r.Type.Value
}

// TaggedUnion is an exclusive choice between named options.
type TaggedUnion struct {
	// Options holds the options in declaration order.
	Options []*Option

	// DefaultOption names the option proposed when nothing is chosen
	// yet. It must name one of Options.
	DefaultOption string
}

// Option is a single alternative of a [TaggedUnion].
type Option struct {
	Name  string
	Value ValueDefinition
}

// Option looks up an option by name.
func (u *TaggedUnion) Option(name string) *Option {
	for _, o := range u.Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Default returns the default option. It panics if the union does not
// contain it, which only happens for a malformed schema.
func (u *TaggedUnion) Default() *Option {
	o := u.Option(u.DefaultOption)
	if o == nil {
		panic(fmt.Sprintf("tagged union has no default option %q", u.DefaultOption))
	}
	return o
}

// OptionNames returns the names of all options in declaration order.
func (u *TaggedUnion) OptionNames() []string {
	names := make([]string, len(u.Options))
	for i, o := range u.Options {
		names[i] = o.Name
	}
	return names
}

// SimpleString is a single-line string value.
type SimpleString struct {
	DefaultValue string
	Quoted       bool
}

// MultilineString is a backtick-delimited string value.
type MultilineString struct{}

// Group is a record with a fixed, ordered set of properties.
type Group struct {
	// Properties holds the properties in declaration order, which is
	// also the order in which they are written.
	Properties []*Property
}

// Property is a named member of a [Group].
type Property struct {
	Key   string
	Value ValueDefinition
}

// Property looks up a property by key.
func (g *Group) Property(key string) *Property {
	for _, p := range g.Properties {
		if p.Key == key {
			return p
		}
	}
	return nil
}

// Keys returns the keys of all properties in declaration order.
func (g *Group) Keys() []string {
	keys := make([]string, len(g.Properties))
	for i, p := range g.Properties {
		keys[i] = p.Key
	}
	return keys
}

func (*Dictionary) Kind() Kind      { return DictionaryKind }
func (*List) Kind() Kind            { return ListKind }
func (*TypeReference) Kind() Kind   { return TypeReferenceKind }
func (*TaggedUnion) Kind() Kind     { return TaggedUnionKind }
func (*SimpleString) Kind() Kind    { return SimpleStringKind }
func (*MultilineString) Kind() Kind { return MultilineStringKind }
func (*Group) Kind() Kind           { return GroupKind }

func (*Dictionary) valueNode()      {}
func (*List) valueNode()            {}
func (*TypeReference) valueNode()   {}
func (*TaggedUnion) valueNode()     {}
func (*SimpleString) valueNode()    {}
func (*MultilineString) valueNode() {}
func (*Group) valueNode()           {}

// Resolve follows type references until it reaches a value definition
// that is not a reference.
func Resolve(v ValueDefinition) ValueDefinition {
	for {
		r, ok := v.(*TypeReference)
		if !ok {
			return v
		}
		v = r.Resolve()
	}
}

// SerializeFunc renders the raw default value of a string as document
// text.
type SerializeFunc func(raw string, quoted bool) string

// SerializeString is the default [SerializeFunc]. Quoted strings are
// enclosed in double quotes with backslashes and double quotes escaped;
// unquoted strings are returned as is.
func SerializeString(raw string, quoted bool) string {
	if !quoted {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw) + 2)
	b.WriteByte('"')
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
