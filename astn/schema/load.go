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

package schema

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"astn.dev/go/astn/errors"
	"astn.dev/go/astn/token"
)

// LoadFile reads a schema from the YAML file at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Load reads a schema in YAML form from r. The filename is used in error
// messages only.
func Load(r io.Reader, filename string) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(filename, data)
}

// Parse decodes a schema in YAML form. The document has the shape
//
//	root: <type name>
//	types:
//	  <type name>: <value>
//
// where each value is a mapping with a single key naming its kind:
//
//	dictionary: <value>
//	list: <value>
//	ref: <type name>
//	union: {default: <option name>, options: {<option name>: <value>, ...}}
//	string: {default: <text>, quoted: <bool>}
//	multiline: {}
//	group: {<property key>: <value>, ...}
//
// Mapping order is significant: properties and options keep the order in
// which they are written. Strings are quoted unless quoted is false.
func Parse(filename string, data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, filename, token.Location{}, "invalid schema")
	}
	l := &loader{filename: filename, schema: &Schema{}}
	l.decodeSchema(&doc)
	if err := l.errs.Err(); err != nil {
		return nil, err
	}
	l.resolve()
	if err := l.errs.Err(); err != nil {
		return nil, err
	}
	return l.schema, nil
}

type loader struct {
	filename string
	schema   *Schema
	root     *yaml.Node
	refs     []pendingRef
	errs     errors.List
}

type pendingRef struct {
	ref  *TypeReference
	node *yaml.Node
}

func (l *loader) errf(n *yaml.Node, format string, args ...interface{}) {
	l.errs.AddNewf(l.filename, token.Location{Line: n.Line, Column: n.Column}, format, args...)
}

// pairs calls f for each key/value pair of a mapping node, in order.
func (l *loader) pairs(n *yaml.Node, f func(key string, k, v *yaml.Node)) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return
	}
	if n.Kind != yaml.MappingNode {
		l.errf(n, "expected a mapping")
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		f(k.Value, k, v)
	}
}

func (l *loader) decodeSchema(doc *yaml.Node) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		l.errs.AddNewf(l.filename, token.Location{}, "empty schema")
		return
	}
	l.pairs(doc.Content[0], func(key string, k, v *yaml.Node) {
		switch key {
		case "root":
			l.root = v
		case "types":
			l.pairs(v, func(name string, k, v *yaml.Node) {
				if l.schema.Type(name) != nil {
					l.errf(k, "duplicate type %q", name)
					return
				}
				t := &Type{Name: name}
				l.schema.Types = append(l.schema.Types, t)
				t.Value = l.decodeValue(v)
			})
		default:
			l.errf(k, "unknown field %q", key)
		}
	})
	if l.root == nil {
		l.errf(doc.Content[0], "missing root type")
	}
}

func (l *loader) decodeValue(n *yaml.Node) ValueDefinition {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		l.errf(n, "value must be a mapping with exactly one kind")
		return &MultilineString{}
	}
	k, v := n.Content[0], n.Content[1]
	switch k.Value {
	case "dictionary":
		return &Dictionary{Value: l.decodeValue(v)}
	case "list":
		return &List{Value: l.decodeValue(v)}
	case "ref":
		r := &TypeReference{Name: v.Value}
		l.refs = append(l.refs, pendingRef{r, v})
		return r
	case "union":
		return l.decodeTaggedUnion(v)
	case "string":
		return l.decodeSimpleString(v)
	case "multiline":
		return &MultilineString{}
	case "group":
		g := &Group{}
		l.pairs(v, func(key string, k, v *yaml.Node) {
			if g.Property(key) != nil {
				l.errf(k, "duplicate property %q", key)
				return
			}
			g.Properties = append(g.Properties, &Property{Key: key, Value: l.decodeValue(v)})
		})
		return g
	default:
		l.errf(k, "unknown value kind %q", k.Value)
		return &MultilineString{}
	}
}

func (l *loader) decodeTaggedUnion(n *yaml.Node) *TaggedUnion {
	u := &TaggedUnion{}
	var def *yaml.Node
	l.pairs(n, func(key string, k, v *yaml.Node) {
		switch key {
		case "default":
			def = v
			u.DefaultOption = v.Value
		case "options":
			l.pairs(v, func(name string, k, v *yaml.Node) {
				if u.Option(name) != nil {
					l.errf(k, "duplicate option %q", name)
					return
				}
				u.Options = append(u.Options, &Option{Name: name, Value: l.decodeValue(v)})
			})
		default:
			l.errf(k, "unknown union field %q", key)
		}
	})
	switch {
	case len(u.Options) == 0:
		l.errf(n, "tagged union has no options")
	case def == nil:
		// The first option is the default unless stated otherwise.
		u.DefaultOption = u.Options[0].Name
	case u.Option(u.DefaultOption) == nil:
		l.errf(def, "default option %q is not an option of the union", u.DefaultOption)
	}
	return u
}

func (l *loader) decodeSimpleString(n *yaml.Node) *SimpleString {
	s := &SimpleString{Quoted: true}
	l.pairs(n, func(key string, k, v *yaml.Node) {
		switch key {
		case "default":
			s.DefaultValue = v.Value
		case "quoted":
			if err := v.Decode(&s.Quoted); err != nil {
				l.errf(v, "quoted must be a boolean")
			}
		default:
			l.errf(k, "unknown string field %q", key)
		}
	})
	return s
}

func (l *loader) resolve() {
	for _, p := range l.refs {
		p.ref.Type = l.schema.Type(p.ref.Name)
		if p.ref.Type == nil {
			l.errf(p.node, "reference to undefined type %q", p.ref.Name)
		}
	}
	if l.root != nil {
		l.schema.Root = l.schema.Type(l.root.Value)
		if l.schema.Root == nil {
			l.errf(l.root, "root type %q is not defined", l.root.Value)
		}
	}
	if len(l.errs) > 0 {
		return
	}
	// A type that is only an alias of itself has no value at all.
	for _, t := range l.schema.Types {
		seen := map[*Type]bool{t: true}
		for v := t.Value; ; {
			r, ok := v.(*TypeReference)
			if !ok {
				break
			}
			if seen[r.Type] {
				l.errs.AddNewf(l.filename, token.Location{}, "type %q is a reference cycle", t.Name)
				break
			}
			seen[r.Type] = true
			v = r.Type.Value
		}
	}
}
