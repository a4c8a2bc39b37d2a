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

// Package alternatives builds the set of candidate texts for a completion.
//
// A [Tree] is a sequence of steps. A snippet step appends literal text, a
// block step renders each of its lines on a line of its own, one level
// deeper, and a branch step forks the text into one candidate per option.
// [Tree.Serialize] expands the tree into every candidate: the number of
// results is the product of the option counts of all branches along the
// way.
//
// Trees are built and discarded within a single request.
package alternatives

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// A Tree holds the steps of a completion.
type Tree struct {
	root Sequence
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Root returns the top-level sequence of the tree.
func (t *Tree) Root() *Sequence {
	return &t.root
}

// A Sequence is an ordered list of steps.
type Sequence struct {
	steps []step
}

// step is one of snippet, *Block or *Branch.
type step interface {
	stepNode()
}

type snippet string

func (snippet) stepNode() {}
func (*Block) stepNode()  {}
func (*Branch) stepNode() {}

// Snippet appends literal text.
func (s *Sequence) Snippet(text string) {
	s.steps = append(s.steps, snippet(text))
}

// Indent appends a block. The lines that f adds to the block are each
// rendered on a new line, indented one level deeper than the sequence.
//
// A block without lines renders as nothing at all; callers that need a
// separator must add it themselves.
func (s *Sequence) Indent(f func(b *Block)) {
	b := &Block{}
	s.steps = append(s.steps, b)
	f(b)
}

// AddBranch appends a branch: a point where the text continues with
// exactly one of the branch's options.
func (s *Sequence) AddBranch() *Branch {
	b := &Branch{}
	s.steps = append(s.steps, b)
	return b
}

// A Block is an indented group of lines.
type Block struct {
	lines []*Sequence
}

// AddLine adds a line to the block.
func (b *Block) AddLine() *Sequence {
	seq := &Sequence{}
	b.lines = append(b.lines, seq)
	return seq
}

// A Branch is a set of mutually exclusive continuations.
type Branch struct {
	options []*Sequence
}

// AddOption adds a continuation to the branch.
func (b *Branch) AddOption() *Sequence {
	seq := &Sequence{}
	b.options = append(b.options, seq)
	return seq
}

// Serialize returns all candidate texts described by the tree, in
// option order.
func (t *Tree) Serialize() []string {
	return serialize([]string{""}, &t.root, 0)
}

// serialize extends every string of live with the steps of seq, which
// is rendered at the given indentation depth.
func serialize(live []string, seq *Sequence, depth int) []string {
	for _, st := range seq.steps {
		switch st := st.(type) {
		case snippet:
			for i := range live {
				live[i] += string(st)
			}
		case *Block:
			// Lines extend the candidates one after the other; only
			// branches within a line multiply them.
			for _, line := range st.lines {
				live = appendAll(live, "\n"+indentation(depth+1))
				live = serialize(live, line, depth+1)
			}
			if len(st.lines) > 0 {
				live = appendAll(live, "\n"+indentation(depth))
			}
		case *Branch:
			var next []string
			for _, opt := range st.options {
				next = append(next, serialize(clone(live), opt, depth)...)
			}
			live = next
		default:
			panic(fmt.Sprintf("unreachable: unknown step %T", st))
		}
	}
	return live
}

func appendAll(live []string, s string) []string {
	for i := range live {
		live[i] += s
	}
	return live
}

func clone(live []string) []string {
	return append([]string(nil), live...)
}

func indentation(depth int) string {
	return strings.Repeat(indentUnit, depth)
}

// String returns a debug rendering of the tree's structure.
func (t *Tree) String() string {
	var b strings.Builder
	t.root.dump(&b, 0)
	return b.String()
}

func (s *Sequence) dump(b *strings.Builder, depth int) {
	for _, st := range s.steps {
		b.WriteString(indentation(depth))
		switch st := st.(type) {
		case snippet:
			fmt.Fprintf(b, "snippet %q\n", string(st))
		case *Block:
			fmt.Fprintf(b, "block (%d lines)\n", len(st.lines))
			for i, line := range st.lines {
				fmt.Fprintf(b, "%sline %d\n", indentation(depth+1), i)
				line.dump(b, depth+2)
			}
		case *Branch:
			fmt.Fprintf(b, "branch (%d options)\n", len(st.options))
			for i, opt := range st.options {
				fmt.Fprintf(b, "%soption %d\n", indentation(depth+1), i)
				opt.dump(b, depth+2)
			}
		default:
			panic(fmt.Sprintf("unreachable: unknown step %T", st))
		}
	}
}
