// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package dfa compiles a grammar.Grammar into a flat byte-dispatch
// transition table: the representation cmd/jsonpggen emits as Go
// source, and the shape jsonpg's own hand-written lexer approximates
// directly in code.
package dfa

// StateID indexes Table.StateNames and Table.Trans.
type StateID int

// ActionID indexes Table.Actions (the ordered, de-duplicated action
// list referenced by every Entry).
type ActionID int

// noAction marks an Entry with nothing to run beyond the transition
// itself.
const noAction ActionID = -1

// Entry is one cell of a state's 256-entry byte dispatch row: what to
// do, and which state to move to, on seeing a given byte.
type Entry struct {
	Action  ActionID
	Next    StateID
	Advance bool
	Valid   bool // false for bytes with no matching rule and no default
}

// Table is the compiled form of a grammar.Grammar: one 256-entry
// dispatch row per state, plus the ordered action list the rows
// reference by index.
type Table struct {
	StateNames []string
	Actions    []string
	Trans      [][256]Entry
}

// StateID looks up a state by name, returning -1 if not found.
func (t *Table) StateID(name string) StateID {
	for i, n := range t.StateNames {
		if n == name {
			return StateID(i)
		}
	}
	return -1
}
