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

// Package grammar declares the JSON-decodable DSL that cmd/jsonpggen
// compiles into a byte-dispatch transition table (see package dfa).
// A grammar is build-time input: jsonpg's own lexer is hand-written
// directly against the JSON grammar rather than driven by a generated
// table, but the DSL and its compiler are general enough to describe
// any single-pass byte-oriented lexical grammar.
package grammar

// Grammar is the root of the DSL: a set of reusable byte classes plus
// an ordered list of states, each with its own ordered list of rules.
type Grammar struct {
	Name    string              `json:"name"`
	Classes map[string][]string `json:"classes"`
	States  []State             `json:"states"`
}

// State is one node of the lexical DFA: a named set of rules tried
// in order against the current byte.
type State struct {
	Name  string `json:"name"`
	Rules []Rule `json:"rules"`
}

// Rule matches a byte (or a virtual condition) and runs a sequence of
// actions.
//
// Match is one of:
//
//	"x"          a literal single byte
//	"0xHH"       a byte given in hex
//	"0xHH-0xHH"  an inclusive byte range given in hex
//	"$name"      a reference to a declared class
//	"..."        the state's default rule, at most one per state
//	"???"        a virtual rule: never matched against an input byte,
//	             only targeted by an ifpeek/ifnpeek/ifpop action's
//	             jump-to-rule-label form
//
// Actions are run in order before Next/Advance take effect. Supported
// builtins: pushstate, popstate, push, pop, swap, ifpeek, ifnpeek,
// ifpop, ifconfig. Each of the "if*" actions takes an argument and
// either falls through to the rest of this rule's actions or jumps to
// a labelled "???" rule in the same state, written "ifpeek:array:label".
type Rule struct {
	Label   string   `json:"label,omitempty"`
	Match   string   `json:"match"`
	Actions []string `json:"actions,omitempty"`
	Next    string   `json:"next,omitempty"`
	Advance *bool    `json:"advance,omitempty"`
}

// Advances reports whether this rule consumes the matched byte,
// defaulting to true.
func (r Rule) Advances() bool {
	if r.Advance == nil {
		return true
	}
	return *r.Advance
}

func (r Rule) IsDefault() bool  { return r.Match == "..." }
func (r Rule) IsVirtual() bool  { return r.Match == "???" }
func (r Rule) IsClassRef() bool { return len(r.Match) > 1 && r.Match[0] == '$' }
