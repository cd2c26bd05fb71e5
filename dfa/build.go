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

package dfa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bobd91/jsonpg/grammar"
)

// Build compiles a validated grammar into a Table. Callers should run
// grammar.Validate first; Build does not call it. Build fails only on
// an unknown next state or a match specifier it cannot expand, and
// compiles other defects Validate would flag (overlapping matches,
// untargeted virtual rules) without complaint.
func Build(g *grammar.Grammar) (*Table, error) {
	t := &Table{
		StateNames: make([]string, len(g.States)),
		Trans:      make([][256]Entry, len(g.States)),
	}
	for i, st := range g.States {
		t.StateNames[i] = st.Name
	}

	actionIndex := map[string]ActionID{}
	internAction := func(a string) ActionID {
		if id, ok := actionIndex[a]; ok {
			return id
		}
		id := ActionID(len(t.Actions))
		actionIndex[a] = id
		t.Actions = append(t.Actions, a)
		return id
	}

	for si, st := range g.States {
		row := &t.Trans[si]

		// Virtual ("???") rules are skipped: Build emits nothing for
		// them, so their actions appear neither in the row nor in
		// t.Actions, and a conditional action naming one is interned as
		// a plain action string. Only the concrete and default rules
		// populate the 256-entry row.
		var defaultEntry *Entry
		for _, r := range st.Rules {
			if r.IsVirtual() {
				continue
			}

			actionID := noAction
			if len(r.Actions) > 0 {
				actionID = internAction(strings.Join(r.Actions, ";"))
			}
			next := StateID(si)
			if r.Next != "" {
				next = t.StateID(r.Next)
				if next < 0 {
					return nil, fmt.Errorf("state %q: unknown next state %q", st.Name, r.Next)
				}
			}
			entry := Entry{Action: actionID, Next: next, Advance: r.Advances(), Valid: true}

			if r.IsDefault() {
				e := entry
				defaultEntry = &e
				continue
			}

			set, err := matchSet(g, r.Match)
			if err != nil {
				return nil, fmt.Errorf("state %q, rule %q: %s", st.Name, r.Match, err)
			}
			for b, on := range set {
				if on {
					row[b] = entry
				}
			}
		}

		if defaultEntry != nil {
			for b := 0; b < 256; b++ {
				if !row[b].Valid {
					row[b] = *defaultEntry
				}
			}
		}
	}

	return t, nil
}

// matchSet is the dfa package's own copy of grammar's match-specifier
// expansion; it is re-derived here rather than imported because the
// grammar package keeps its expansion helpers private to keep
// Validate's error-collection semantics (many errors, not a failure
// on the first one) independent of Build's all-or-nothing semantics.
func matchSet(g *grammar.Grammar, spec string) ([256]bool, error) {
	var set [256]bool
	if spec == "" {
		return set, fmt.Errorf("empty match specifier")
	}
	if spec[0] == '$' {
		return classSet(g, spec[1:], map[string]bool{})
	}
	lo, hi, err := byteOrRange(spec)
	if err != nil {
		return set, err
	}
	for b := int(lo); b <= int(hi); b++ {
		set[b] = true
	}
	return set, nil
}

func classSet(g *grammar.Grammar, name string, seen map[string]bool) ([256]bool, error) {
	var set [256]bool
	if seen[name] {
		return set, fmt.Errorf("class %q is circularly defined", name)
	}
	seen[name] = true
	specs, ok := g.Classes[name]
	if !ok {
		return set, fmt.Errorf("undefined class %q", name)
	}
	for _, spec := range specs {
		if len(spec) > 0 && spec[0] == '$' {
			sub, err := classSet(g, spec[1:], seen)
			if err != nil {
				return set, err
			}
			for b, on := range sub {
				set[b] = set[b] || on
			}
			continue
		}
		lo, hi, err := byteOrRange(spec)
		if err != nil {
			return set, err
		}
		for b := int(lo); b <= int(hi); b++ {
			set[b] = true
		}
	}
	return set, nil
}

func byteOrRange(spec string) (lo, hi byte, err error) {
	if i := strings.IndexByte(spec, '-'); i > 0 && strings.HasPrefix(spec, "0x") {
		lo, err = hexByte(spec[:i])
		if err != nil {
			return 0, 0, err
		}
		hi, err = hexByte(spec[i+1:])
		return lo, hi, err
	}
	if strings.HasPrefix(spec, "0x") {
		b, err := hexByte(spec)
		return b, b, err
	}
	if len(spec) != 1 {
		return 0, 0, fmt.Errorf("invalid match specifier %q", spec)
	}
	return spec[0], spec[0], nil
}

func hexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

// SortedActionIndices returns Action indices in a deterministic
// order, for stable codegen output of any action-keyed map.
func SortedActionIndices(t *Table) []ActionID {
	ids := make([]ActionID, len(t.Actions))
	for i := range ids {
		ids[i] = ActionID(i)
	}
	sort.Slice(ids, func(i, j int) bool { return t.Actions[ids[i]] < t.Actions[ids[j]] })
	return ids
}
