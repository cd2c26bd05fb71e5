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

package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError is one defect found by Validate. State/Rule name the
// location; Msg describes the defect.
type ValidationError struct {
	State string
	Rule  string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("state %q: %s", e.State, e.Msg)
	}
	return fmt.Sprintf("state %q, rule %q: %s", e.State, e.Rule, e.Msg)
}

var builtinActions = map[string]bool{
	"pushstate": true,
	"popstate":  true,
	"push":      true,
	"pop":       true,
	"swap":      true,
	"ifpeek":    true,
	"ifnpeek":   true,
	"ifpop":     true,
	"ifconfig":  true,
}

// Validate checks a Grammar for internal consistency: unknown class
// references, unknown state targets, duplicate or overlapping
// concrete matches within a state, more than one default rule per
// state, virtual rules that are never targeted by a conditional
// action, and conditional actions that target a label that doesn't
// exist. It returns every defect found, not just the first.
func (g *Grammar) Validate() []error {
	var errs []error

	stateNames := make(map[string]bool, len(g.States))
	for _, st := range g.States {
		if stateNames[st.Name] {
			errs = append(errs, &ValidationError{State: st.Name, Msg: "duplicate state name"})
		}
		stateNames[st.Name] = true
	}

	for name, specs := range g.Classes {
		for _, spec := range specs {
			if _, err := expandSpec(g, spec); err != nil {
				errs = append(errs, &ValidationError{State: "$" + name, Msg: err.Error()})
			}
		}
	}

	for _, st := range g.States {
		errs = append(errs, validateState(g, st, stateNames)...)
	}

	return errs
}

func validateState(g *Grammar, st State, stateNames map[string]bool) []error {
	var errs []error

	labels := make(map[string]bool)
	for _, r := range st.Rules {
		if r.Label != "" {
			labels[r.Label] = true
		}
	}

	defaults := 0
	var covered [256]bool
	targeted := make(map[string]bool)

	for _, r := range st.Rules {
		switch {
		case r.IsDefault():
			defaults++
		case r.IsVirtual():
			// only reachable via a conditional jump, checked below
		default:
			set, err := expandMatch(g, r.Match)
			if err != nil {
				errs = append(errs, &ValidationError{State: st.Name, Rule: r.Match, Msg: err.Error()})
				break
			}
			for b, on := range set {
				if !on {
					continue
				}
				if covered[b] {
					errs = append(errs, &ValidationError{State: st.Name, Rule: r.Match,
						Msg: fmt.Sprintf("byte 0x%02x matched by more than one rule", b)})
				}
				covered[b] = true
			}
		}

		if r.Next != "" && !stateNames[r.Next] {
			errs = append(errs, &ValidationError{State: st.Name, Rule: r.Match,
				Msg: fmt.Sprintf("next state %q does not exist", r.Next)})
		}

		for _, a := range r.Actions {
			name, arg, label := splitAction(a)
			if !builtinActions[name] {
				errs = append(errs, &ValidationError{State: st.Name, Rule: r.Match,
					Msg: fmt.Sprintf("unknown action %q", name)})
				continue
			}
			isConditional := name == "ifpeek" || name == "ifnpeek" || name == "ifpop" || name == "ifconfig"
			if isConditional {
				if arg == "" {
					errs = append(errs, &ValidationError{State: st.Name, Rule: r.Match,
						Msg: fmt.Sprintf("%s requires an argument", name)})
				}
				if label != "" {
					if !labels[label] {
						errs = append(errs, &ValidationError{State: st.Name, Rule: r.Match,
							Msg: fmt.Sprintf("%s targets unknown label %q", name, label)})
					}
					targeted[label] = true
				}
			}
		}
	}

	if defaults > 1 {
		errs = append(errs, &ValidationError{State: st.Name, Msg: "more than one default (\"...\") rule"})
	}

	for _, r := range st.Rules {
		if r.IsVirtual() && r.Label != "" && !targeted[r.Label] {
			errs = append(errs, &ValidationError{State: st.Name, Rule: r.Label,
				Msg: "virtual rule is never targeted by a conditional action"})
		}
	}

	return errs
}

// splitAction parses an action string of the form "name", "name:arg",
// or "name:arg:label".
func splitAction(a string) (name, arg, label string) {
	parts := strings.SplitN(a, ":", 3)
	name = parts[0]
	if len(parts) > 1 {
		arg = parts[1]
	}
	if len(parts) > 2 {
		label = parts[2]
	}
	return
}

// expandMatch resolves a concrete (non-default, non-virtual) match
// specifier into a 256-entry byte set, recursively expanding class
// references.
func expandMatch(g *Grammar, spec string) ([256]bool, error) {
	var set [256]bool
	if spec == "" {
		return set, fmt.Errorf("empty match specifier")
	}
	if spec[0] == '$' {
		return expandClassRef(g, spec[1:], map[string]bool{})
	}
	lo, hi, err := parseByteOrRange(spec)
	if err != nil {
		return set, err
	}
	for b := int(lo); b <= int(hi); b++ {
		set[b] = true
	}
	return set, nil
}

func expandSpec(g *Grammar, spec string) ([256]bool, error) {
	return expandMatch(g, spec)
}

func expandClassRef(g *Grammar, name string, seen map[string]bool) ([256]bool, error) {
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
			sub, err := expandClassRef(g, spec[1:], seen)
			if err != nil {
				return set, err
			}
			for b, on := range sub {
				set[b] = set[b] || on
			}
			continue
		}
		lo, hi, err := parseByteOrRange(spec)
		if err != nil {
			return set, fmt.Errorf("class %q: %s", name, err)
		}
		for b := int(lo); b <= int(hi); b++ {
			set[b] = true
		}
	}
	return set, nil
}

// parseByteOrRange parses "x" (a single literal byte, exactly one
// rune long and ASCII), "0xHH", or "0xHH-0xHH".
func parseByteOrRange(spec string) (lo, hi byte, err error) {
	if i := strings.IndexByte(spec, '-'); i > 0 && strings.HasPrefix(spec, "0x") {
		lo, err = parseHexByte(spec[:i])
		if err != nil {
			return 0, 0, err
		}
		hi, err = parseHexByte(spec[i+1:])
		if err != nil {
			return 0, 0, err
		}
		if hi < lo {
			return 0, 0, fmt.Errorf("invalid range %q: high < low", spec)
		}
		return lo, hi, nil
	}
	if strings.HasPrefix(spec, "0x") {
		b, err := parseHexByte(spec)
		return b, b, err
	}
	if len(spec) != 1 || spec[0] > 0x7f {
		return 0, 0, fmt.Errorf("invalid match specifier %q", spec)
	}
	return spec[0], spec[0], nil
}

func parseHexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid hex byte %q: %s", s, err)
	}
	return byte(v), nil
}

// SortedClassNames returns the grammar's class names in a
// deterministic order, for stable codegen output.
func (g *Grammar) SortedClassNames() []string {
	names := make([]string, 0, len(g.Classes))
	for n := range g.Classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
