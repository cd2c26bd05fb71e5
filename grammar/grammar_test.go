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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func loadTestGrammar(t *testing.T) *Grammar {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "testdata", "grammar.json"))
	if err != nil {
		t.Fatalf("reading testdata grammar: %v", err)
	}
	var g Grammar
	if err := json.Unmarshal(raw, &g); err != nil {
		t.Fatalf("unmarshalling grammar: %v", err)
	}
	return &g
}

func TestValidateCleanGrammar(t *testing.T) {
	g := loadTestGrammar(t)
	if errs := g.Validate(); len(errs) > 0 {
		for _, e := range errs {
			t.Error(e)
		}
	}
}

func TestValidateUnknownClassReference(t *testing.T) {
	g := &Grammar{
		Name: "bad",
		States: []State{
			{Name: "start", Rules: []Rule{
				{Match: "$nope", Next: "start"},
				{Match: "...", Next: "start"},
			}},
		},
	}
	errs := g.Validate()
	if len(errs) == 0 {
		t.Fatalf("want a validation error for an unknown class reference")
	}
}

func TestValidateUnknownNextState(t *testing.T) {
	g := &Grammar{
		States: []State{
			{Name: "start", Rules: []Rule{
				{Match: "a", Next: "nowhere"},
			}},
		},
	}
	errs := g.Validate()
	if len(errs) == 0 {
		t.Fatalf("want a validation error for an unknown next state")
	}
}

func TestValidateDuplicateDefaultRule(t *testing.T) {
	g := &Grammar{
		States: []State{
			{Name: "start", Rules: []Rule{
				{Match: "...", Next: "start"},
				{Match: "...", Next: "start"},
			}},
		},
	}
	errs := g.Validate()
	if len(errs) == 0 {
		t.Fatalf("want a validation error for two default rules in one state")
	}
}

func TestValidateOverlappingConcreteMatch(t *testing.T) {
	g := &Grammar{
		States: []State{
			{Name: "start", Rules: []Rule{
				{Match: "a", Next: "start"},
				{Match: "0x61", Next: "start"},
			}},
		},
	}
	errs := g.Validate()
	if len(errs) == 0 {
		t.Fatalf("want a validation error for two rules matching the same byte")
	}
}

func TestValidateUntargetedVirtualRule(t *testing.T) {
	g := &Grammar{
		States: []State{
			{Name: "start", Rules: []Rule{
				{Match: "a", Next: "start"},
				{Match: "???", Label: "unused", Next: "start"},
			}},
		},
	}
	errs := g.Validate()
	if len(errs) == 0 {
		t.Fatalf("want a validation error for an untargeted virtual rule")
	}
}

func TestValidateUnknownAction(t *testing.T) {
	g := &Grammar{
		States: []State{
			{Name: "start", Rules: []Rule{
				{Match: "a", Actions: []string{"frobnicate"}, Next: "start"},
			}},
		},
	}
	errs := g.Validate()
	if len(errs) == 0 {
		t.Fatalf("want a validation error for an unknown action")
	}
}
