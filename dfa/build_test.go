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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bobd91/jsonpg/grammar"
)

func loadTestGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "testdata", "grammar.json"))
	if err != nil {
		t.Fatalf("reading testdata grammar: %v", err)
	}
	var g grammar.Grammar
	if err := json.Unmarshal(raw, &g); err != nil {
		t.Fatalf("unmarshalling grammar: %v", err)
	}
	if errs := g.Validate(); len(errs) > 0 {
		for _, e := range errs {
			t.Error(e)
		}
		t.FailNow()
	}
	return &g
}

func TestBuildProducesOneRowPerState(t *testing.T) {
	g := loadTestGrammar(t)
	table, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(table.Trans) != len(g.States) {
		t.Fatalf("got %d rows, want %d", len(table.Trans), len(g.States))
	}
	if len(table.StateNames) != len(g.States) {
		t.Fatalf("got %d state names, want %d", len(table.StateNames), len(g.States))
	}
}

func TestBuildStartStateDispatchesStructuralBytes(t *testing.T) {
	g := loadTestGrammar(t)
	table, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	start := table.StateID("start")
	if start < 0 {
		t.Fatalf("no start state in compiled table")
	}
	row := table.Trans[start]

	if !row['{'].Valid {
		t.Fatalf("'{' should be a valid transition out of start")
	}
	if row['{'].Next != start {
		t.Fatalf("'{' should stay in start, got state %d", row['{'].Next)
	}
	if !row['"'].Valid || table.StateNames[row['"'].Next] != "string" {
		t.Fatalf(`'"' should transition to string, got %+v`, row['"'])
	}
	if !row['0'].Valid || table.StateNames[row['0'].Next] != "numAfterZero" {
		t.Fatalf("'0' should transition to numAfterZero, got %+v", row['0'])
	}
	if !row[' '].Valid {
		t.Fatalf("space should be a valid (whitespace) transition")
	}
}

func TestBuildDefaultFillsUncoveredBytes(t *testing.T) {
	g := loadTestGrammar(t)
	table, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	start := table.StateID("start")
	row := table.Trans[start]
	// 'x' is not a structural byte, a quote, a digit, or a literal
	// lead byte, so it must fall through to the "..." default rule.
	if !row['x'].Valid {
		t.Fatalf("'x' should be covered by the default rule")
	}
}

func TestBuildUnknownNextStateErrors(t *testing.T) {
	g := &grammar.Grammar{
		States: []grammar.State{
			{Name: "start", Rules: []grammar.Rule{
				{Match: "a", Next: "ghost"},
			}},
		},
	}
	if _, err := Build(g); err == nil {
		t.Fatalf("want an error building a grammar with an unknown next state")
	}
}

func TestBuildInternsRepeatedActions(t *testing.T) {
	g := &grammar.Grammar{
		States: []grammar.State{
			{Name: "s", Rules: []grammar.Rule{
				{Match: "a", Actions: []string{"push:array"}, Next: "s"},
				{Match: "b", Actions: []string{"push:array"}, Next: "s"},
				{Match: "...", Next: "s"},
			}},
		},
	}
	table, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	row := table.Trans[0]
	if row['a'].Action != row['b'].Action {
		t.Fatalf("identical action lists should intern to the same ActionID")
	}
	if len(table.Actions) != 1 {
		t.Fatalf("got %d distinct actions, want 1", len(table.Actions))
	}
}
