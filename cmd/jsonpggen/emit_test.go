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

package main

import (
	"strings"
	"testing"

	"github.com/bobd91/jsonpg/dfa"
	"github.com/bobd91/jsonpg/grammar"
)

func TestRenderTableProducesCompilableLookingSource(t *testing.T) {
	g := &grammar.Grammar{
		Name: "tiny",
		States: []grammar.State{
			{Name: "start", Rules: []grammar.Rule{
				{Match: "a", Actions: []string{"push:array"}, Next: "start"},
				{Match: "...", Next: "start"},
			}},
		},
	}
	table, err := dfa.Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	src, err := renderTable("gen", "Table", g, table)
	if err != nil {
		t.Fatalf("renderTable: %v", err)
	}
	out := string(src)

	for _, want := range []string{"package gen", "var TableActions", "var TableStateNames", "var Table ="} {
		if !strings.Contains(out, want) {
			t.Fatalf("generated source missing %q:\n%s", want, out)
		}
	}
}

func TestRunBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	outPath := dir + "/table.go"
	if err := runBuild("../../testdata/grammar.json", outPath, "gen", "Table"); err != nil {
		t.Fatalf("runBuild: %v", err)
	}
}
