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
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/bobd91/jsonpg/dfa"
	"github.com/bobd91/jsonpg/grammar"
)

func newBuildCmd() *cobra.Command {
	var (
		grammarPath string
		outPath     string
		pkgName     string
		varName     string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Validate a grammar JSON file and emit a Go transition table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(grammarPath, outPath, pkgName, varName)
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "path to the grammar JSON file (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "path to the generated Go source file (required)")
	cmd.Flags().StringVar(&pkgName, "package", "main", "package name for the generated file")
	cmd.Flags().StringVar(&varName, "var", "Table", "identifier for the generated table variable")
	cmd.MarkFlagRequired("grammar")
	cmd.MarkFlagRequired("out")
	return cmd
}

func runBuild(grammarPath, outPath, pkgName, varName string) error {
	raw, err := os.ReadFile(grammarPath)
	if err != nil {
		return fmt.Errorf("reading grammar: %w", err)
	}

	var g grammar.Grammar
	if err := json.Unmarshal(raw, &g); err != nil {
		return fmt.Errorf("parsing grammar: %w", err)
	}

	if errs := g.Validate(); len(errs) > 0 {
		var b strings.Builder
		for _, e := range errs {
			fmt.Fprintln(&b, e)
		}
		return fmt.Errorf("grammar %q is invalid:\n%s", grammarPath, b.String())
	}

	table, err := dfa.Build(&g)
	if err != nil {
		return fmt.Errorf("compiling grammar: %w", err)
	}

	src, err := renderTable(pkgName, varName, &g, table)
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

const tableTemplate = `// Code generated by jsonpggen from {{.GrammarName}}. DO NOT EDIT.

package {{.Package}}

// {{.Var}}Actions is the ordered, de-duplicated action list referenced
// by {{.Var}}.Trans entries.
var {{.Var}}Actions = []string{
{{- range .Actions}}
	{{. | quote}},
{{- end}}
}

// {{.Var}}StateNames maps each state index back to its grammar name.
var {{.Var}}StateNames = []string{
{{- range .StateNames}}
	{{. | quote}},
{{- end}}
}

type {{.Var}}Entry struct {
	Action  int
	Next    int
	Advance bool
	Valid   bool
}

// {{.Var}} is the compiled byte-dispatch transition table: one
// 256-entry row per state.
var {{.Var}} = [][256]{{.Var}}Entry{
{{- range $i, $row := .Rows}}
	{ // {{index $.StateNames $i}}
	{{- range $row}}
		{ {{.Action}}, {{.Next}}, {{.Advance}}, {{.Valid}} },
	{{- end}}
	},
{{- end}}
}
`

type rowEntry struct {
	Action  int
	Next    int
	Advance bool
	Valid   bool
}

func renderTable(pkgName, varName string, g *grammar.Grammar, t *dfa.Table) ([]byte, error) {
	rows := make([][256]rowEntry, len(t.Trans))
	for i, row := range t.Trans {
		for b, e := range row {
			rows[i][b] = rowEntry{Action: int(e.Action), Next: int(e.Next), Advance: e.Advance, Valid: e.Valid}
		}
	}

	tmpl := template.Must(template.New("table").Funcs(template.FuncMap{
		"quote": strconv.Quote,
	}).Parse(tableTemplate))

	data := struct {
		GrammarName string
		Package     string
		Var         string
		Actions     []string
		StateNames  []string
		Rows        [][256]rowEntry
	}{
		GrammarName: g.Name,
		Package:     pkgName,
		Var:         varName,
		Actions:     t.Actions,
		StateNames:  t.StateNames,
		Rows:        rows,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("gofmt: %w (unformatted source written)", err)
	}
	return out, nil
}
