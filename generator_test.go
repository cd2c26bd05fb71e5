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

package jsonpg

import (
	"strings"
	"testing"
)

// newBufferGenerator builds a validating Generator (MaxNesting
// defaulted, not the MaxNesting: 0 raw pass-through mode) writing to
// an internal buffer.
func newBufferGenerator(t *testing.T, indent uint8) *Generator {
	t.Helper()
	g, err := NewGenerator(GeneratorOpts{Buffer: true, Indent: indent, MaxNesting: defaultMaxNesting})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestGeneratorHandBuiltCompact(t *testing.T) {
	g := newBufferGenerator(t, 0)
	must := func(err *Error) {
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	must(g.BeginObject())
	must(g.Key([]byte("a")))
	must(g.Integer(1))
	must(g.Key([]byte("b")))
	must(g.BeginArray())
	must(g.Bool(true))
	must(g.Null())
	must(g.EndArray())
	must(g.EndObject())
	must(g.Finish())

	want := `{"a":1,"b":[true,null]}`
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGeneratorIndented(t *testing.T) {
	g := newBufferGenerator(t, 2)
	g.BeginArray()
	g.Integer(1)
	g.Integer(2)
	g.EndArray()
	g.Finish()
	want := "[\n  1,\n  2\n]"
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGeneratorEmptyContainersInline(t *testing.T) {
	g := newBufferGenerator(t, 2)
	g.BeginObject()
	g.Key([]byte("a"))
	g.BeginArray()
	g.EndArray()
	g.EndObject()
	g.Finish()
	want := "{\n  \"a\": []\n}"
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGeneratorRejectsValueWhenAwaitingKey(t *testing.T) {
	g := newBufferGenerator(t, 0)
	g.BeginObject()
	if err := g.Integer(1); err == nil || err.Code != ErrExpectedKey {
		t.Fatalf("want ErrExpectedKey, got %v", err)
	}
}

func TestGeneratorRejectsKeyOutsideObject(t *testing.T) {
	g := newBufferGenerator(t, 0)
	g.BeginArray()
	if err := g.Key([]byte("a")); err == nil || err.Code != ErrNoObject {
		t.Fatalf("want ErrNoObject, got %v", err)
	}
}

func TestGeneratorRejectsMismatchedClose(t *testing.T) {
	g := newBufferGenerator(t, 0)
	g.BeginArray()
	if err := g.EndObject(); err == nil || err.Code != ErrNoObject {
		t.Fatalf("want ErrNoObject, got %v", err)
	}
}

func TestGeneratorRejectsCloseObjectMidPair(t *testing.T) {
	g := newBufferGenerator(t, 0)
	g.BeginObject()
	g.Key([]byte("a"))
	if err := g.EndObject(); err == nil || err.Code != ErrExpectedValue {
		t.Fatalf("want ErrExpectedValue, got %v", err)
	}
}

func TestGeneratorRejectsSecondTopLevelValue(t *testing.T) {
	g := newBufferGenerator(t, 0)
	g.Integer(1)
	if err := g.Integer(2); err == nil {
		t.Fatalf("want an error emitting a second top-level value")
	}
}

func TestGeneratorStickyAfterError(t *testing.T) {
	g := newBufferGenerator(t, 0)
	g.BeginArray()
	first := g.EndObject()
	if first == nil {
		t.Fatalf("expected an error")
	}
	second := g.Integer(1)
	if second != first {
		t.Fatalf("sticky error changed: first=%v second=%v", first, second)
	}
}

func TestGeneratorCallbackAbort(t *testing.T) {
	aborted := false
	cb := &Callbacks{
		Integer: func(ctx interface{}, v int64) bool {
			aborted = true
			return false
		},
	}
	g, err := NewGenerator(GeneratorOpts{Callbacks: cb})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if err := g.Integer(42); err == nil || err.Code != ErrAbort {
		t.Fatalf("want ErrAbort, got %v", err)
	}
	if !aborted {
		t.Fatalf("callback was not invoked")
	}
}

func TestGeneratorConsumeFromParser(t *testing.T) {
	p := New(ParserOptions{})
	p.SetString(`{"a":[1,2.5,"s",true,false,null]}`)
	g := newBufferGenerator(t, 0)
	if err := g.Consume(p); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	want := `{"a":[1,2.5,"s",true,false,null]}`
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGeneratorNestingOverflow(t *testing.T) {
	g, err := NewGenerator(GeneratorOpts{Buffer: true, MaxNesting: defaultMaxNesting})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	for i := 0; i < 1024; i++ {
		if err := g.BeginArray(); err != nil {
			t.Fatalf("unexpected error at depth %d: %v", i, err)
		}
	}
	if err := g.BeginArray(); err == nil || err.Code != ErrStackOverflow {
		t.Fatalf("want ErrStackOverflow, got %v", err)
	}
}

func TestGeneratorZeroMaxNestingDisablesValidation(t *testing.T) {
	g, err := NewGenerator(GeneratorOpts{Buffer: true})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	// No MaxNesting set: structural validation is off, so a mismatched
	// close and a key outside any object still succeed and reach the
	// printer rather than failing with ErrNoObject.
	if err := g.BeginArray(); err != nil {
		t.Fatalf("BeginArray: %v", err)
	}
	if err := g.EndObject(); err != nil {
		t.Fatalf("want EndObject to pass through when validation is disabled, got %v", err)
	}
	if err := g.Key([]byte("a")); err != nil {
		t.Fatalf("want Key to pass through when validation is disabled, got %v", err)
	}
	if err := g.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := g.String(); !strings.Contains(got, `"a"`) {
		t.Fatalf("got %q, want it to contain the key text", got)
	}
}
