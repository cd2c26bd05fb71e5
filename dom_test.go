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

import "testing"

// TestDOMRoundTrip parses a document into a DOM, replays the DOM
// through a second generator targeting a fresh buffer, and checks
// that the re-printed text is byte-identical to a direct parse ->
// print of the same source.
func TestDOMRoundTrip(t *testing.T) {
	src := `{"a":1,"b":[2,3.5,"s",true,false,null],"c":{}}`

	dom := NewDOM(0)
	domGen, err := NewGenerator(GeneratorOpts{DOM: dom})
	if err != nil {
		t.Fatalf("NewGenerator(DOM): %v", err)
	}
	p1 := New(ParserOptions{})
	p1.SetString(src)
	if err := domGen.Consume(p1); err != nil {
		t.Fatalf("Consume into DOM: %v", err)
	}

	p2 := dom.Parser()
	printGen := newBufferGenerator(t, 0)
	if err := printGen.Consume(p2); err != nil {
		t.Fatalf("Consume from DOM: %v", err)
	}

	p3 := New(ParserOptions{})
	p3.SetString(src)
	directGen := newBufferGenerator(t, 0)
	if err := directGen.Consume(p3); err != nil {
		t.Fatalf("direct Consume: %v", err)
	}

	if printGen.String() != directGen.String() {
		t.Fatalf("DOM round trip mismatch:\n via DOM: %q\ndirect:   %q", printGen.String(), directGen.String())
	}
	if printGen.String() != src {
		t.Fatalf("got %q, want %q", printGen.String(), src)
	}
}

func TestDOMLenAndMultiChunk(t *testing.T) {
	dom := NewDOM(0)
	g, err := NewGenerator(GeneratorOpts{DOM: dom})
	if err != nil {
		t.Fatalf("NewGenerator(DOM): %v", err)
	}
	if err := g.BeginArray(); err != nil {
		t.Fatalf("%v", err)
	}
	const n = domChunkRecords*2 + 10
	for i := 0; i < n; i++ {
		if err := g.Integer(int64(i)); err != nil {
			t.Fatalf("%v", err)
		}
	}
	if err := g.EndArray(); err != nil {
		t.Fatalf("%v", err)
	}
	if got, want := dom.Len(), n+2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	p := dom.Parser()
	count := 0
	for {
		ev := p.Next()
		if ev == EventEOF {
			break
		}
		if ev == EventError {
			t.Fatalf("unexpected error %v", p.Err())
		}
		count++
	}
	if count != dom.Len() {
		t.Fatalf("replayed %d events, DOM has %d", count, dom.Len())
	}
}
