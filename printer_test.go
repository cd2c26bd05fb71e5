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
	"bytes"
	"testing"
)

func TestPrinterRealFormatting(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{1, "1.0"},
		{1.5, "1.5"},
		{-2, "-2.0"},
		{0, "0.0"},
	}
	for _, c := range cases {
		pr := newPrinter(nil, 0)
		pr.writeReal(c.v)
		if got := pr.String(); got != c.want {
			t.Fatalf("writeReal(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestPrinterEscapesControlCharacters(t *testing.T) {
	input := []byte{'a', 0x01, 'b', '\n', '"', '\\'}
	pr := newPrinter(nil, 0)
	if err := pr.writeString(input); err != nil {
		t.Fatalf("writeString: %v", err)
	}
	want := "\"a\\u0001b\\n\\\"\\\\\""
	if got := pr.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrinterPassesThroughValidMultiByteUTF8(t *testing.T) {
	input := []byte("café \xf0\x9f\x98\x80")
	pr := newPrinter(nil, 0)
	if err := pr.writeString(input); err != nil {
		t.Fatalf("writeString: %v", err)
	}
	want := `"café 😀"`
	if got := pr.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrinterRejectsInvalidUTF8(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
	}{
		{"bad continuation byte", []byte{'a', 0xC2, 0x20}},
		{"overlong two-byte encoding", []byte{0xC0, 0x80}},
		{"lone continuation byte", []byte{0x80}},
		{"truncated four-byte sequence", []byte{0xF0, 0x9F, 0x98}},
	}
	for _, c := range cases {
		pr := newPrinter(nil, 0)
		err := pr.writeString(c.input)
		if err == nil || err.Code != ErrUTF8 {
			t.Fatalf("%s: got %v, want ErrUTF8", c.name, err)
		}
	}
}

func TestGeneratorRejectsInvalidUTF8InStringAndKey(t *testing.T) {
	bad := []byte{0xC2, 0x20}

	g := newBufferGenerator(t, 0)
	if err := g.Str(bad); err == nil || err.Code != ErrUTF8 {
		t.Fatalf("Str: got %v, want ErrUTF8", err)
	}

	g2 := newBufferGenerator(t, 0)
	if err := g2.BeginObject(); err != nil {
		t.Fatalf("BeginObject: %v", err)
	}
	if err := g2.Key(bad); err == nil || err.Code != ErrUTF8 {
		t.Fatalf("Key: got %v, want ErrUTF8", err)
	}
}

func TestPrinterWriterTarget(t *testing.T) {
	var buf bytes.Buffer
	pr := newPrinter(&buf, 0)
	pr.writeBeginArray()
	pr.writeInteger(1)
	pr.writeEndArray()
	if err := pr.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := buf.String(); got != "[1]" {
		t.Fatalf("got %q", got)
	}
}

func TestPrinterCompactIdempotence(t *testing.T) {
	src := `{"a":[1,2,{"b":"c"}],"d":null}`
	p := New(ParserOptions{})
	p.SetString(src)
	g := newBufferGenerator(t, 0)
	if err := g.Consume(p); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	first := g.String()

	p2 := New(ParserOptions{})
	p2.SetString(first)
	g2 := newBufferGenerator(t, 0)
	if err := g2.Consume(p2); err != nil {
		t.Fatalf("re-Consume: %v", err)
	}
	second := g2.String()

	if first != second {
		t.Fatalf("compact printing is not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}
