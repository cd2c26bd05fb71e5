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

func TestValidUTF8Sequence(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
		want int
	}{
		{"ascii", []byte{'a'}, 1},
		{"two-byte", []byte{0xC2, 0xA9}, 2},
		{"three-byte", []byte{0xE2, 0x82, 0xAC}, 3},
		{"four-byte", []byte{0xF0, 0x9F, 0x98, 0x80}, 4},
		{"truncated-two-byte", []byte{0xC2}, 0},
		{"truncated-four-byte", []byte{0xF0, 0x9F, 0x98}, 0},
		{"overlong-two-byte", []byte{0xC0, 0x80}, 0},
		{"bad-continuation", []byte{0xE2, 0x28, 0xAC}, 0},
		{"surrogate-encoded", []byte{0xED, 0xA0, 0x80}, 0},
		{"above-max", []byte{0xF4, 0x90, 0x80, 0x80}, 0},
		{"empty", []byte{}, 0},
		{"lone-continuation", []byte{0x80}, 0},
	}
	for _, c := range cases {
		if got := validUTF8Sequence(c.b); got != c.want {
			t.Errorf("%s: validUTF8Sequence(% x) = %d, want %d", c.name, c.b, got, c.want)
		}
	}
}

func TestCombineSurrogates(t *testing.T) {
	// U+1F600 GRINNING FACE encodes as the surrogate pair D83D DE00.
	cp := combineSurrogates(0xD83D, 0xDE00)
	if cp != 0x1F600 {
		t.Fatalf("combineSurrogates = %#x, want %#x", cp, 0x1F600)
	}
	if !isFirstSurrogate(0xD83D) {
		t.Fatalf("0xD83D should be a first (high) surrogate")
	}
	if !isSecondSurrogate(0xDE00) {
		t.Fatalf("0xDE00 should be a second (low) surrogate")
	}
	if isFirstSurrogate(0xDE00) {
		t.Fatalf("0xDE00 should not be a first surrogate")
	}
}

func TestEncodeUTF8(t *testing.T) {
	cases := []struct {
		cp   int
		want []byte
	}{
		{'a', []byte{'a'}},
		{0xA9, []byte{0xC2, 0xA9}},
		{0x20AC, []byte{0xE2, 0x82, 0xAC}},
		{0x1F600, []byte{0xF0, 0x9F, 0x98, 0x80}},
	}
	for _, c := range cases {
		var buf strBuf
		if !encodeUTF8(&buf, c.cp) {
			t.Fatalf("encodeUTF8(%#x) failed", c.cp)
		}
		if string(buf.bytes()) != string(c.want) {
			t.Errorf("encodeUTF8(%#x) = % x, want % x", c.cp, buf.bytes(), c.want)
		}
	}
	var buf strBuf
	if encodeUTF8(&buf, surrogateMin) {
		t.Fatalf("encodeUTF8 should reject a bare surrogate value")
	}
}
