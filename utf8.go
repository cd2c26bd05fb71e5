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
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	surrogateMin    = 0xD800
	surrogateMax    = 0xDFFF
	surrogateOffset = 0x10000
	codepointMax    = 0x10FFFF
)

func isSurrogate(cp int) bool { return cp >= surrogateMin && cp <= surrogateMax }

func isValidCodepoint(cp int) bool { return cp <= codepointMax && !isSurrogate(cp) }

// encodeUTF8 appends the UTF-8 encoding of a Unicode code point to
// buf and returns true. For a surrogate half or a code point above
// 0x10FFFF it writes nothing and returns false.
func encodeUTF8(buf *strBuf, cp int) bool {
	switch {
	case cp <= 0x7F:
		buf.appendByte(byte(cp))
	case cp <= 0x7FF:
		buf.appendByte(byte(0xC0 | (cp>>6)&0x1F))
		buf.appendByte(byte(0x80 | cp&0x3F))
	case isSurrogate(cp):
		return false
	case cp <= 0xFFFF:
		buf.appendByte(byte(0xE0 | (cp>>12)&0x0F))
		buf.appendByte(byte(0x80 | (cp>>6)&0x3F))
		buf.appendByte(byte(0x80 | cp&0x3F))
	case cp <= codepointMax:
		buf.appendByte(byte(0xF0 | (cp>>18)&0x07))
		buf.appendByte(byte(0x80 | (cp>>12)&0x3F))
		buf.appendByte(byte(0x80 | (cp>>6)&0x3F))
		buf.appendByte(byte(0x80 | cp&0x3F))
	default:
		return false
	}
	return true
}

// validUTF8Sequence validates a 1-4 byte UTF-8 sequence at the front
// of b and returns its length, or 0 if b starts with a malformed,
// over-long, above-maximum, or surrogate-decoding sequence. It never
// reads past len(b).
func validUTF8Sequence(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	lead := b[0]
	var codepoint, bar, cont int
	switch {
	case lead&0xE0 == 0xC0:
		codepoint, bar, cont = int(lead&0x1F), 0x7F, 1
	case lead&0xF0 == 0xE0:
		codepoint, bar, cont = int(lead&0x0F), 0x7FF, 2
	case lead&0xF8 == 0xF0:
		codepoint, bar, cont = int(lead&0x07), 0xFFFF, 3
	case lead <= 0x7F:
		return 1
	default:
		return 0
	}
	if len(b) < 1+cont {
		return 0
	}
	for i := 1; i <= cont; i++ {
		c := b[i]
		if c&0xC0 != 0x80 {
			return 0
		}
		codepoint = (codepoint << 6) | int(c&0x3F)
	}
	if codepoint <= bar || !isValidCodepoint(codepoint) {
		return 0
	}
	return 1 + cont
}

// combineSurrogates combines a validated UTF-16 surrogate pair into
// a Unicode code point. Callers must have verified
// u1 in [0xD800,0xDBFF] and u2 in [0xDC00,0xDFFF].
func combineSurrogates(u1, u2 int) int {
	return surrogateOffset + ((u1 & 0x3FF) << 10) + (u2 & 0x3FF)
}

func isFirstSurrogate(u int) bool  { return u&0xFC00 == 0xD800 }
func isSecondSurrogate(u int) bool { return u&0xFC00 == 0xDC00 }

// bomTransformer detects and strips a leading byte-order mark using
// the same decoder infrastructure golang.org/x/text offers for full
// encoding/BOM detection; the fallback is the identity transform
// since jsonpg only ever decodes UTF-8.
var bomTransformer = unicode.BOMOverride(transform.Nop)

// consumeLeadingBOM reports how many bytes of a UTF-8 byte-order mark
// are present at the very start of buf. It is only ever consulted
// against the first chunk read into a fresh Parser's input buffer.
func consumeLeadingBOM(buf []byte) int {
	out, n, err := transform.Bytes(bomTransformer, buf)
	if err != nil && err != transform.ErrShortSrc {
		return 0
	}
	if n == 0 || len(out) >= n {
		return 0
	}
	return n - len(out)
}
