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
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer is the generator's JSON-text back-end. It renders either
// compact or indented output and supports three write targets: a raw
// file descriptor, an internal buffer retrievable via String/Bytes,
// or any io.Writer.
type Printer struct {
	w      io.Writer
	buf    strBuf
	indent uint8

	// firstAtDepth[i] is true until the first item has been written
	// at nesting depth i, and false afterward (so the next item gets
	// a leading comma).
	firstAtDepth []bool
	pendingKey   bool
}

func newPrinter(w io.Writer, indent uint8) *Printer {
	return &Printer{w: w, indent: indent}
}

// String returns the text accumulated so far. Valid for any target,
// though typically used with the internal-buffer (Buffer) target.
func (pr *Printer) String() string { return string(pr.buf.bytes()) }

// Bytes returns the accumulated output without copying.
func (pr *Printer) Bytes() []byte { return pr.buf.bytes() }

// flush writes any buffered output to pr.w and resets the buffer. A
// nil w (buffer-only target) is a no-op.
func (pr *Printer) flush() *Error {
	if pr.w == nil {
		return nil
	}
	if _, err := pr.w.Write(pr.buf.bytes()); err != nil {
		if e, ok := err.(*Error); ok {
			return e
		}
		return &Error{Code: ErrFileWrite}
	}
	pr.buf.reset()
	return nil
}

func (pr *Printer) newline() {
	if pr.indent == 0 {
		return
	}
	pr.buf.appendByte('\n')
	for i := 0; i < len(pr.firstAtDepth)*int(pr.indent); i++ {
		pr.buf.appendByte(' ')
	}
}

// itemPrefix writes the comma (if this isn't the first item at the
// current depth) and newline/indent preceding a key or an array
// element. At the top level it writes nothing.
func (pr *Printer) itemPrefix() {
	n := len(pr.firstAtDepth)
	if n == 0 {
		return
	}
	if pr.firstAtDepth[n-1] {
		pr.firstAtDepth[n-1] = false
	} else {
		pr.buf.appendByte(',')
	}
	pr.newline()
}

// valuePrefix writes either the ": " following a key, or the normal
// item prefix when this value is a plain array element or the sole
// top-level value.
func (pr *Printer) valuePrefix() {
	if pr.pendingKey {
		pr.buf.appendByte(':')
		if pr.indent > 0 {
			pr.buf.appendByte(' ')
		}
		pr.pendingKey = false
		return
	}
	pr.itemPrefix()
}

func (pr *Printer) writeNull() {
	pr.valuePrefix()
	pr.buf.appendString("null")
}

func (pr *Printer) writeBool(v bool) {
	pr.valuePrefix()
	if v {
		pr.buf.appendString("true")
	} else {
		pr.buf.appendString("false")
	}
}

func (pr *Printer) writeInteger(v int64) {
	pr.valuePrefix()
	pr.buf.appendString(strconv.FormatInt(v, 10))
}

// writeReal formats with %.16g, the same precision jsonpg's C printer
// uses, then appends a trailing ".0" when the result would otherwise
// read back as an integer (e.g. "1e+10" is left alone, but "1" from
// a value like 1.0 becomes "1.0").
func (pr *Printer) writeReal(v float64) {
	pr.valuePrefix()
	s := fmt.Sprintf("%.16g", v)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	pr.buf.appendString(s)
}

// writeQuoted escapes and writes b as a JSON string literal. Bytes
// below 0x80 are handled one at a time; bytes at or above 0x80 are
// taken as the lead byte of a multi-byte UTF-8 sequence and validated
// with validUTF8Sequence before being copied through verbatim, so
// invalid or overlong encodings fail with ErrUTF8 instead of being
// printed unchecked.
func (pr *Printer) writeQuoted(b []byte) *Error {
	pr.buf.appendByte('"')
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '\\':
			pr.buf.appendByte('\\')
			pr.buf.appendByte(c)
			i++
		case c == '\n':
			pr.buf.appendString(`\n`)
			i++
		case c == '\r':
			pr.buf.appendString(`\r`)
			i++
		case c == '\t':
			pr.buf.appendString(`\t`)
			i++
		case c == '\b':
			pr.buf.appendString(`\b`)
			i++
		case c == '\f':
			pr.buf.appendString(`\f`)
			i++
		case c < 0x20:
			fmt.Fprintf(&pr.buf, `\u%04x`, c)
			i++
		case c < 0x80:
			pr.buf.appendByte(c)
			i++
		default:
			n := validUTF8Sequence(b[i:])
			if n == 0 {
				return &Error{Code: ErrUTF8}
			}
			pr.buf.append(b[i : i+n])
			i += n
		}
	}
	pr.buf.appendByte('"')
	return nil
}

func (pr *Printer) writeString(b []byte) *Error {
	pr.valuePrefix()
	return pr.writeQuoted(b)
}

func (pr *Printer) writeKey(b []byte) *Error {
	pr.itemPrefix()
	if err := pr.writeQuoted(b); err != nil {
		return err
	}
	pr.pendingKey = true
	return nil
}

func (pr *Printer) writeBeginArray() {
	pr.valuePrefix()
	pr.buf.appendByte('[')
	pr.firstAtDepth = append(pr.firstAtDepth, true)
}

func (pr *Printer) writeEndArray() {
	pr.closeContainer(']')
}

func (pr *Printer) writeBeginObject() {
	pr.valuePrefix()
	pr.buf.appendByte('{')
	pr.firstAtDepth = append(pr.firstAtDepth, true)
}

func (pr *Printer) writeEndObject() {
	pr.closeContainer('}')
}

func (pr *Printer) closeContainer(closer byte) {
	n := len(pr.firstAtDepth)
	wasEmpty := pr.firstAtDepth[n-1]
	pr.firstAtDepth = pr.firstAtDepth[:n-1]
	if !wasEmpty {
		pr.newline()
	}
	pr.buf.appendByte(closer)
	pr.pendingKey = false
}
