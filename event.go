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

// EventKind is the wire vocabulary shared by the parser, the
// generator and the DOM: every value flowing through jsonpg is one
// of these kinds.
type EventKind int

const (
	EventNone EventKind = iota
	EventNull
	EventFalse
	EventTrue
	EventInteger
	EventReal
	EventString
	EventKey
	EventBeginArray
	EventEndArray
	EventBeginObject
	EventEndObject
	EventError
	EventEOF
	EventPull
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "NONE"
	case EventNull:
		return "NULL"
	case EventFalse:
		return "FALSE"
	case EventTrue:
		return "TRUE"
	case EventInteger:
		return "INTEGER"
	case EventReal:
		return "REAL"
	case EventString:
		return "STRING"
	case EventKey:
		return "KEY"
	case EventBeginArray:
		return "BEGIN_ARRAY"
	case EventEndArray:
		return "END_ARRAY"
	case EventBeginObject:
		return "BEGIN_OBJECT"
	case EventEndObject:
		return "END_OBJECT"
	case EventError:
		return "ERROR"
	case EventEOF:
		return "EOF"
	case EventPull:
		return "PULL"
	default:
		return "UNKNOWN"
	}
}

// Result carries the payload associated with the most recently
// produced event: Integer/Real for numbers, String for STRING/KEY
// events, and Err for ERROR events. String results alias either the
// parser's input buffer or its write buffer and are only valid until
// the next call to Next.
type Result struct {
	Integer int64
	Real    float64
	String  []byte
	Err     *Error
}
