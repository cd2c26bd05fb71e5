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

import "fmt"

// ErrorCode identifies the kind of failure recorded in an Error.
type ErrorCode int

// Error codes, mirroring the jsonpg_error_code taxonomy.
const (
	ErrNone ErrorCode = iota
	ErrOpt
	ErrAlloc
	ErrParse
	ErrNumber
	ErrUTF8
	ErrStackUnderflow
	ErrStackOverflow
	ErrFileRead
	ErrFileWrite
	ErrExpectedValue
	ErrExpectedKey
	ErrNoObject
	ErrNoArray
	ErrAbort
)

var errNames = [...]string{
	ErrNone:           "none",
	ErrOpt:            "invalid option combination",
	ErrAlloc:          "allocation failure",
	ErrParse:          "parse error",
	ErrNumber:         "invalid number",
	ErrUTF8:           "invalid UTF-8",
	ErrStackUnderflow: "stack underflow",
	ErrStackOverflow:  "stack overflow",
	ErrFileRead:       "file read error",
	ErrFileWrite:      "file write error",
	ErrExpectedValue:  "expected value",
	ErrExpectedKey:    "expected key",
	ErrNoObject:       "not inside an object",
	ErrNoArray:        "not inside an array",
	ErrAbort:          "aborted",
}

func (c ErrorCode) String() string {
	if int(c) < 0 || int(c) >= len(errNames) {
		return "unknown error"
	}
	return errNames[c]
}

// Error carries an error code and a position: the absolute byte
// position in the input for parser errors, or for generator errors the
// number of values (scalars and closed containers) completed before it
// was detected. Errors are never mutated once set and are
// sticky: once a Parser or Generator records one, every subsequent
// operation is a no-op that returns the same Error.
type Error struct {
	Code ErrorCode
	Pos  int64
}

func (e *Error) Error() string {
	if e == nil || e.Code == ErrNone {
		return "<no error>"
	}
	return fmt.Sprintf("%s at %d", e.Code, e.Pos)
}

// Debug renders a multi-line diagnostic dump of a parser's state at
// the time an error was recorded, mirroring jsonpg's error.c dump_p.
func (e *Error) Debug(p *Parser) string {
	if e == nil {
		return ""
	}
	s := fmt.Sprintf("Parser Error:\nError: %s\nAt Position: %d\n", e.Code, e.Pos)
	if p == nil {
		return s
	}
	s += fmt.Sprintf("Input Length: %d\nInput Processed: %d\n",
		len(p.input), p.processed+int64(p.current))
	s += fmt.Sprintf("Stack Size: %d\nStack Depth: %d\nStack: %s\n",
		p.stack.size, p.stack.depth(), p.stack.String())
	return s
}
