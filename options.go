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
	"errors"
	"io"
)

// ErrOptions describes an *Opts struct that violates its "exactly one
// of" contract. Parse and NewGenerator report that case as an *Error
// with code ErrOpt; neither returns nor wraps ErrOptions itself.
var ErrOptions = errors.New("jsonpg: invalid option combination")

// defaultMaxNesting is the floor applied to ParserOptions.MaxNesting
// and to a nonzero GeneratorOpts.MaxNesting.
const defaultMaxNesting = 1024

// ParserOptions configures a new Parser.
type ParserOptions struct {
	// MaxNesting bounds container nesting depth. Values below 1024
	// are floored to 1024. A Parser's nesting stack is sized once,
	// at construction.
	MaxNesting uint16
	Flags      Flag
}

// ParseOpts selects exactly one input source and exactly one output
// sink for a one-shot Parse call.
type ParseOpts struct {
	FD       int
	Bytes    []byte
	String   string
	Reader   io.Reader
	DOM      *DOM
	Parser   *Parser // reuse an existing parser instead of allocating one

	Callbacks *Callbacks
	Context   interface{}
	Generator *Generator
}

func (o ParseOpts) countInputs() int {
	n := 0
	if o.FD > 0 {
		n++
	}
	if o.Bytes != nil {
		n++
	}
	if o.String != "" {
		n++
	}
	if o.Reader != nil {
		n++
	}
	if o.DOM != nil {
		n++
	}
	return n
}

func (o ParseOpts) countOutputs() int {
	n := 0
	if o.Callbacks != nil {
		n++
	}
	if o.Generator != nil {
		n++
	}
	return n
}

// GeneratorOpts selects exactly one back-end target for a new
// Generator.
type GeneratorOpts struct {
	Indent uint8 // 0 = compact

	// MaxNesting bounds container nesting depth, floored to 1024 when
	// nonzero. Unlike ParserOptions.MaxNesting, a value of exactly 0
	// disables the nesting stack entirely: key/value alternation,
	// container matching, and depth checks are all skipped, and
	// events are passed straight through to the configured back end.
	MaxNesting uint16

	FD        int
	Buffer    bool
	Writer    io.Writer
	DOM       *DOM
	Callbacks *Callbacks
	Context   interface{}
}

func (o GeneratorOpts) countTargets() int {
	n := 0
	if o.FD > 0 {
		n++
	}
	if o.Buffer {
		n++
	}
	if o.Writer != nil {
		n++
	}
	if o.DOM != nil {
		n++
	}
	if o.Callbacks != nil {
		n++
	}
	return n
}

func floorNesting(n uint16) uint16 {
	if n < defaultMaxNesting {
		return defaultMaxNesting
	}
	return n
}
