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

// Package jsonpg implements a streaming, table-driven, pull-mode JSON
// parser paired with a validating structural generator.
//
// The parser (Parser) reads bytes from memory, a file descriptor, or an
// io.Reader and exposes them as a lazy sequence of parse events via
// Next/Result. The generator (Generator) consumes the same event
// vocabulary, validates structural correctness (container nesting,
// key/value alternation) and dispatches to a back-end: a Printer
// (pretty or compact JSON text), a DOM (an in-memory, replayable
// encoding of the event stream), or a user-supplied Callbacks set.
//
// A single parser or generator is not safe for concurrent use; separate
// instances may be driven from separate goroutines freely.
package jsonpg
