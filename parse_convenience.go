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

// Parse is the one-shot convenience entry point: it wires exactly one
// input source from opts to exactly one output back-end and runs the
// parse to completion. Reusing an existing Parser or Generator (via
// opts.Parser / opts.Generator) avoids an allocation when called in a
// loop.
func Parse(opts ParseOpts) *Error {
	if opts.countInputs() != 1 || opts.countOutputs() != 1 {
		return &Error{Code: ErrOpt}
	}

	p := opts.Parser
	if p == nil {
		p = New(ParserOptions{})
	}
	switch {
	case opts.Bytes != nil:
		p.SetBytes(opts.Bytes)
	case opts.String != "":
		p.SetString(opts.String)
	case opts.Reader != nil:
		p.SetReader(opts.Reader)
	case opts.FD > 0:
		p.SetFD(opts.FD)
	case opts.DOM != nil:
		p.SetDOM(opts.DOM)
	}

	g := opts.Generator
	if g == nil {
		newG, err := NewGenerator(GeneratorOpts{Callbacks: opts.Callbacks, Context: opts.Context, MaxNesting: defaultMaxNesting})
		if err != nil {
			return err
		}
		g = newG
	}
	return g.Consume(p)
}
