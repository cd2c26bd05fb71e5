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

// Generator is jsonpg's structural back-end driver: it validates
// key/value alternation and container nesting independently of
// whatever produced the events (a Parser, a DOM replay, or a caller
// building JSON by hand), then forwards each validated event to
// exactly one configured back-end (Printer, DOM, or Callbacks).
//
// A Generator's awaiting stack runs parallel to its nesting stack,
// reusing nestStack's single bit per frame to record whether the
// frame (when it is an object) is currently awaiting a key
// (frameArray, read as true) or a value (frameObject, read as
// false). The tag values are arbitrary; only truthiness matters.
type Generator struct {
	maxNesting uint16
	stack      nestStack
	awaiting   nestStack
	done       bool
	processed  int64

	printer   *Printer
	dom       *DOM
	callbacks *Callbacks
	context   interface{}

	err *Error
}

// NewGenerator creates a Generator targeting exactly one back-end, as
// selected by opts.
func NewGenerator(opts GeneratorOpts) (*Generator, *Error) {
	if opts.countTargets() != 1 {
		return nil, &Error{Code: ErrOpt}
	}
	// Unlike the parser's floor, a generator's MaxNesting of 0 means
	// its nesting stack is absent and structural validation is
	// skipped entirely (raw pass-through); only a nonzero value gets
	// floored to defaultMaxNesting.
	nesting := opts.MaxNesting
	if nesting != 0 {
		nesting = floorNesting(nesting)
	}
	g := &Generator{
		maxNesting: nesting,
		stack:      newNestStack(nesting),
		awaiting:   newNestStack(nesting),
		context:    opts.Context,
	}
	switch {
	case opts.FD > 0:
		g.printer = newPrinter(fdSink{fd: opts.FD}, opts.Indent)
	case opts.Buffer:
		g.printer = newPrinter(nil, opts.Indent)
	case opts.Writer != nil:
		g.printer = newPrinter(opts.Writer, opts.Indent)
	case opts.DOM != nil:
		g.dom = opts.DOM
	case opts.Callbacks != nil:
		g.callbacks = opts.Callbacks
	}
	return g, nil
}

func (g *Generator) fail(code ErrorCode) *Error {
	g.err = &Error{Code: code, Pos: g.processed}
	if g.callbacks != nil && g.callbacks.Error != nil {
		g.callbacks.Error(g.context, g.err)
	}
	return g.err
}

// validating reports whether structural checks (key/value
// alternation, container matching, nesting depth) apply. A
// MaxNesting of 0 disables the nesting stack entirely and every such
// check is skipped, mirroring the original generator's stack.size
// guards.
func (g *Generator) validating() bool { return g.maxNesting != 0 }

func (g *Generator) topIsObject() bool {
	return g.stack.depth() > 0 && g.stack.peek() == int(frameObject)
}

// awaitingKey reports whether the current top-of-stack object frame
// is positioned to accept a Key call. Meaningless (and unchecked)
// when the top frame is an array.
func (g *Generator) awaitingKey() bool {
	return g.awaiting.peek() == int(frameArray)
}

// beginValue validates that a value-kind event (everything except
// Key/EndArray/EndObject) is legal right now.
func (g *Generator) beginValue() *Error {
	if g.err != nil {
		return g.err
	}
	if !g.validating() {
		return nil
	}
	if g.done {
		return g.fail(ErrParse)
	}
	if g.topIsObject() && g.awaitingKey() {
		return g.fail(ErrExpectedKey)
	}
	return nil
}

// afterValue records that a value-kind event was accepted: it flips
// the parent object (if any) back to awaiting a key, and marks the
// generator done once the outermost value has closed. A no-op in
// raw pass-through mode (validating() false).
func (g *Generator) afterValue() {
	g.processed++
	if !g.validating() {
		return
	}
	if g.stack.depth() == 0 {
		g.done = true
		return
	}
	if g.stack.peek() == int(frameObject) {
		g.awaiting.setTop(frameArray)
	}
}

// Null emits a NULL event.
func (g *Generator) Null() *Error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if err := g.emitNull(); err != nil {
		return err
	}
	g.afterValue()
	return nil
}

// Bool emits a TRUE or FALSE event.
func (g *Generator) Bool(v bool) *Error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if err := g.emitBool(v); err != nil {
		return err
	}
	g.afterValue()
	return nil
}

// Integer emits an INTEGER event.
func (g *Generator) Integer(v int64) *Error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if err := g.emitInteger(v); err != nil {
		return err
	}
	g.afterValue()
	return nil
}

// Real emits a REAL event.
func (g *Generator) Real(v float64) *Error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if err := g.emitReal(v); err != nil {
		return err
	}
	g.afterValue()
	return nil
}

// Str emits a STRING event.
func (g *Generator) Str(v []byte) *Error {
	return g.emitValueString(v)
}

func (g *Generator) emitValueString(v []byte) *Error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if err := g.emitString(v); err != nil {
		return err
	}
	g.afterValue()
	return nil
}

// Key emits a KEY event. It is only legal directly inside an object,
// at a position awaiting a key.
func (g *Generator) Key(k []byte) *Error {
	if g.err != nil {
		return g.err
	}
	if g.validating() {
		if g.done {
			return g.fail(ErrParse)
		}
		if !g.topIsObject() {
			return g.fail(ErrNoObject)
		}
		if !g.awaitingKey() {
			return g.fail(ErrExpectedValue)
		}
		g.awaiting.setTop(frameObject)
	}
	if err := g.emitKey(k); err != nil {
		return err
	}
	return nil
}

// BeginArray emits a BEGIN_ARRAY event and pushes an array frame.
func (g *Generator) BeginArray() *Error { return g.beginContainer(frameArray) }

// BeginObject emits a BEGIN_OBJECT event and pushes an object frame,
// initially awaiting its first key.
func (g *Generator) BeginObject() *Error { return g.beginContainer(frameObject) }

func (g *Generator) beginContainer(kind frameKind) *Error {
	if err := g.beginValue(); err != nil {
		return err
	}
	if g.validating() {
		if !g.stack.push(kind) {
			return g.fail(ErrStackOverflow)
		}
		g.awaiting.push(frameArray)
	}
	if err := g.emitBegin(kind); err != nil {
		return err
	}
	return nil
}

// EndArray emits an END_ARRAY event, closing the innermost array.
func (g *Generator) EndArray() *Error { return g.endContainer(frameArray, ErrNoArray) }

// EndObject emits an END_OBJECT event, closing the innermost object.
// It is only legal while awaiting a key (never mid key/value pair).
func (g *Generator) EndObject() *Error { return g.endContainer(frameObject, ErrNoObject) }

func (g *Generator) endContainer(kind frameKind, mismatch ErrorCode) *Error {
	if g.err != nil {
		return g.err
	}
	if g.validating() {
		if g.done {
			return g.fail(ErrParse)
		}
		if g.stack.depth() == 0 || g.stack.peek() != int(kind) {
			return g.fail(mismatch)
		}
		if kind == frameObject && !g.awaitingKey() {
			return g.fail(ErrExpectedValue)
		}
		g.stack.pop()
		g.awaiting.pop()
	}
	if err := g.emitEnd(kind); err != nil {
		return err
	}
	g.afterValue()
	return nil
}

func (g *Generator) emitNull() *Error {
	switch {
	case g.printer != nil:
		g.printer.writeNull()
	case g.dom != nil:
		g.dom.AppendEvent(EventNull)
	case g.callbacks != nil:
		if cb := g.callbacks.Null; cb != nil && !cb(g.context) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitBool(v bool) *Error {
	switch {
	case g.printer != nil:
		g.printer.writeBool(v)
	case g.dom != nil:
		if v {
			g.dom.AppendEvent(EventTrue)
		} else {
			g.dom.AppendEvent(EventFalse)
		}
	case g.callbacks != nil:
		if cb := g.callbacks.Bool; cb != nil && !cb(g.context, v) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitInteger(v int64) *Error {
	switch {
	case g.printer != nil:
		g.printer.writeInteger(v)
	case g.dom != nil:
		g.dom.AppendInteger(v)
	case g.callbacks != nil:
		if cb := g.callbacks.Integer; cb != nil && !cb(g.context, v) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitReal(v float64) *Error {
	switch {
	case g.printer != nil:
		g.printer.writeReal(v)
	case g.dom != nil:
		g.dom.AppendReal(v)
	case g.callbacks != nil:
		if cb := g.callbacks.Real; cb != nil && !cb(g.context, v) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitString(v []byte) *Error {
	switch {
	case g.printer != nil:
		if err := g.printer.writeString(v); err != nil {
			return g.fail(err.Code)
		}
	case g.dom != nil:
		g.dom.AppendString(EventString, v)
	case g.callbacks != nil:
		if cb := g.callbacks.String; cb != nil && !cb(g.context, v) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitKey(v []byte) *Error {
	switch {
	case g.printer != nil:
		if err := g.printer.writeKey(v); err != nil {
			return g.fail(err.Code)
		}
	case g.dom != nil:
		g.dom.AppendString(EventKey, v)
	case g.callbacks != nil:
		if cb := g.callbacks.Key; cb != nil && !cb(g.context, v) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitBegin(kind frameKind) *Error {
	switch {
	case g.printer != nil:
		if kind == frameObject {
			g.printer.writeBeginObject()
		} else {
			g.printer.writeBeginArray()
		}
	case g.dom != nil:
		if kind == frameObject {
			g.dom.AppendEvent(EventBeginObject)
		} else {
			g.dom.AppendEvent(EventBeginArray)
		}
	case g.callbacks != nil:
		var cb func(interface{}) bool
		if kind == frameObject {
			cb = g.callbacks.BeginObject
		} else {
			cb = g.callbacks.BeginArray
		}
		if cb != nil && !cb(g.context) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

func (g *Generator) emitEnd(kind frameKind) *Error {
	switch {
	case g.printer != nil:
		if kind == frameObject {
			g.printer.writeEndObject()
		} else {
			g.printer.writeEndArray()
		}
	case g.dom != nil:
		if kind == frameObject {
			g.dom.AppendEvent(EventEndObject)
		} else {
			g.dom.AppendEvent(EventEndArray)
		}
	case g.callbacks != nil:
		var cb func(interface{}) bool
		if kind == frameObject {
			cb = g.callbacks.EndObject
		} else {
			cb = g.callbacks.EndArray
		}
		if cb != nil && !cb(g.context) {
			return g.fail(ErrAbort)
		}
	}
	return nil
}

// Consume pulls events from p until EOF or error, replaying each one
// through the generator's validation and configured back-end. It is
// the bridge a copy, reformat, or validate operation runs through.
func (g *Generator) Consume(p *Parser) *Error {
	for {
		switch p.Next() {
		case EventEOF:
			return g.Finish()
		case EventError:
			g.err = p.Err()
			return g.err
		case EventNull:
			if err := g.Null(); err != nil {
				return err
			}
		case EventTrue:
			if err := g.Bool(true); err != nil {
				return err
			}
		case EventFalse:
			if err := g.Bool(false); err != nil {
				return err
			}
		case EventInteger:
			if err := g.Integer(p.Result().Integer); err != nil {
				return err
			}
		case EventReal:
			if err := g.Real(p.Result().Real); err != nil {
				return err
			}
		case EventString:
			if err := g.emitValueString(p.Result().String); err != nil {
				return err
			}
		case EventKey:
			if err := g.Key(p.Result().String); err != nil {
				return err
			}
		case EventBeginArray:
			if err := g.BeginArray(); err != nil {
				return err
			}
		case EventBeginObject:
			if err := g.BeginObject(); err != nil {
				return err
			}
		case EventEndArray:
			if err := g.EndArray(); err != nil {
				return err
			}
		case EventEndObject:
			if err := g.EndObject(); err != nil {
				return err
			}
		}
	}
}

// Finish flushes a Printer back-end (a no-op for DOM/Callbacks
// targets) and returns the generator's sticky error, if any.
func (g *Generator) Finish() *Error {
	if g.printer != nil {
		if err := g.printer.flush(); err != nil {
			g.err = err
			return err
		}
	}
	return g.err
}

// String returns the text accumulated by a Buffer-targeted Printer.
func (g *Generator) String() string {
	if g.printer != nil {
		return g.printer.String()
	}
	return ""
}

// Bytes returns the bytes accumulated by a Buffer-targeted Printer.
func (g *Generator) Bytes() []byte {
	if g.printer != nil {
		return g.printer.Bytes()
	}
	return nil
}

// Err returns the generator's sticky error, if any.
func (g *Generator) Err() *Error { return g.err }
