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

import "io"

// pstate is the parser's current syntactic expectation. Unlike a
// literal 256-entry-per-state transition table, each pstate here is
// handled by its own step method, selected by the switch in Next — the
// tight-match realization Design Notes §9 calls out as the
// language-neutral equivalent of the
// original computed-goto dispatch. See cmd/jsonpggen and package dfa
// for the data-driven table this runtime is the hand-maintained
// equivalent of.
type pstate uint8

const (
	psValue pstate = iota
	psAfterValue
	psKey
	psAfterKey
	psString
	psEscape
	psEscapeU
	psNumber
	psLiteral
	psDone
)

// numStage tracks progress through the number grammar
// (int -> frac -> exp). Each "Lead" stage requires at least one more
// digit before it is acceptable to terminate the number.
type numStage uint8

const (
	numIntLead numStage = iota
	numAfterZero
	numIntRest
	numFracLead
	numFracRest
	numExpLead
	numExpLeadAfterSign
	numExpRest
)

// Parser holds the internal state of a streaming JSON parse. A
// Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	maxNesting uint16
	flags      Flag

	input       []byte
	inputIsOurs bool
	current     int
	last        int
	processed   int64
	source      source
	seenEOF     bool
	bomChecked  bool

	stack    nestStack
	tokens   tokenStack
	writeBuf strBuf

	state       pstate
	numStage    numStage
	isReal      bool
	allowClose  bool
	pendingUTF8 int

	result    Result
	lastEvent EventKind
	err       *Error

	dom *domCursor
}

// New creates a Parser ready to have an input source attached via
// SetBytes/SetString/SetReader/SetFD/SetDOM.
func New(opts ParserOptions) *Parser {
	nesting := floorNesting(opts.MaxNesting)
	p := &Parser{
		maxNesting: nesting,
		flags:      opts.Flags,
	}
	p.reset()
	return p
}

func (p *Parser) reset() {
	p.stack = newNestStack(p.maxNesting)
	p.tokens = tokenStack{}
	p.writeBuf.reset()
	p.seenEOF = false
	p.bomChecked = false
	p.result = Result{}
	p.lastEvent = EventNone
	p.err = nil
	p.dom = nil
	p.state = psValue
	p.allowClose = false
	p.pendingUTF8 = 0

	switch {
	case p.flags.has(FlagIsObject):
		p.stack.ptrMin = 1
		p.stack.push(frameObject)
		p.state = psKey
		p.allowClose = true
	case p.flags.has(FlagIsArray):
		p.stack.ptrMin = 1
		p.stack.push(frameArray)
		p.state = psValue
		p.allowClose = true
	}
}

// SetBytes configures the parser to read from an in-memory buffer
// borrowed from the caller for the lifetime of the parse.
func (p *Parser) SetBytes(b []byte) {
	p.reset()
	p.input = b
	p.inputIsOurs = false
	p.current, p.last = 0, len(b)
	p.bomChecked = true
	if bom := consumeLeadingBOM(p.input[:p.last]); bom > 0 {
		p.current = bom
	}
}

// SetString is equivalent to SetBytes([]byte(s)).
func (p *Parser) SetString(s string) {
	p.SetBytes([]byte(s))
}

const parserBufSize = 4096

// SetReader configures the parser to pull bytes from r via an
// owned, fixed-size buffer.
func (p *Parser) SetReader(r io.Reader) {
	p.reset()
	p.input = make([]byte, parserBufSize)
	p.inputIsOurs = true
	p.source = r
	p.current, p.last = 0, 0
}

// SetFD configures the parser to read directly from a file
// descriptor via golang.org/x/sys/unix, without an intervening
// os.File.
func (p *Parser) SetFD(fd int) {
	p.reset()
	p.input = make([]byte, parserBufSize)
	p.inputIsOurs = true
	p.source = fdSource{fd: fd}
	p.current, p.last = 0, 0
}

// SetDOM configures the parser to replay events recorded in dom
// instead of lexing bytes.
func (p *Parser) SetDOM(d *DOM) {
	p.reset()
	p.dom = d.newCursor()
}

// fail records a sticky parse error at the current absolute byte
// position and returns EventError.
func (p *Parser) fail(code ErrorCode) EventKind {
	p.err = &Error{Code: code, Pos: p.processed + int64(p.current)}
	p.result.Err = p.err
	p.lastEvent = EventError
	return EventError
}

// fill refills the input buffer per the buffer-boundary protocol
// (spec.md §4.4): retired bytes are added to processed, any pending
// token is rebased according to its kind, then new bytes are read
// into the remainder of the buffer.
func (p *Parser) fill() bool {
	if !p.inputIsOurs {
		p.seenEOF = true
		return false
	}
	p.processed += int64(p.current)
	preserved := p.rebaseOnRefill()
	n, err := p.source.Read(p.input[preserved:])
	p.current = preserved
	p.last = preserved + n

	if !p.bomChecked {
		p.bomChecked = true
		if p.processed == 0 && p.current == 0 {
			if bom := consumeLeadingBOM(p.input[:p.last]); bom > 0 {
				p.current = bom
			}
		}
	}

	if n == 0 {
		if err == nil || err == io.EOF {
			p.seenEOF = true
		} else {
			p.fail(ErrFileRead)
		}
		return false
	}
	return true
}

// rebaseOnRefill implements the three refill cases of spec.md §4.4:
// COPY_FORWARD tokens are copied to the buffer front, IS_STRING
// tokens are flushed into writeBuf, and other (literal) tokens simply
// have their start rebased with no bytes preserved in the buffer. It
// returns the number of bytes preserved at the front of the buffer.
func (p *Parser) rebaseOnRefill() int {
	if p.tokens.n == 0 {
		return 0
	}
	t := &p.tokens.toks[p.tokens.n-1]
	info := tokenTypeInfo[t.kind]

	switch {
	case t.kind == tokSurrogate:
		parent := &p.tokens.toks[p.tokens.n-2]
		from := parent.start
		n := copy(p.input, p.input[from:p.last])
		t.start -= from
		parent.start = 0
		return n
	case info&infoCopyForward != 0:
		from := t.start
		n := copy(p.input, p.input[from:p.last])
		t.start = 0
		return n
	case info&infoIsString != 0:
		p.writeBuf.append(p.input[t.start:p.last])
		t.start = 0
		return 0
	default:
		delta := p.current - t.start
		t.start = -delta
		return 0
	}
}

// ensure guarantees p.current < p.last, refilling as needed. It
// returns false at true EOF (no input source, or source exhausted).
func (p *Parser) ensure() bool {
	for p.current >= p.last {
		if p.seenEOF {
			return false
		}
		if !p.fill() {
			return false
		}
	}
	return true
}

// Next advances the parser by one event. After EOF or ERROR,
// subsequent calls return the same terminal event (sticky errors,
// spec.md §5/§7/§8).
func (p *Parser) Next() EventKind {
	if p.dom != nil {
		return p.nextFromDOM()
	}
	if p.err != nil {
		return EventError
	}
	if p.lastEvent == EventEOF {
		return EventEOF
	}

	for {
		switch p.state {
		case psValue:
			ev, more := p.stepValue()
			if more {
				continue
			}
			return ev
		case psAfterValue:
			ev, more := p.stepAfterValue()
			if more {
				continue
			}
			return ev
		case psKey:
			ev, more := p.stepKey()
			if more {
				continue
			}
			return ev
		case psAfterKey:
			ev, more := p.stepAfterKey()
			if more {
				continue
			}
			return ev
		case psString:
			ev, more := p.stepString()
			if more {
				continue
			}
			return ev
		case psEscape:
			ev, more := p.stepEscape()
			if more {
				continue
			}
			return ev
		case psEscapeU:
			ev, more := p.stepEscapeU()
			if more {
				continue
			}
			return ev
		case psNumber:
			ev, more := p.stepNumber()
			if more {
				continue
			}
			return ev
		case psLiteral:
			ev, more := p.stepLiteral()
			if more {
				continue
			}
			return ev
		case psDone:
			p.lastEvent = EventEOF
			return EventEOF
		}
	}
}

// Result returns the payload associated with the most recently
// produced event. String results alias either the input buffer or
// writeBuf and are valid only until the next call to Next.
func (p *Parser) Result() Result { return p.result }

// Err returns the sticky error recorded by the parser, if any.
func (p *Parser) Err() *Error { return p.err }
