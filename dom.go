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

// domChunkRecords sizes each DOM chunk to 16KiB of records (512
// records of 32 bytes on 64-bit platforms), so that growth links a new
// chunk instead of reallocating and invalidating any cursor already
// positioned inside an earlier one.
const domChunkRecords = 512

// domRecord is one compact, typed entry in a DOM chunk. Integer and
// Real values are stored inline; String and Key payloads are stored
// as an offset/length pair into the DOM's shared byte arena, so a
// chunk never holds a raw slice that the arena's own growth could
// invalidate.
type domRecord struct {
	kind   EventKind
	ival   int64
	fval   float64
	strOff int32
	strLen int32
}

type domChunk struct {
	records []domRecord
	next    *domChunk
}

// DOM is jsonpg's compact, replayable in-memory document: a
// forward-linked list of append-only chunks of typed event records,
// plus one shared byte arena backing every String/Key payload.
// Building never reallocates an existing chunk, and replaying a DOM
// (via Parser) never copies its payload bytes.
type DOM struct {
	maxNesting uint16
	head, tail *domChunk
	count      int
	data       strBuf
}

// NewDOM creates an empty DOM. maxNesting is floored the same way as
// ParserOptions.MaxNesting and is reused by Parser when the DOM is
// later replayed via DOM.Parser.
func NewDOM(maxNesting uint16) *DOM {
	return &DOM{maxNesting: floorNesting(maxNesting)}
}

// Len reports the number of events recorded in the DOM.
func (d *DOM) Len() int { return d.count }

func (d *DOM) reset() {
	d.head, d.tail = nil, nil
	d.count = 0
	d.data.reset()
}

func (d *DOM) newChunk() *domChunk {
	c := &domChunk{records: make([]domRecord, 0, domChunkRecords)}
	if d.tail == nil {
		d.head = c
	} else {
		d.tail.next = c
	}
	d.tail = c
	return c
}

func (d *DOM) append(rec domRecord) {
	if d.tail == nil || len(d.tail.records) == cap(d.tail.records) {
		d.newChunk()
	}
	d.tail.records = append(d.tail.records, rec)
	d.count++
}

// AppendEvent records a simple, payload-less event: NULL, TRUE,
// FALSE, BEGIN_ARRAY, END_ARRAY, BEGIN_OBJECT, or END_OBJECT.
func (d *DOM) AppendEvent(kind EventKind) { d.append(domRecord{kind: kind}) }

// AppendInteger records an INTEGER event.
func (d *DOM) AppendInteger(v int64) { d.append(domRecord{kind: EventInteger, ival: v}) }

// AppendReal records a REAL event.
func (d *DOM) AppendReal(v float64) { d.append(domRecord{kind: EventReal, fval: v}) }

// AppendString records a STRING or KEY event, copying b into the
// DOM's shared byte arena.
func (d *DOM) AppendString(kind EventKind, b []byte) {
	off := d.data.len()
	d.data.append(b)
	d.append(domRecord{kind: kind, strOff: int32(off), strLen: int32(len(b))})
}

// domCursor replays a DOM's records as Parser events, one chunk
// boundary at a time.
type domCursor struct {
	dom   *DOM
	chunk *domChunk
	idx   int
}

func (d *DOM) newCursor() *domCursor {
	return &domCursor{dom: d, chunk: d.head}
}

func (c *domCursor) next() (domRecord, bool) {
	for c.chunk != nil && c.idx >= len(c.chunk.records) {
		c.chunk = c.chunk.next
		c.idx = 0
	}
	if c.chunk == nil {
		return domRecord{}, false
	}
	rec := c.chunk.records[c.idx]
	c.idx++
	return rec, true
}

// nextFromDOM is Parser.Next's implementation when the parser was
// configured with SetDOM: it replays recorded events instead of
// lexing bytes, so a DOM built once can be consumed repeatedly
// through the same Parser/Generator-facing API.
func (p *Parser) nextFromDOM() EventKind {
	if p.err != nil {
		return EventError
	}
	if p.lastEvent == EventEOF {
		return EventEOF
	}
	rec, ok := p.dom.next()
	if !ok {
		p.lastEvent = EventEOF
		p.result = Result{}
		return EventEOF
	}
	switch rec.kind {
	case EventInteger:
		p.result = Result{Integer: rec.ival}
	case EventReal:
		p.result = Result{Real: rec.fval}
	case EventString, EventKey:
		b := p.dom.dom.data.bytes()
		p.result = Result{String: b[rec.strOff : rec.strOff+rec.strLen]}
	default:
		p.result = Result{}
	}
	p.lastEvent = rec.kind
	return rec.kind
}

// Parser returns a new Parser that replays d's recorded events
// instead of lexing an input source.
func (d *DOM) Parser() *Parser {
	p := New(ParserOptions{MaxNesting: d.maxNesting})
	p.SetDOM(d)
	return p
}
