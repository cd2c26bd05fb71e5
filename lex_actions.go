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
	"io"
	"strconv"
)

// literalWord and literalEvent are indexed by the tokNull/tokTrue/
// tokFalse token kinds, which occupy the first three tokenKind
// values.
var literalWord = [...]string{tokNull: "null", tokTrue: "true", tokFalse: "false"}
var literalEvent = [...]EventKind{tokNull: EventNull, tokTrue: EventTrue, tokFalse: EventFalse}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '$'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func parseHex4(b []byte) int {
	v := 0
	for _, c := range b {
		v = v<<4 | hexVal(c)
	}
	return v
}

// stepValue dispatches on the byte that begins a JSON value: an
// object, array, string, literal, or number, plus whichever syntax
// extensions are enabled.
func (p *Parser) stepValue() (EventKind, bool) {
	c, ok := p.skipSpace()
	if !ok {
		if p.err != nil {
			return EventError, false
		}
		return p.fail(ErrExpectedValue), false
	}

	switch {
	case c == '{':
		p.current++
		return p.beginContainer(frameObject, EventBeginObject)
	case c == '[':
		p.current++
		return p.beginContainer(frameArray, EventBeginArray)
	case c == ']':
		if p.allowClose && p.stack.depth() > 0 && p.stack.peek() == int(frameArray) {
			p.current++
			p.stack.pop()
			p.result = Result{}
			p.state = psAfterValue
			return EventEndArray, false
		}
		return p.fail(ErrParse), false
	case c == '"':
		p.current++
		p.pushToken(tokString, p.current-1)
		p.state = psString
		return EventNone, true
	case c == '\'' && p.flags.has(FlagSingleQuotes):
		p.current++
		p.pushToken(tokSQString, p.current-1)
		p.state = psString
		return EventNone, true
	case c == 't':
		p.pushToken(tokTrue, p.current)
		p.state = psLiteral
		return EventNone, true
	case c == 'f':
		p.pushToken(tokFalse, p.current)
		p.state = psLiteral
		return EventNone, true
	case c == 'n':
		p.pushToken(tokNull, p.current)
		p.state = psLiteral
		return EventNone, true
	case c == '-' || (c >= '0' && c <= '9'):
		return p.beginNumber()
	case p.flags.has(FlagUnquotedStrings) && isIdentStart(c):
		p.pushToken(tokNQString, p.current)
		p.state = psString
		return EventNone, true
	default:
		return p.fail(ErrParse), false
	}
}

// stepKey dispatches on the byte that begins an object key, or closes
// the enclosing object.
func (p *Parser) stepKey() (EventKind, bool) {
	c, ok := p.skipSpace()
	if !ok {
		if p.err != nil {
			return EventError, false
		}
		return p.fail(ErrExpectedKey), false
	}

	switch {
	case c == '}':
		if p.allowClose {
			p.current++
			p.stack.pop()
			p.result = Result{}
			p.state = psAfterValue
			return EventEndObject, false
		}
		return p.fail(ErrParse), false
	case c == '"':
		p.current++
		p.pushToken(tokKey, p.current-1)
		p.state = psString
		return EventNone, true
	case c == '\'' && p.flags.has(FlagSingleQuotes):
		p.current++
		p.pushToken(tokSQKey, p.current-1)
		p.state = psString
		return EventNone, true
	case p.flags.has(FlagUnquotedKeys) && isIdentStart(c):
		p.pushToken(tokNQKey, p.current)
		p.state = psString
		return EventNone, true
	default:
		return p.fail(ErrExpectedKey), false
	}
}

// stepAfterKey expects the ':' separating a key from its value.
func (p *Parser) stepAfterKey() (EventKind, bool) {
	c, ok := p.skipSpace()
	if !ok {
		if p.err != nil {
			return EventError, false
		}
		return p.fail(ErrParse), false
	}
	if c != ':' {
		return p.fail(ErrParse), false
	}
	p.current++
	p.allowClose = false
	p.state = psValue
	return EventNone, true
}

// stepAfterValue expects a separator or closer following a completed
// value, or end of input at the top level.
func (p *Parser) stepAfterValue() (EventKind, bool) {
	c, ok := p.skipSpace()
	if !ok {
		if p.err != nil {
			return EventError, false
		}
		if p.stack.depth() == 0 {
			p.state = psDone
			p.lastEvent = EventEOF
			return EventEOF, false
		}
		return p.fail(ErrParse), false
	}
	if p.stack.peek() == -1 {
		return p.fail(ErrParse), false
	}

	top := p.stack.peek()
	switch c {
	case ',':
		p.current++
		p.allowClose = p.flags.has(FlagTrailingCommas)
		if top == int(frameArray) {
			p.state = psValue
		} else {
			p.state = psKey
		}
		return EventNone, true
	case ']':
		if top != int(frameArray) {
			return p.fail(ErrNoArray), false
		}
		p.current++
		p.stack.pop()
		p.result = Result{}
		p.state = psAfterValue
		return EventEndArray, false
	case '}':
		if top != int(frameObject) {
			return p.fail(ErrNoObject), false
		}
		p.current++
		p.stack.pop()
		p.result = Result{}
		p.state = psAfterValue
		return EventEndObject, false
	default:
		return p.fail(ErrParse), false
	}
}

// beginContainer pushes a new frame and positions the parser to read
// its first member or an immediate close.
func (p *Parser) beginContainer(kind frameKind, ev EventKind) (EventKind, bool) {
	if !p.stack.push(kind) {
		return p.fail(ErrStackOverflow), false
	}
	p.allowClose = true
	p.result = Result{}
	if kind == frameObject {
		p.state = psKey
	} else {
		p.state = psValue
	}
	return ev, false
}

// skipSpace consumes whitespace and, if FlagComments is set,
// comments, refilling as needed. It returns the next significant
// byte without consuming it, or ok=false at end of input.
func (p *Parser) skipSpace() (byte, bool) {
	for {
		if p.current >= p.last {
			if !p.ensure() {
				return 0, false
			}
			continue
		}
		c := p.input[p.current]
		switch c {
		case ' ', '\t', '\n', '\r':
			p.current++
		case '/':
			if !p.flags.has(FlagComments) {
				return c, true
			}
			if !p.skipComment() {
				if p.err != nil {
					return 0, false
				}
				return 0, false
			}
		default:
			return c, true
		}
	}
}

// skipComment consumes a "//" line comment or a "/*"-delimited block
// comment starting at the current '/'. It returns false if the input
// is not actually a comment, setting a sticky ErrParse in that case.
func (p *Parser) skipComment() bool {
	p.current++ // consume leading '/'
	if !p.ensure() {
		p.fail(ErrParse)
		return false
	}
	switch p.input[p.current] {
	case '/':
		p.current++
		for {
			if p.current >= p.last {
				if !p.ensure() {
					return true // comment runs to true EOF
				}
				continue
			}
			if p.input[p.current] == '\n' {
				return true
			}
			p.current++
		}
	case '*':
		p.current++
		for {
			if p.current >= p.last {
				if !p.ensure() {
					p.fail(ErrParse)
					return false
				}
				continue
			}
			if p.input[p.current] == '*' {
				p.current++
				if !p.ensure() {
					p.fail(ErrParse)
					return false
				}
				if p.input[p.current] == '/' {
					p.current++
					return true
				}
				continue
			}
			p.current++
		}
	default:
		p.fail(ErrParse)
		return false
	}
}

// stepLiteral matches the remainder of a true/false/null literal
// against the expected word, one byte at a time so a refill mid-word
// is handled by rebaseOnRefill's default (sentinel) case.
func (p *Parser) stepLiteral() (EventKind, bool) {
	t := p.tokens.top()
	word := literalWord[t.kind]
	for {
		matched := p.current - t.start
		if matched == len(word) {
			p.popToken()
			ev := literalEvent[t.kind]
			p.result = Result{}
			p.state = psAfterValue
			return ev, false
		}
		if p.current >= p.last {
			if !p.ensure() {
				if p.err != nil {
					return EventError, false
				}
				return p.fail(ErrParse), false
			}
			continue
		}
		if p.input[p.current] != word[matched] {
			return p.fail(ErrParse), false
		}
		p.current++
	}
}

// beginNumber pushes a number token and starts the integer-part
// sub-state machine.
func (p *Parser) beginNumber() (EventKind, bool) {
	p.pushToken(tokInteger, p.current)
	p.isReal = false
	if p.input[p.current] == '-' {
		p.current++
	}
	p.numStage = numIntLead
	p.state = psNumber
	return EventNone, true
}

func (p *Parser) numTerminal() bool {
	switch p.numStage {
	case numAfterZero, numIntRest, numFracRest, numExpRest:
		return true
	default:
		return false
	}
}

// stepNumber runs the int/frac/exp sub-state machine for the number
// grammar (no leading zeros, optional fraction, optional exponent).
// The token is COPY_FORWARD classified, so its bytes survive a
// mid-number refill intact.
func (p *Parser) stepNumber() (EventKind, bool) {
	t := p.tokens.top()
	for {
		if p.current >= p.last {
			if !p.ensure() {
				if p.err != nil {
					return EventError, false
				}
				if p.numTerminal() {
					return p.finishNumber(t)
				}
				return p.fail(ErrNumber), false
			}
			continue
		}
		c := p.input[p.current]
		switch p.numStage {
		case numIntLead:
			switch {
			case c == '0':
				p.current++
				p.numStage = numAfterZero
			case c >= '1' && c <= '9':
				p.current++
				p.numStage = numIntRest
			default:
				return p.fail(ErrNumber), false
			}
		case numAfterZero:
			switch {
			case c >= '0' && c <= '9':
				return p.fail(ErrNumber), false
			case c == '.':
				p.current++
				p.isReal = true
				p.numStage = numFracLead
			case c == 'e' || c == 'E':
				p.current++
				p.isReal = true
				p.numStage = numExpLead
			default:
				return p.finishNumber(t)
			}
		case numIntRest:
			switch {
			case c >= '0' && c <= '9':
				p.current++
			case c == '.':
				p.current++
				p.isReal = true
				p.numStage = numFracLead
			case c == 'e' || c == 'E':
				p.current++
				p.isReal = true
				p.numStage = numExpLead
			default:
				return p.finishNumber(t)
			}
		case numFracLead:
			if c >= '0' && c <= '9' {
				p.current++
				p.numStage = numFracRest
			} else {
				return p.fail(ErrNumber), false
			}
		case numFracRest:
			switch {
			case c >= '0' && c <= '9':
				p.current++
			case c == 'e' || c == 'E':
				p.current++
				p.numStage = numExpLead
			default:
				return p.finishNumber(t)
			}
		case numExpLead:
			switch {
			case c == '+' || c == '-':
				p.current++
				p.numStage = numExpLeadAfterSign
			case c >= '0' && c <= '9':
				p.current++
				p.numStage = numExpRest
			default:
				return p.fail(ErrNumber), false
			}
		case numExpLeadAfterSign:
			if c >= '0' && c <= '9' {
				p.current++
				p.numStage = numExpRest
			} else {
				return p.fail(ErrNumber), false
			}
		case numExpRest:
			if c >= '0' && c <= '9' {
				p.current++
			} else {
				return p.finishNumber(t)
			}
		}
	}
}

// finishNumber parses the accumulated digits, falling back to a real
// when an integer literal overflows int64 (spec.md's integer/real
// boundary rule).
func (p *Parser) finishNumber(t *token) (EventKind, bool) {
	raw := p.input[t.start:p.current]
	p.popToken()
	p.result = Result{}
	p.state = psAfterValue

	if p.isReal {
		v, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return p.fail(ErrNumber), false
		}
		p.result.Real = v
		return EventReal, false
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(raw), 64)
		if ferr != nil {
			return p.fail(ErrNumber), false
		}
		p.result.Real = f
		return EventReal, false
	}
	p.result.Integer = v
	return EventInteger, false
}

// stepString consumes the body of a quoted or unquoted string/key,
// dispatching into escape handling and validating raw UTF-8 as it
// goes.
func (p *Parser) stepString() (EventKind, bool) {
	t := p.tokens.top()
	var quote byte
	unquoted := false
	switch t.kind {
	case tokString, tokKey:
		quote = '"'
	case tokSQString, tokSQKey:
		quote = '\''
	default:
		unquoted = true
	}

	for {
		if p.current >= p.last {
			if !p.ensure() {
				if p.err != nil {
					return EventError, false
				}
				if unquoted {
					return p.finishString(0)
				}
				return p.fail(ErrParse), false
			}
			continue
		}
		c := p.input[p.current]
		if unquoted {
			if !isIdentPart(c) {
				return p.finishString(0)
			}
			p.current++
			continue
		}
		switch {
		case c == quote:
			return p.finishString(1)
		case c == '\\':
			if p.flags.has(FlagEscapeCharacters) {
				return p.beginEscapeChars()
			}
			return p.beginEscape()
		case c < 0x20:
			return p.fail(ErrParse), false
		case c < 0x80:
			p.current++
		default:
			avail := p.last - p.current
			n := validUTF8Sequence(p.input[p.current:p.last])
			if n == 0 {
				if avail < 4 && !p.seenEOF && p.inputIsOurs {
					// The buffer ends mid-rune: keep its bytes at the front.
					p.writeBuf.append(p.input[t.start:p.current])
					p.processed += int64(p.current)
					copy(p.input, p.input[p.current:p.last])
					t.start, p.current = 0, 0
					r, err := p.source.Read(p.input[avail:])
					p.last = avail + r
					if r > 0 {
						continue
					}
					if err != nil && err != io.EOF {
						return p.fail(ErrFileRead), false
					}
					p.seenEOF = true
				}
				return p.fail(ErrUTF8), false
			}
			p.current += n
		}
	}
}

// finishString pops the string/key token and produces its event. A
// string with no escapes aliases the input buffer directly; one with
// escapes is assembled out of writeBuf. closeLen skips a quoted
// token's trailing delimiter (0 for unquoted strings, which are
// terminated by a byte belonging to the next token).
func (p *Parser) finishString(closeLen int) (EventKind, bool) {
	t := p.popToken()
	end := p.current

	var s []byte
	if p.writeBuf.len() == 0 {
		s = p.input[t.start:end]
	} else {
		p.writeBuf.append(p.input[t.start:end])
		s = p.writeBuf.take()
	}
	p.current += closeLen

	isKey := t.kind == tokKey || t.kind == tokSQKey || t.kind == tokNQKey
	p.result = Result{String: s}
	if isKey {
		p.state = psAfterKey
		return EventKey, false
	}
	p.state = psAfterValue
	return EventString, false
}

// beginEscape starts a standard JSON escape sequence.
func (p *Parser) beginEscape() (EventKind, bool) {
	p.pushToken(tokEscape, p.current)
	p.current++
	p.state = psEscape
	return EventNone, true
}

// beginEscapeChars starts an escape sequence under the lenient
// escape-characters extension, where an unrecognized escaped byte is
// taken literally instead of being a parse error.
func (p *Parser) beginEscapeChars() (EventKind, bool) {
	p.pushToken(tokEscapeChars, p.current)
	p.current++
	p.state = psEscape
	return EventNone, true
}

// stepEscape decodes the character immediately after a backslash.
func (p *Parser) stepEscape() (EventKind, bool) {
	if p.current >= p.last {
		if !p.ensure() {
			if p.err != nil {
				return EventError, false
			}
			return p.fail(ErrParse), false
		}
	}
	t := p.tokens.top()
	lenient := t.kind == tokEscapeChars
	c := p.input[p.current]

	switch c {
	case '"', '\\', '/', '\'':
		p.current++
		p.writeBuf.appendByte(c)
		return p.afterEscapeResolved()
	case 'b':
		p.current++
		p.writeBuf.appendByte('\b')
		return p.afterEscapeResolved()
	case 'f':
		p.current++
		p.writeBuf.appendByte('\f')
		return p.afterEscapeResolved()
	case 'n':
		p.current++
		p.writeBuf.appendByte('\n')
		return p.afterEscapeResolved()
	case 'r':
		p.current++
		p.writeBuf.appendByte('\r')
		return p.afterEscapeResolved()
	case 't':
		p.current++
		p.writeBuf.appendByte('\t')
		return p.afterEscapeResolved()
	case 'u':
		p.current++
		return p.beginEscapeU()
	default:
		if lenient {
			p.current++
			p.writeBuf.appendByte(c)
			return p.afterEscapeResolved()
		}
		return p.fail(ErrParse), false
	}
}

func (p *Parser) beginEscapeU() (EventKind, bool) {
	p.pushToken(tokEscapeU, p.current)
	p.state = psEscapeU
	return EventNone, true
}

// ensureN guarantees n unread bytes are available, refilling as
// needed. It is used for the bounded, fixed-width \uXXXX escapes
// rather than the generic single-byte ensure.
func (p *Parser) ensureN(n int) bool {
	for p.last-p.current < n {
		if !p.fill() {
			return false
		}
	}
	return true
}

// stepEscapeU reads the four hex digits of a \uXXXX escape, then
// either combines it with a following low surrogate or encodes it
// directly.
func (p *Parser) stepEscapeU() (EventKind, bool) {
	t := p.tokens.top()
	for p.current-t.start < 4 {
		if p.current >= p.last {
			if !p.ensure() {
				if p.err != nil {
					return EventError, false
				}
				return p.fail(ErrParse), false
			}
			continue
		}
		if !isHexDigit(p.input[p.current]) {
			return p.fail(ErrParse), false
		}
		p.current++
	}
	val := parseHex4(p.input[t.start : t.start+4])
	p.popToken()
	return p.finishEscapeU(val)
}

// finishEscapeU resolves a decoded \uXXXX value, combining it with a
// following \uXXXX low surrogate when val is a high surrogate.
func (p *Parser) finishEscapeU(val int) (EventKind, bool) {
	if isFirstSurrogate(val) {
		if !p.ensureN(2) || p.input[p.current] != '\\' || p.input[p.current+1] != 'u' {
			return p.fail(ErrUTF8), false
		}
		p.current += 2
		p.pushToken(tokSurrogate, p.current)
		if !p.ensureN(4) {
			return p.fail(ErrParse), false
		}
		for i := 0; i < 4; i++ {
			if !isHexDigit(p.input[p.current+i]) {
				return p.fail(ErrParse), false
			}
		}
		lo := parseHex4(p.input[p.current : p.current+4])
		p.current += 4
		p.popToken()
		if !isSecondSurrogate(lo) {
			return p.fail(ErrUTF8), false
		}
		encodeUTF8(&p.writeBuf, combineSurrogates(val, lo))
		return p.afterEscapeResolved()
	}
	if isSecondSurrogate(val) {
		return p.fail(ErrUTF8), false
	}
	encodeUTF8(&p.writeBuf, val)
	return p.afterEscapeResolved()
}

// afterEscapeResolved pops the escape marker token and re-anchors the
// enclosing string token's start to the current position, the
// swap-equivalent step of spec.md's token protocol.
func (p *Parser) afterEscapeResolved() (EventKind, bool) {
	p.popToken()
	if t := p.tokens.top(); t != nil {
		t.start = p.current
	}
	p.state = psString
	return EventNone, true
}
