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

// tokenKind identifies the lexical span a Token represents.
type tokenKind uint8

const (
	tokNull tokenKind = iota
	tokTrue
	tokFalse
	tokString
	tokKey
	tokSQString
	tokSQKey
	tokNQString
	tokNQKey
	tokInteger
	tokReal
	tokEscape
	tokEscapeChars
	tokEscapeU
	tokSurrogate
)

// tokenInfo classifies a tokenKind for the buffer-refill protocol
// (§4.4) and for pop(): whether it is a quoted span (starts after the
// opening delimiter), a plain string span, an escape span (copies
// preceding bytes from the enclosing string into writeBuf at push
// time), or a span whose own start must be copied forward verbatim
// across a refill. An escape marker stays on the token stack for the
// whole \uXXXX[\uXXXX] decode, so it also carries infoCopyForward:
// without it, a refill landing mid-escape rebases its start into a
// refill-relative delta instead of an absolute offset, corrupting the
// parent lookup that the tokSurrogate refill case depends on.
type tokenInfo uint8

const (
	infoDefault     tokenInfo = 0
	infoIsString    tokenInfo = 0x01
	infoHasQuote    tokenInfo = 0x03 // implies infoIsString
	infoIsEscape    tokenInfo = 0x04
	infoIsSurrogate tokenInfo = 0x08
	infoCopyForward tokenInfo = 0x10
)

var tokenTypeInfo = [...]tokenInfo{
	tokNull:        infoDefault,
	tokTrue:        infoDefault,
	tokFalse:       infoDefault,
	tokString:      infoHasQuote,
	tokKey:         infoHasQuote,
	tokSQString:    infoHasQuote,
	tokSQKey:       infoHasQuote,
	tokNQString:    infoIsString,
	tokNQKey:       infoIsString,
	tokInteger:     infoCopyForward,
	tokReal:        infoCopyForward,
	tokEscape:      infoIsEscape | infoCopyForward,
	tokEscapeChars: infoIsEscape | infoCopyForward,
	tokEscapeU:     infoCopyForward,
	tokSurrogate:   infoIsSurrogate | infoCopyForward,
}

// token is an in-progress lexical span. start is an index into the
// parser's input buffer marking where the payload begins.
type token struct {
	kind  tokenKind
	start int
}

// tokenMax is the hard limit on simultaneously in-progress tokens:
// one outer string/key, one escape subtoken, one surrogate-u
// subtoken.
const tokenMax = 3

// tokenStack holds at most tokenMax in-progress tokens.
type tokenStack struct {
	toks [tokenMax]token
	n    int
}

// push records a new token starting at the parser's current byte
// offset. Quoted kinds advance the start past the opening quote;
// escape kinds copy bytes since the enclosing string's start into
// writeBuf and advance start past the backslash.
func (p *Parser) pushToken(kind tokenKind, offset int) bool {
	ts := &p.tokens
	if ts.n >= tokenMax {
		return false
	}
	t := &ts.toks[ts.n]
	t.kind = kind
	t.start = offset
	info := tokenTypeInfo[kind]
	if info&infoHasQuote == infoHasQuote {
		t.start++
	} else if info&infoIsEscape != 0 {
		enc := &ts.toks[ts.n-1]
		p.writeBuf.append(p.input[enc.start:offset])
		t.start++
	}
	ts.n++
	return true
}

// popToken removes and returns the top token.
func (p *Parser) popToken() token {
	ts := &p.tokens
	ts.n--
	return ts.toks[ts.n]
}

func (ts *tokenStack) top() *token {
	if ts.n == 0 {
		return nil
	}
	return &ts.toks[ts.n-1]
}
