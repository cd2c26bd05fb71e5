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

import "strings"

// frameKind is the kind of container frame held on a nestStack.
type frameKind uint8

const (
	frameObject frameKind = 0
	frameArray  frameKind = 1
)

// nestStack is a bit-packed stack of OBJECT/ARRAY frames shared by
// Parser and Generator for tracking container nesting. Each frame
// occupies a single bit: 0 for OBJECT, 1 for ARRAY.
type nestStack struct {
	bits   []byte
	ptr    uint16
	ptrMin uint16 // 0, or 1 when pre-seeded with an implicit outer container
	size   uint16
}

func newNestStack(size uint16) nestStack {
	if size == 0 {
		return nestStack{}
	}
	return nestStack{bits: make([]byte, (size+7)/8), size: size}
}

func (s *nestStack) depth() int { return int(s.ptr - s.ptrMin) }

// push records a new frame of the given kind. It fails with
// ErrStackOverflow once depth reaches size.
func (s *nestStack) push(k frameKind) bool {
	if s.ptr >= s.size {
		return false
	}
	offset := s.ptr >> 3
	mask := byte(1) << (s.ptr & 0x07)
	if k == frameArray {
		s.bits[offset] |= mask
	} else {
		s.bits[offset] &^= mask
	}
	s.ptr++
	return true
}

// setTop overwrites the kind of the current top frame in place,
// without changing depth. Used by the generator to flip a frame
// between "awaiting key" and "awaiting value" as it validates an
// object's alternation.
func (s *nestStack) setTop(k frameKind) {
	if s.ptr == 0 {
		return
	}
	sp := s.ptr - 1
	offset := sp >> 3
	mask := byte(1) << (sp & 0x07)
	if k == frameArray {
		s.bits[offset] |= mask
	} else {
		s.bits[offset] &^= mask
	}
}

// pop discards the top frame. It fails with ErrStackUnderflow when
// depth is already at ptrMin.
func (s *nestStack) pop() bool {
	if s.ptr == s.ptrMin {
		return false
	}
	s.ptr--
	return true
}

// peek returns the kind of the top frame, or -1 if the stack is empty.
func (s *nestStack) peek() int {
	if s.ptr == 0 {
		return -1
	}
	sp := s.ptr - 1
	return int((s.bits[sp>>3] >> (sp & 0x07)) & 0x01)
}

func (s *nestStack) String() string {
	var b strings.Builder
	for i := uint16(0); i < s.ptr; i++ {
		if (s.bits[i>>3]>>(i&0x07))&0x01 == 1 {
			b.WriteByte('[')
		} else {
			b.WriteByte('{')
		}
	}
	return b.String()
}
