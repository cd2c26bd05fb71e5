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

// strBuf is an append-only growable byte buffer used to assemble
// unescaped string payloads and printer output. It is the Go
// equivalent of jsonpg's str_buf_s: callers may borrow the
// underlying slice via bytes(), but the buffer may reallocate on the
// next append, so borrowed slices are only valid until then.
type strBuf struct {
	b []byte
}

const strBufInitialSize = 4096

func (s *strBuf) reset() {
	s.b = s.b[:0]
}

func (s *strBuf) append(p []byte) {
	if s.b == nil {
		s.b = make([]byte, 0, strBufInitialSize)
	}
	s.b = append(s.b, p...)
}

func (s *strBuf) appendByte(c byte) {
	if s.b == nil {
		s.b = make([]byte, 0, strBufInitialSize)
	}
	s.b = append(s.b, c)
}

func (s *strBuf) appendString(str string) {
	if s.b == nil {
		s.b = make([]byte, 0, strBufInitialSize)
	}
	s.b = append(s.b, str...)
}

// Write implements io.Writer so a strBuf can be used directly as a
// fmt.Fprintf destination.
func (s *strBuf) Write(p []byte) (int, error) {
	s.append(p)
	return len(p), nil
}

func (s *strBuf) len() int { return len(s.b) }

func (s *strBuf) bytes() []byte { return s.b }

// take returns the accumulated bytes and resets the buffer. The
// returned slice aliases buffer storage and is only valid until the
// next append.
func (s *strBuf) take() []byte {
	b := s.b
	s.b = nil
	return b
}
