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

	"golang.org/x/sys/unix"
)

// source is the minimal pull interface the Parser's refill protocol
// needs: fill as many bytes as fit in buf, reporting io.EOF once
// exhausted. It is satisfied by io.Reader directly, and by the
// raw-fd adapter below for the jsonpg_parse_opt "fd" input.
type source interface {
	Read(buf []byte) (int, error)
}

// fdSource adapts a raw file descriptor to source using
// golang.org/x/sys/unix, mirroring the direct read(2)/write(2) calls
// of jsonpg's C implementation instead of going through os.File.
type fdSource struct {
	fd int
}

func (f fdSource) Read(buf []byte) (int, error) {
	for {
		n, err := unix.Read(f.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return n, &Error{Code: ErrFileRead}
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

// fdSink adapts a raw file descriptor to io.Writer for the printer's
// fd target, looping until every byte is written (spec.md §4.7).
type fdSink struct {
	fd int
}

func (f fdSink) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := unix.Write(f.fd, p[total:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return total, &Error{Code: ErrFileWrite}
		}
		total += n
	}
	return total, nil
}
