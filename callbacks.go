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

// Callbacks is a user-supplied back-end for a Generator. Every field
// is optional; a nil field is treated as a no-op that always allows
// the event through. Value-accepting callbacks return false to abort
// generation with ErrAbort, mirroring the parser's own abort path.
type Callbacks struct {
	Null        func(ctx interface{}) bool
	Bool        func(ctx interface{}, v bool) bool
	Integer     func(ctx interface{}, v int64) bool
	Real        func(ctx interface{}, v float64) bool
	String      func(ctx interface{}, v []byte) bool
	Key         func(ctx interface{}, v []byte) bool
	BeginArray  func(ctx interface{}) bool
	EndArray    func(ctx interface{}) bool
	BeginObject func(ctx interface{}) bool
	EndObject   func(ctx interface{}) bool

	// Error is invoked synchronously when the generator itself detects
	// an error (a validation failure, a callback abort, or a printer
	// error). An error taken over from a Parser by Consume, or a write
	// error returned by Finish, does not invoke it.
	Error func(ctx interface{}, err *Error)
}
