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

// Flag enables a flag-gated JSON syntax extension. Flags are
// evaluated once per Parser instance, at construction.
type Flag uint16

const (
	FlagComments          Flag = 0x01 // // line and /* block */ comments
	FlagTrailingCommas    Flag = 0x02 // comma allowed before a closing ] or }
	FlagSingleQuotes      Flag = 0x04 // '...' strings and keys
	FlagUnquotedKeys      Flag = 0x08 // identifier-like keys without quotes
	FlagUnquotedStrings   Flag = 0x10 // identifier-like values without quotes
	FlagEscapeCharacters  Flag = 0x20 // accept any \x in strings, emit x verbatim
	FlagOptionalCommas    Flag = 0x40 // whitespace-separated items, comma optional
	FlagIsObject          Flag = 0x80 // pre-seed an implicit outer object
	FlagIsArray           Flag = 0x100 // pre-seed an implicit outer array
)

func (f Flag) has(bit Flag) bool { return f&bit != 0 }
