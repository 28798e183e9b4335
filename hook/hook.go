// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package hook defines the contract a type implements to take over its own
// wire representation inside a graph stream.
package hook

import (
	"reflect"

	"github.com/jppf-grid/JPPF-sub017/wire"
)

// Codec writes and reads the body of one object record.
//
// Encode receives the value being serialized. Decode receives an addressable
// zero value of the same type which it must fill in place; for map types the
// value already holds an empty map. Codecs do not write the record header.
type Codec interface {
	Encode(w Writer, v reflect.Value) error
	Decode(r Reader, v reflect.Value) error
}

// Writer is handed to Codec.Encode
type Writer interface {
	wire.Sink
	// WriteValue writes v the way a field of v's static type is written:
	// inline for primitives and plain structs, as a handle for everything
	// with identity. Referenced objects join the current stream.
	WriteValue(v reflect.Value) error
}

// Reader is handed to Codec.Decode
type Reader interface {
	wire.Source
	// ReadValue reads what WriteValue wrote into site, which must be
	// addressable. A reference to an object that is not decoded yet is
	// recorded and patched later; done, when not nil, runs once site holds
	// its final value, which may be after ReadValue returns.
	ReadValue(site reflect.Value, done func()) error
}

// Funcs adapts a pair of functions to a Codec
type Funcs struct {
	EncodeFunc func(w Writer, v reflect.Value) error
	DecodeFunc func(r Reader, v reflect.Value) error
}

var _ Codec = Funcs{}

func (f Funcs) Encode(w Writer, v reflect.Value) error { return f.EncodeFunc(w, v) }

func (f Funcs) Decode(r Reader, v reflect.Value) error { return f.DecodeFunc(r, v) }
