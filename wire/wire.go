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

// Package wire provides the big-endian byte sink and source the graph codec
// writes to and reads from. Both keep the first error they hit and turn every
// later call into a no-op, so callers check Error once at the end of a block.
package wire

import "errors"

// ErrInvalidLength is returned when a length prefix is negative or exceeds the configured limit.
var ErrInvalidLength = errors.New("invalid length")

// Sink is the write side of the codec.
type Sink interface {
	Bool(bool)
	Int8(int8)
	Uint8(uint8)
	Int16(int16)
	Uint16(uint16)
	Int32(int32)
	Uint32(uint32)
	Int64(int64)
	Uint64(uint64)
	Float32(float32)
	Float64(float64)
	// String writes an int32 byte length followed by the UTF-8 bytes.
	String(string)
	// Data writes raw bytes without a length prefix.
	Data([]byte)
	// Bytes writes an int32 byte length followed by p.
	Bytes(p []byte)
	// Error returns the first error encountered.
	Error() error
	// SetError records err unless an error is already recorded.
	SetError(err error)
}

// Source is the read side of the codec.
type Source interface {
	Bool() bool
	Int8() int8
	Uint8() uint8
	Int16() int16
	Uint16() uint16
	Int32() int32
	Uint32() uint32
	Int64() int64
	Uint64() uint64
	Float32() float32
	Float64() float64
	// String reads an int32 byte length followed by the UTF-8 bytes.
	String() string
	// Data fills p completely.
	Data(p []byte)
	// Bytes reads what Sink.Bytes wrote. Lengths above the string limit are
	// rejected with ErrInvalidLength.
	Bytes() []byte
	// Error returns the first error encountered.
	Error() error
	// SetError records err unless an error is already recorded.
	SetError(err error)
}
