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

package wire

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"slices"
)

const (
	// DefaultMaxStringLength bounds the byte length of a single string or byte block.
	DefaultMaxStringLength = 16 << 20

	// chunkSize is the largest allocation made ahead of the bytes it holds
	chunkSize = 64 << 10
)

// Reader is a buffered Source over an io.Reader
type Reader struct {
	r         *bufio.Reader
	tmp       [8]byte
	err       error
	count     int64
	maxString int
}

var _ Source = (*Reader)(nil)

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithMaxStringLength sets the largest length prefix String and Bytes accept.
// Zero disables the check.
func WithMaxStringLength(n int) ReaderOption {
	return func(r *Reader) { r.maxString = n }
}

// NewReader creates a Reader
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	reader := &Reader{r: br, maxString: DefaultMaxStringLength}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

func (r *Reader) read(p []byte) {
	if r.err != nil {
		clear(p)
		return
	}
	n, err := io.ReadFull(r.r, p)
	r.count += int64(n)
	if err != nil {
		clear(p)
		r.err = err
	}
}

func (r *Reader) Bool() bool { return r.Uint8() != 0 }

func (r *Reader) Int8() int8 { return int8(r.Uint8()) }

func (r *Reader) Uint8() uint8 {
	r.read(r.tmp[:1])
	return r.tmp[0]
}

func (r *Reader) Int16() int16 { return int16(r.Uint16()) }

func (r *Reader) Uint16() uint16 {
	r.read(r.tmp[:2])
	return binary.BigEndian.Uint16(r.tmp[:2])
}

func (r *Reader) Int32() int32 { return int32(r.Uint32()) }

func (r *Reader) Uint32() uint32 {
	r.read(r.tmp[:4])
	return binary.BigEndian.Uint32(r.tmp[:4])
}

func (r *Reader) Int64() int64 { return int64(r.Uint64()) }

func (r *Reader) Uint64() uint64 {
	r.read(r.tmp[:8])
	return binary.BigEndian.Uint64(r.tmp[:8])
}

func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }

func (r *Reader) Float64() float64 { return math.Float64frombits(r.Uint64()) }

func (r *Reader) String() string {
	return string(r.Bytes())
}

func (r *Reader) Data(p []byte) { r.read(p) }

func (r *Reader) Bytes() []byte {
	size := r.Int32()
	if r.err != nil {
		return nil
	}
	if size < 0 || (r.maxString > 0 && int(size) > r.maxString) {
		r.SetError(ErrInvalidLength)
		return nil
	}
	return r.Block(int(size))
}

// Block reads size raw bytes. The buffer grows with the data received, so a
// length announced by a truncated stream fails before it is allocated.
func (r *Reader) Block(size int) []byte {
	if size <= 0 || r.err != nil {
		return nil
	}
	buf := make([]byte, 0, min(size, chunkSize))
	for len(buf) < size {
		start := len(buf)
		n := min(size-start, max(start, chunkSize))
		buf = slices.Grow(buf, n)[:start+n]
		r.read(buf[start:])
		if r.err != nil {
			return nil
		}
	}
	return buf
}

// Count returns the number of bytes consumed so far.
func (r *Reader) Count() int64 { return r.count }

func (r *Reader) Error() error { return r.err }

func (r *Reader) SetError(err error) {
	if r.err == nil {
		r.err = err
	}
}
