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
)

// Writer is a buffered Sink over an io.Writer
type Writer struct {
	w     *bufio.Writer
	tmp   [8]byte
	err   error
	count int64
}

var _ Sink = (*Writer)(nil)

// NewWriter creates a Writer. Flush must be called once the stream is complete.
func NewWriter(w io.Writer) *Writer {
	if bw, ok := w.(*bufio.Writer); ok {
		return &Writer{w: bw}
	}
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.err = err
}

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

func (w *Writer) Int8(v int8) { w.Uint8(uint8(v)) }

func (w *Writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.write(w.tmp[:1])
}

func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }

func (w *Writer) Uint16(v uint16) {
	binary.BigEndian.PutUint16(w.tmp[:2], v)
	w.write(w.tmp[:2])
}

func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

func (w *Writer) Uint32(v uint32) {
	binary.BigEndian.PutUint32(w.tmp[:4], v)
	w.write(w.tmp[:4])
}

func (w *Writer) Int64(v int64) { w.Uint64(uint64(v)) }

func (w *Writer) Uint64(v uint64) {
	binary.BigEndian.PutUint64(w.tmp[:8], v)
	w.write(w.tmp[:8])
}

func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

func (w *Writer) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

func (w *Writer) String(v string) {
	if len(v) > math.MaxInt32 {
		w.SetError(ErrInvalidLength)
		return
	}
	w.Int32(int32(len(v)))
	if w.err != nil {
		return
	}
	n, err := w.w.WriteString(v)
	w.count += int64(n)
	w.err = err
}

func (w *Writer) Data(p []byte) { w.write(p) }

func (w *Writer) Bytes(p []byte) {
	if len(p) > math.MaxInt32 {
		w.SetError(ErrInvalidLength)
		return
	}
	w.Int32(int32(len(p)))
	w.write(p)
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Count returns the number of bytes accepted so far.
func (w *Writer) Count() int64 { return w.count }

func (w *Writer) Error() error { return w.err }

func (w *Writer) SetError(err error) {
	if w.err == nil {
		w.err = err
	}
}
