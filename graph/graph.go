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

// Package graph serializes arbitrary Go object graphs, cycles and shared
// references included, to a compact binary stream and back.
//
// # Stream layout
//
// All integers are big-endian.
//
//	magic        4 bytes  "JPPF"
//	catalog      int32 count, then one descriptor per type met in the graph
//	records      (uint32 handle, uint32 type handle, body)*, root first
//	sentinel     uint32 0xFFFFFFFF
//
// Handles number the objects of one stream from 1; handle 0 is nil. Pointers
// to structs, slices, maps and pointers to codec types are objects and keep
// their identity. Primitives and struct values without a codec are written in
// place. Primitives held in an interface and values with a codec get a record
// of their own, with a fresh handle each time they occur.
//
// Named types must be known to the Registry in use before they can be
// encoded or decoded, see Register and RegisterName.
package graph

import (
	"io"

	"go.uber.org/atomic"

	"github.com/jppf-grid/JPPF-sub017/internal/frame"
)

// magic opens every stream
var magic = [4]byte{'J', 'P', 'P', 'F'}

// sessionCounter numbers the encode and decode sessions of the process
var sessionCounter = atomic.NewUint64(0)

// Compression selects the algorithm applied by the Serializer
type Compression = frame.Compression

const (
	// NoCompression stores streams as is
	NoCompression = frame.NoCompression
	// GzipCompression uses gzip
	GzipCompression = frame.GzipCompression
	// ZstdCompression uses Zstandard
	ZstdCompression = frame.ZstdCompression
	// BrotliCompression uses Brotli
	BrotliCompression = frame.BrotliCompression
	// LZ4Compression uses LZ4 blocks
	LZ4Compression = frame.LZ4Compression
)

// Stats describes the last stream written or read
type Stats struct {
	// Objects is the number of object records
	Objects int
	// Descriptors is the number of type descriptors in the catalog
	Descriptors int
	// Bytes is the size of the stream
	Bytes int64
}

// Encode writes the graph rooted at root to w as one complete stream
func Encode(w io.Writer, root any, opts ...Option) error {
	return NewEncoder(w, opts...).Encode(root)
}

// Decode reads one stream from r and returns its root
func Decode(r io.Reader, opts ...Option) (any, error) {
	return NewDecoder(r, opts...).Decode()
}
