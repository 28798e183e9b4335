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

package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/jppf-grid/JPPF-sub017/errors"
)

// Version is the frame layout version
const Version uint8 = 1

const (
	headerSize  = 1 + 1 + 4
	trailerSize = 8
)

// Compression selects the algorithm applied to the payload of a frame
type Compression uint8

const (
	// NoCompression stores the stream as is
	NoCompression Compression = iota
	// GzipCompression uses gzip
	GzipCompression
	// ZstdCompression uses Zstandard
	ZstdCompression
	// BrotliCompression uses Brotli
	BrotliCompression
	// LZ4Compression uses LZ4 blocks. Streams LZ4 cannot shrink are stored uncompressed.
	LZ4Compression
)

// String returns the name of the algorithm
func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case GzipCompression:
		return "gzip"
	case ZstdCompression:
		return "zstd"
	case BrotliCompression:
		return "brotli"
	case LZ4Compression:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Valid reports whether c names a known algorithm
func (c Compression) Valid() bool {
	return c <= LZ4Compression
}

// Encode wraps raw into a frame:
//
//	version(1) | compression(1) | raw length(4) | payload | xxh3-64 of raw(8)
//
// All integers are big-endian.
func Encode(raw []byte, compression Compression) ([]byte, error) {
	if !compression.Valid() {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidCompression, compression)
	}

	payload, used, err := compress(raw, compression)
	if err != nil {
		return nil, errors.NewIOError("compress "+compression.String(), err)
	}

	out := make([]byte, headerSize, headerSize+len(payload)+trailerSize)
	out[0] = Version
	out[1] = uint8(used)
	binary.BigEndian.PutUint32(out[2:], uint32(len(raw)))
	out = append(out, payload...)
	out = binary.BigEndian.AppendUint64(out, xxh3.Hash(raw))
	return out, nil
}

// Decode unwraps a frame written by Encode and verifies its checksum.
// maxSize bounds the announced raw length when positive.
func Decode(frame []byte, maxSize int) ([]byte, error) {
	if len(frame) < headerSize+trailerSize {
		return nil, errors.NewProtocolError(fmt.Sprintf("frame of %d bytes is too short", len(frame)), errors.ErrInvalidFrame)
	}
	if frame[0] != Version {
		return nil, errors.NewProtocolError(fmt.Sprintf("unknown frame version %d", frame[0]), errors.ErrInvalidFrame)
	}

	compression := Compression(frame[1])
	if !compression.Valid() {
		return nil, errors.NewProtocolError(compression.String(), errors.ErrInvalidCompression)
	}

	size := binary.BigEndian.Uint32(frame[2:headerSize])
	if maxSize > 0 && uint64(size) > uint64(maxSize) {
		return nil, errors.NewProtocolError(fmt.Sprintf("frame announces %d bytes", size), errors.ErrInvalidFrame)
	}

	payload := frame[headerSize : len(frame)-trailerSize]
	raw, err := decompress(payload, compression, int(size))
	if err != nil {
		return nil, errors.NewProtocolError("decompress "+compression.String(), err)
	}
	if len(raw) != int(size) {
		return nil, errors.NewProtocolError(fmt.Sprintf("frame holds %d bytes, %d announced", len(raw), size), errors.ErrInvalidFrame)
	}

	checksum := binary.BigEndian.Uint64(frame[len(frame)-trailerSize:])
	if xxh3.Hash(raw) != checksum {
		return nil, errors.NewProtocolError("frame", errors.ErrChecksumMismatch)
	}
	return raw, nil
}
