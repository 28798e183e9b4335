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
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/multierr"

	"github.com/jppf-grid/JPPF-sub017/internal/bufferpool"
)

// brotliLevel favours speed, the frames are short lived
const brotliLevel = 4

var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderConcurrency(1),
				zstd.WithLowerEncoderMem(true))
			if err != nil {
				return nil
			}
			return enc
		},
	}

	zstdDecoderPool = sync.Pool{
		New: func() any {
			dec, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderLowmem(true),
				zstd.WithDecoderMaxMemory(64<<20))
			if err != nil {
				return nil
			}
			return dec
		},
	}

	gzipWriterPool = sync.Pool{
		New: func() any {
			return gzip.NewWriter(nil)
		},
	}

	brotliWriterPool = sync.Pool{
		New: func() any {
			return brotli.NewWriterLevel(nil, brotliLevel)
		},
	}

	brotliReaderPool = sync.Pool{
		New: func() any {
			return brotli.NewReader(nil)
		},
	}
)

// compress returns the payload and the algorithm actually used
func compress(raw []byte, compression Compression) ([]byte, Compression, error) {
	switch compression {
	case NoCompression:
		return raw, NoCompression, nil
	case ZstdCompression:
		enc, ok := zstdEncoderPool.Get().(*zstd.Encoder)
		if !ok || enc == nil {
			return nil, compression, fmt.Errorf("zstd encoder unavailable")
		}
		out := enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
		return out, compression, nil
	case GzipCompression:
		buf := bufferpool.Pool.Get()
		defer bufferpool.Pool.Put(buf)
		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(buf)
		_, err := zw.Write(raw)
		err = multierr.Append(err, zw.Close())
		gzipWriterPool.Put(zw)
		return bytes.Clone(buf.Bytes()), compression, err
	case BrotliCompression:
		buf := bufferpool.Pool.Get()
		defer bufferpool.Pool.Put(buf)
		bw := brotliWriterPool.Get().(*brotli.Writer)
		bw.Reset(buf)
		_, err := bw.Write(raw)
		err = multierr.Append(err, bw.Close())
		bw.Reset(nil)
		brotliWriterPool.Put(bw)
		return bytes.Clone(buf.Bytes()), compression, err
	case LZ4Compression:
		out := make([]byte, lz4.CompressBlockBound(len(raw)))
		written, err := lz4.CompressBlock(raw, out, nil)
		if err != nil {
			return nil, compression, err
		}
		if written == 0 || written >= len(raw) {
			return raw, NoCompression, nil
		}
		return out[:written], compression, nil
	default:
		return nil, compression, fmt.Errorf("unknown compression %d", compression)
	}
}

// decompress inflates payload, reading at most size bytes plus one so that
// an oversized payload is detected without inflating it completely
func decompress(payload []byte, compression Compression, size int) ([]byte, error) {
	switch compression {
	case NoCompression:
		return payload, nil
	case ZstdCompression:
		dec, ok := zstdDecoderPool.Get().(*zstd.Decoder)
		if !ok || dec == nil {
			return nil, fmt.Errorf("zstd decoder unavailable")
		}
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(payload, make([]byte, 0, size))
	case GzipCompression:
		zr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		out, err := readLimited(zr, size)
		return out, multierr.Append(err, zr.Close())
	case BrotliCompression:
		br := brotliReaderPool.Get().(*brotli.Reader)
		defer brotliReaderPool.Put(br)
		if err := br.Reset(bytes.NewReader(payload)); err != nil {
			return nil, err
		}
		return readLimited(br, size)
	case LZ4Compression:
		out := make([]byte, size)
		read, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		return out[:read], nil
	default:
		return nil, fmt.Errorf("unknown compression %d", compression)
	}
}

func readLimited(r io.Reader, size int) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	_, err := io.Copy(buf, io.LimitReader(r, int64(size)+1))
	return buf.Bytes(), err
}
