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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jppf-grid/JPPF-sub017/errors"
)

func TestEncodeDecode(t *testing.T) {
	raw := bytes.Repeat([]byte("JPPF object graph "), 200)
	for _, compression := range []Compression{NoCompression, GzipCompression, ZstdCompression, BrotliCompression, LZ4Compression} {
		t.Run(compression.String(), func(t *testing.T) {
			frame, err := Encode(raw, compression)
			require.NoError(t, err)
			assert.Equal(t, Version, frame[0])
			assert.Equal(t, uint8(compression), frame[1])
			if compression != NoCompression {
				assert.Less(t, len(frame), len(raw))
			}

			decoded, err := Decode(frame, 0)
			require.NoError(t, err)
			assert.Equal(t, raw, decoded)
		})
	}
}

func TestIncompressibleLZ4(t *testing.T) {
	raw := []byte{1, 2, 3}
	frame, err := Encode(raw, LZ4Compression)
	require.NoError(t, err)
	assert.Equal(t, uint8(NoCompression), frame[1])

	decoded, err := Decode(frame, 0)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestEmptyStream(t *testing.T) {
	frame, err := Encode(nil, ZstdCompression)
	require.NoError(t, err)
	decoded, err := Decode(frame, 0)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeErrors(t *testing.T) {
	raw := bytes.Repeat([]byte{7}, 64)
	valid, err := Encode(raw, ZstdCompression)
	require.NoError(t, err)

	t.Run("With a short frame", func(t *testing.T) {
		_, err := Decode(valid[:5], 0)
		assert.ErrorIs(t, err, errors.ErrProtocol)
		assert.ErrorIs(t, err, errors.ErrInvalidFrame)
	})
	t.Run("With an unknown version", func(t *testing.T) {
		corrupt := bytes.Clone(valid)
		corrupt[0] = 9
		_, err := Decode(corrupt, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidFrame)
	})
	t.Run("With an unknown compression", func(t *testing.T) {
		corrupt := bytes.Clone(valid)
		corrupt[1] = 42
		_, err := Decode(corrupt, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidCompression)
	})
	t.Run("With a corrupted checksum", func(t *testing.T) {
		corrupt := bytes.Clone(valid)
		corrupt[len(corrupt)-1] ^= 0xFF
		_, err := Decode(corrupt, 0)
		assert.ErrorIs(t, err, errors.ErrChecksumMismatch)
	})
	t.Run("With a size above the limit", func(t *testing.T) {
		_, err := Decode(valid, 10)
		assert.ErrorIs(t, err, errors.ErrInvalidFrame)
	})
	t.Run("With an invalid compression on encode", func(t *testing.T) {
		_, err := Encode(raw, Compression(99))
		assert.ErrorIs(t, err, errors.ErrInvalidCompression)
	})
}
