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

package graph

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jppf-grid/JPPF-sub017/internal/bufferpool"
	"github.com/jppf-grid/JPPF-sub017/internal/frame"
	"github.com/jppf-grid/JPPF-sub017/internal/metric"
)

// Serializer turns graphs into self-contained frames and back. Each frame
// carries one stream, compressed with the configured algorithm and followed
// by an xxh3 checksum of the stream:
//
//	version(1) | compression(1) | stream length(4) | payload | xxh3-64(8)
//
// A Serializer is safe for concurrent use; every call runs its own session.
type Serializer struct {
	config      *Config
	graphMetric *metric.GraphMetric
}

// NewSerializer creates a Serializer. It fails when the configuration is invalid.
func NewSerializer(opts ...Option) (*Serializer, error) {
	config := NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid serializer configuration: %w", err)
	}
	return &Serializer{
		config:      config,
		graphMetric: config.graphMetric(),
	}, nil
}

// Serialize encodes the graph rooted at root into a frame
func (s *Serializer) Serialize(root any) ([]byte, error) {
	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	if err := newEncoder(buf, s.config, s.graphMetric).Encode(root); err != nil {
		return nil, err
	}
	return frame.Encode(buf.Bytes(), s.config.compression)
}

// Deserialize decodes a frame produced by Serialize
func (s *Serializer) Deserialize(data []byte) (any, error) {
	raw, err := frame.Decode(data, s.config.maxFrameSize)
	if err != nil {
		return nil, err
	}
	return newDecoder(bytes.NewReader(raw), s.config, s.graphMetric).Decode()
}

// SerializeAll serializes every root in its own session. Sessions run
// concurrently, at most WithParallelism at a time. The frames are returned in
// the order of the roots; the first failure cancels the remaining sessions.
func (s *Serializer) SerializeAll(ctx context.Context, roots ...any) ([][]byte, error) {
	frames := make([][]byte, len(roots))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.config.parallelism)

	for i, root := range roots {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := s.Serialize(root)
			if err != nil {
				return fmt.Errorf("serialize root %d: %w", i, err)
			}
			frames[i] = data
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// DeserializeAll deserializes every frame in its own session, concurrently.
// The roots are returned in the order of the frames.
func (s *Serializer) DeserializeAll(ctx context.Context, frames [][]byte) ([]any, error) {
	roots := make([]any, len(frames))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.config.parallelism)

	for i, data := range frames {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := s.Deserialize(data)
			if err != nil {
				return fmt.Errorf("deserialize frame %d: %w", i, err)
			}
			roots[i] = root
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return roots, nil
}
