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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/log"
)

type countingMeterProvider struct {
	noop.MeterProvider
	counters map[string]*atomic.Int64
}

func newCountingMeterProvider() *countingMeterProvider {
	return &countingMeterProvider{counters: make(map[string]*atomic.Int64)}
}

func (p *countingMeterProvider) Meter(string, ...metric.MeterOption) metric.Meter {
	return &countingMeter{provider: p}
}

func (p *countingMeterProvider) value(name string) int64 {
	if counter, ok := p.counters[name]; ok {
		return counter.Load()
	}
	return 0
}

type countingMeter struct {
	noop.Meter
	provider *countingMeterProvider
}

func (m *countingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	counter := atomic.NewInt64(0)
	m.provider.counters[name] = counter
	return &countingCounter{value: counter}, nil
}

type countingCounter struct {
	noop.Int64Counter
	value *atomic.Int64
}

func (c *countingCounter) Add(_ context.Context, incr int64, _ ...metric.AddOption) {
	c.value.Add(incr)
}

func TestSerializer(t *testing.T) {
	registry := newRegistry(t, new(node), new(sample))

	compressions := []Compression{NoCompression, GzipCompression, ZstdCompression, BrotliCompression, LZ4Compression}
	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			serializer, err := NewSerializer(WithRegistry(registry), WithCompression(compression))
			require.NoError(t, err)

			data, err := serializer.Serialize(newRing(1, 2, 3))
			require.NoError(t, err)

			out, err := serializer.Deserialize(data)
			require.NoError(t, err)
			ring := out.(*node)
			assert.Equal(t, 1, ring.Value)
			assert.Same(t, ring, ring.Next.Next.Next)
		})
	}

	t.Run("With a corrupted frame", func(t *testing.T) {
		serializer, err := NewSerializer(WithRegistry(registry))
		require.NoError(t, err)

		data, err := serializer.Serialize(newRing(1, 2))
		require.NoError(t, err)
		data[len(data)-1] ^= 0xFF

		_, err = serializer.Deserialize(data)
		assert.ErrorIs(t, err, errors.ErrProtocol)
		assert.ErrorIs(t, err, errors.ErrChecksumMismatch)
	})
	t.Run("With a frame above the size limit", func(t *testing.T) {
		serializer, err := NewSerializer(WithRegistry(registry), WithMaxFrameSize(8))
		require.NoError(t, err)

		data, err := serializer.Serialize(newRing(1, 2))
		require.NoError(t, err)
		_, err = serializer.Deserialize(data)
		assert.ErrorIs(t, err, errors.ErrInvalidFrame)
	})
	t.Run("With an invalid configuration", func(t *testing.T) {
		_, err := NewSerializer(WithParallelism(0), WithMaxObjects(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parallelism")
		assert.Contains(t, err.Error(), "maxObjects")
	})
}

func TestSerializeAll(t *testing.T) {
	registry := newRegistry(t, new(node))
	ctx := context.Background()

	t.Run("With order preserved", func(t *testing.T) {
		serializer, err := NewSerializer(WithRegistry(registry), WithParallelism(3))
		require.NoError(t, err)

		roots := make([]any, 0, 10)
		for i := range 10 {
			roots = append(roots, newRing(i, i+100))
		}

		frames, err := serializer.SerializeAll(ctx, roots...)
		require.NoError(t, err)
		require.Len(t, frames, len(roots))

		decoded, err := serializer.DeserializeAll(ctx, frames)
		require.NoError(t, err)
		for i, root := range decoded {
			ring := root.(*node)
			assert.Equal(t, i, ring.Value)
			assert.Equal(t, i+100, ring.Next.Value)
			assert.Same(t, ring, ring.Next.Next)
		}
	})
	t.Run("With a failing root", func(t *testing.T) {
		serializer, err := NewSerializer(WithRegistry(registry))
		require.NoError(t, err)

		_, err = serializer.SerializeAll(ctx, newRing(1), newRing(2), func() {})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnsupportedType)
		assert.Contains(t, err.Error(), "serialize root 2")
	})
	t.Run("With a failing frame", func(t *testing.T) {
		serializer, err := NewSerializer(WithRegistry(registry))
		require.NoError(t, err)

		good, err := serializer.Serialize(newRing(1))
		require.NoError(t, err)

		_, err = serializer.DeserializeAll(ctx, [][]byte{good, {0x01}})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidFrame)
		assert.Contains(t, err.Error(), "deserialize frame 1")
	})
	t.Run("With a cancelled context", func(t *testing.T) {
		serializer, err := NewSerializer(WithRegistry(registry))
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = serializer.SerializeAll(cancelled, newRing(1), newRing(2))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSessionReporting(t *testing.T) {
	registry := newRegistry(t, new(node))
	provider := newCountingMeterProvider()
	var output bytes.Buffer
	logger := log.NewZap(log.DebugLevel, &output)

	serializer, err := NewSerializer(
		WithRegistry(registry),
		WithMeterProvider(provider),
		WithLogger(logger))
	require.NoError(t, err)

	data, err := serializer.Serialize(newRing(1, 2, 3))
	require.NoError(t, err)
	_, err = serializer.Deserialize(data)
	require.NoError(t, err)

	_, err = serializer.Serialize(make(chan int))
	require.Error(t, err)
	require.NoError(t, logger.Flush())

	assert.EqualValues(t, 3, provider.value("graph.sessions"))
	assert.EqualValues(t, 6, provider.value("graph.objects"))
	assert.EqualValues(t, 1, provider.value("graph.errors"))
	assert.Positive(t, provider.value("graph.bytes"))

	logs := output.String()
	assert.Contains(t, logs, "encode session")
	assert.Contains(t, logs, "decode session")
	assert.Contains(t, logs, "3 objects")
	assert.Contains(t, logs, "failed after 0 objects")
	assert.Contains(t, logs, `"kind":"unsupported"`)
}
