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
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jppf-grid/JPPF-sub017/log"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

func TestConfig(t *testing.T) {
	t.Run("With the defaults", func(t *testing.T) {
		config := NewConfig()
		require.NoError(t, config.Validate())
		assert.Equal(t, log.DiscardLogger, config.Logger())
		assert.Equal(t, DefaultRegistry, config.Registry())
		assert.Equal(t, ZstdCompression, config.Compression())
		assert.Equal(t, DefaultMaxArrayLength, config.maxArrayLength)
		assert.Equal(t, wire.DefaultMaxStringLength, config.maxStringLength)
		assert.Equal(t, DefaultMaxFrameSize, config.maxFrameSize)
		assert.Zero(t, config.maxObjects)
		assert.Equal(t, runtime.GOMAXPROCS(0), config.parallelism)
	})
	t.Run("With options", func(t *testing.T) {
		registry := NewRegistry()
		logger := log.NewZap(log.InfoLevel, io.Discard)
		config := NewConfig(
			WithLogger(logger),
			WithRegistry(registry),
			WithCompression(LZ4Compression),
			WithMaxArrayLength(10),
			WithMaxStringLength(20),
			WithMaxObjects(30),
			WithMaxFrameSize(40),
			WithParallelism(2),
		)
		require.NoError(t, config.Validate())
		assert.Equal(t, logger, config.Logger())
		assert.Equal(t, registry, config.Registry())
		assert.Equal(t, LZ4Compression, config.Compression())
		assert.Equal(t, 10, config.maxArrayLength)
		assert.Equal(t, 20, config.maxStringLength)
		assert.Equal(t, 30, config.maxObjects)
		assert.Equal(t, 40, config.maxFrameSize)
		assert.Equal(t, 2, config.parallelism)
	})
	t.Run("With invalid settings", func(t *testing.T) {
		config := NewConfig(WithCompression(Compression(42)), WithMaxArrayLength(-1))
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compression")
		assert.Contains(t, err.Error(), "maxArrayLength")
	})
}
