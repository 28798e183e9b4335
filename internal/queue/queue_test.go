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

package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Run("With FIFO order", func(t *testing.T) {
		q := New[int]()
		assert.True(t, q.IsEmpty())
		for i := range 100 {
			q.Push(i)
		}
		assert.Equal(t, 100, q.Len())
		for i := range 100 {
			item, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, i, item)
		}
		_, ok := q.Pop()
		assert.False(t, ok)
	})
	t.Run("With interleaved push and pop", func(t *testing.T) {
		q := New[string]()
		q.Push("a")
		q.Push("b")
		item, _ := q.Pop()
		assert.Equal(t, "a", item)
		for range 40 {
			q.Push("x")
		}
		q.Push("z")
		item, _ = q.Pop()
		assert.Equal(t, "b", item)
		for range 40 {
			item, _ = q.Pop()
			assert.Equal(t, "x", item)
		}
		item, _ = q.Pop()
		assert.Equal(t, "z", item)
		assert.Zero(t, q.Len())
	})
	t.Run("With reset", func(t *testing.T) {
		q := New[int]()
		q.Push(1)
		q.Push(2)
		q.Reset()
		assert.True(t, q.IsEmpty())
		q.Push(3)
		item, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, 3, item)
	})
}
