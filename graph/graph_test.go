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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jppf-grid/JPPF-sub017/internal/catalog"
	"github.com/jppf-grid/JPPF-sub017/internal/handles"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

type node struct {
	Value int
	Next  *node
}

type pair struct {
	Left  *node
	Right *node
}

type base struct {
	ID    int64
	Owner *node
}

type derived struct {
	base
	Name string
}

type point struct {
	X int32
	Y int32
}

type sample struct {
	Flag   bool
	Small  int8
	Medium int16
	Count  uint32
	Big    uint64
	Ratio  float32
	Score  float64
	Label  string
	Grid   [2][2]int8
	Key    [4]byte
	Data   []byte
	Alias  []byte
	Words  []string
	Nested point
	Points []point
	cache  string `graph:"-"`
	secret string
}

type celsius float64

type box struct {
	Items []any
}

func newRegistry(t *testing.T, values ...any) Registry {
	t.Helper()
	registry := NewRegistry()
	require.NoError(t, registry.Register(values...))
	return registry
}

func roundTrip(t *testing.T, registry Registry, root any) any {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, root, WithRegistry(registry)))
	out, err := Decode(&buf, WithRegistry(registry))
	require.NoError(t, err)
	return out
}

func newRing(values ...int) *node {
	nodes := make([]*node, len(values))
	for i, value := range values {
		nodes[i] = &node{Value: value}
	}
	for i := range nodes {
		nodes[i].Next = nodes[(i+1)%len(nodes)]
	}
	return nodes[0]
}

func TestRing(t *testing.T) {
	registry := newRegistry(t, new(node))
	root := newRing(1, 2, 3)

	var buf bytes.Buffer
	encoder := NewEncoder(&buf, WithRegistry(registry))
	require.NoError(t, encoder.Encode(root))

	stats := encoder.Stats()
	assert.Equal(t, 3, stats.Objects)
	assert.Equal(t, 1, stats.Descriptors)
	assert.EqualValues(t, buf.Len(), stats.Bytes)

	t.Run("With the stream layout", func(t *testing.T) {
		reader := wire.NewReader(bytes.NewReader(buf.Bytes()))
		header := make([]byte, 4)
		reader.Data(header)
		assert.Equal(t, "JPPF", string(header))

		types, err := catalog.Read(reader, registry, 0)
		require.NoError(t, err)
		require.Equal(t, 1, types.Len())
		desc := types.Descriptors()[0]
		assert.Equal(t, "github.com/jppf-grid/JPPF-sub017/graph.node", desc.Signature)
		assert.Equal(t, catalog.KindStructured, desc.Kind)
		require.Len(t, desc.Fields, 2)
		assert.Equal(t, "Value", desc.Fields[0].Name)
		assert.Equal(t, "Next", desc.Fields[1].Name)
		assert.Same(t, desc, desc.Fields[1].Type)

		for i := uint32(1); i <= 3; i++ {
			assert.Equal(t, i, reader.Uint32())
			assert.Equal(t, desc.Handle, reader.Uint32())
			assert.EqualValues(t, i, reader.Int64())
			assert.Equal(t, i%3+1, reader.Uint32())
		}
		assert.Equal(t, handles.Sentinel, reader.Uint32())
		require.NoError(t, reader.Error())
	})

	t.Run("With the decoded ring", func(t *testing.T) {
		out, err := NewDecoder(bytes.NewReader(buf.Bytes()), WithRegistry(registry)).Decode()
		require.NoError(t, err)
		decoded, ok := out.(*node)
		require.True(t, ok)
		assert.Equal(t, 1, decoded.Value)
		assert.Equal(t, 2, decoded.Next.Value)
		assert.Equal(t, 3, decoded.Next.Next.Value)
		assert.Same(t, decoded, decoded.Next.Next.Next)
	})
}

func TestCycles(t *testing.T) {
	registry := newRegistry(t, new(node), new(pair))

	t.Run("With a self reference", func(t *testing.T) {
		root := &node{Value: 1}
		root.Next = root
		decoded := roundTrip(t, registry, root).(*node)
		assert.Same(t, decoded, decoded.Next)
	})
	t.Run("With a long chain", func(t *testing.T) {
		var head *node
		for i := range 10000 {
			head = &node{Value: i, Next: head}
		}
		decoded := roundTrip(t, registry, head).(*node)
		count := 0
		for current := decoded; current != nil; current = current.Next {
			count++
		}
		assert.Equal(t, 10000, count)
		assert.Equal(t, 9999, decoded.Value)
	})
}

func TestSharedReferences(t *testing.T) {
	registry := newRegistry(t, new(pair))
	shared := &node{Value: 42}

	decoded := roundTrip(t, registry, &pair{Left: shared, Right: shared}).(*pair)
	require.NotNil(t, decoded.Left)
	assert.Same(t, decoded.Left, decoded.Right)
	assert.Equal(t, 42, decoded.Left.Value)

	distinct := roundTrip(t, registry, &pair{Left: &node{Value: 1}, Right: &node{Value: 1}}).(*pair)
	assert.NotSame(t, distinct.Left, distinct.Right)
}

func TestNull(t *testing.T) {
	registry := newRegistry(t, new(pair))

	t.Run("With a nil root", func(t *testing.T) {
		var buf bytes.Buffer
		encoder := NewEncoder(&buf, WithRegistry(registry))
		require.NoError(t, encoder.Encode(nil))
		assert.Zero(t, encoder.Stats().Objects)
		assert.Zero(t, encoder.Stats().Descriptors)

		out, err := Decode(&buf, WithRegistry(registry))
		require.NoError(t, err)
		assert.Nil(t, out)
	})
	t.Run("With a typed nil root", func(t *testing.T) {
		assert.Nil(t, roundTrip(t, registry, (*node)(nil)))
	})
	t.Run("With nil fields", func(t *testing.T) {
		decoded := roundTrip(t, registry, &pair{Left: &node{Value: 1}}).(*pair)
		assert.Equal(t, 1, decoded.Left.Value)
		assert.Nil(t, decoded.Left.Next)
		assert.Nil(t, decoded.Right)
	})
}

func TestRoots(t *testing.T) {
	registry := newRegistry(t, new(node))

	t.Run("With a struct value", func(t *testing.T) {
		decoded := roundTrip(t, registry, node{Value: 3})
		assert.Equal(t, &node{Value: 3}, decoded)
	})
	t.Run("With a primitive", func(t *testing.T) {
		assert.Equal(t, 42, roundTrip(t, registry, 42))
		assert.Equal(t, "JPPF", roundTrip(t, registry, "JPPF"))
	})
	t.Run("With a slice", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, roundTrip(t, registry, []string{"a", "b"}))
	})
	t.Run("With a slice of pointers", func(t *testing.T) {
		shared := &node{Value: 1}
		decoded := roundTrip(t, registry, []*node{shared, shared, nil}).([]*node)
		require.Len(t, decoded, 3)
		assert.Same(t, decoded[0], decoded[1])
		assert.Nil(t, decoded[2])
	})
}

func TestSupertype(t *testing.T) {
	registry := newRegistry(t, new(derived))
	owner := &node{Value: 5}
	root := &derived{base: base{ID: 9, Owner: owner}, Name: "worker"}

	var buf bytes.Buffer
	encoder := NewEncoder(&buf, WithRegistry(registry))
	require.NoError(t, encoder.Encode(root))
	// derived, base and node
	assert.Equal(t, 3, encoder.Stats().Descriptors)

	out, err := Decode(&buf, WithRegistry(registry))
	require.NoError(t, err)
	decoded := out.(*derived)
	assert.Equal(t, "worker", decoded.Name)
	assert.EqualValues(t, 9, decoded.ID)
	require.NotNil(t, decoded.Owner)
	assert.Equal(t, 5, decoded.Owner.Value)
}

func TestValues(t *testing.T) {
	registry := newRegistry(t, new(sample))
	data := []byte("payload")
	root := &sample{
		Flag:   true,
		Small:  -8,
		Medium: 1600,
		Count:  32,
		Big:    1 << 60,
		Ratio:  0.5,
		Score:  3.25,
		Label:  "label",
		Grid:   [2][2]int8{{1, 2}, {3, 4}},
		Key:    [4]byte{'J', 'P', 'P', 'F'},
		Data:   data,
		Alias:  data,
		Words:  []string{"alpha", "", "gamma"},
		Nested: point{X: -1, Y: 1},
		Points: []point{{X: 1}, {Y: 2}},
		cache:  "dropped",
		secret: "kept",
	}

	decoded := roundTrip(t, registry, root).(*sample)
	expected := *root
	expected.cache = ""
	assert.Equal(t, &expected, decoded)
	assert.Same(t, &decoded.Data[0], &decoded.Alias[0])
}

func TestInterfaces(t *testing.T) {
	registry := newRegistry(t, new(box), new(node), celsius(0))
	shared := &node{Value: 7}
	root := &box{Items: []any{
		42,
		"text",
		celsius(21.5),
		shared,
		shared,
		nil,
		[]int{1, 2},
		map[string]int{"a": 1},
		true,
	}}

	decoded := roundTrip(t, registry, root).(*box)
	require.Len(t, decoded.Items, 9)
	assert.Equal(t, 42, decoded.Items[0])
	assert.Equal(t, "text", decoded.Items[1])
	assert.Equal(t, celsius(21.5), decoded.Items[2])
	assert.Same(t, decoded.Items[3], decoded.Items[4])
	assert.Equal(t, 7, decoded.Items[3].(*node).Value)
	assert.Nil(t, decoded.Items[5])
	assert.Equal(t, []int{1, 2}, decoded.Items[6])
	assert.Equal(t, map[string]int{"a": 1}, decoded.Items[7])
	assert.Equal(t, true, decoded.Items[8])
}

func TestConsecutiveStreams(t *testing.T) {
	registry := newRegistry(t, new(node))

	var buf bytes.Buffer
	encoder := NewEncoder(&buf, WithRegistry(registry))
	require.NoError(t, encoder.Encode(newRing(1, 2)))
	require.NoError(t, encoder.Encode(&node{Value: 9}))

	decoder := NewDecoder(&buf, WithRegistry(registry))
	first, err := decoder.Decode()
	require.NoError(t, err)
	assert.Same(t, first, first.(*node).Next.Next)
	assert.Equal(t, 2, decoder.Stats().Objects)

	second, err := decoder.Decode()
	require.NoError(t, err)
	assert.Equal(t, &node{Value: 9}, second)

	_, err = decoder.Decode()
	assert.Error(t, err)
}
