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

package ledger

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/internal/accessor"
)

type node struct {
	Next  *node
	Peers []*node
	Any   any
}

func TestLedger(t *testing.T) {
	shape := accessor.Analyze(reflect.TypeFor[node](), nil)
	owner := &node{Peers: make([]*node, 2)}
	ownerValue := reflect.ValueOf(owner).Elem()

	l := New()
	applied := 0
	l.Add(7, FieldRef{Owner: ownerValue, Field: shape.Fields[0]}, func() { applied++ })
	l.Add(7, ElementRef{Array: ownerValue.Field(1), Index: 1}, nil)
	l.Add(9, SiteRef{Site: ownerValue.Field(2)}, func() { applied++ })

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []uint32{7, 9}, l.Handles())

	target := &node{}
	require.NoError(t, l.Resolve(7, reflect.ValueOf(target)))
	assert.Same(t, target, owner.Next)
	assert.Same(t, target, owner.Peers[1])
	assert.Nil(t, owner.Peers[0])
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, l.Len())

	// resolving a handle nobody waits for is a no-op
	require.NoError(t, l.Resolve(7, reflect.ValueOf(target)))

	require.NoError(t, l.Resolve(9, reflect.ValueOf("boxed")))
	assert.Equal(t, "boxed", owner.Any)
	assert.Equal(t, 2, applied)
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Handles())
}

func TestLedgerTypeMismatch(t *testing.T) {
	owner := &node{}
	shape := accessor.Analyze(reflect.TypeFor[node](), nil)

	l := New()
	l.Add(3, FieldRef{Owner: reflect.ValueOf(owner).Elem(), Field: shape.Fields[0]}, nil)
	err := l.Resolve(3, reflect.ValueOf("not a node"))
	assert.ErrorIs(t, err, errors.ErrProtocol)
	assert.Nil(t, owner.Next)
}
