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

package handles

import (
	"reflect"
	"unsafe"

	"github.com/jppf-grid/JPPF-sub017/errors"
)

const (
	// Null is the handle of a nil reference
	Null uint32 = 0
	// Sentinel terminates the object records of a stream
	Sentinel uint32 = 0xFFFFFFFF
)

// Key is the identity of an object. Two slices are the same object only
// when they share data pointer, length and type.
type Key struct {
	ptr    unsafe.Pointer
	length int
	rtype  reflect.Type
}

// KeyOf returns the identity of a non-nil pointer, map or slice
func KeyOf(v reflect.Value) Key {
	key := Key{ptr: v.UnsafePointer(), rtype: v.Type()}
	if v.Kind() == reflect.Slice {
		key.length = v.Len()
	}
	return key
}

// Table assigns handles to objects while encoding
type Table struct {
	ids  map[Key]uint32
	next uint32
}

// NewTable creates a Table. The first handle assigned is 1.
func NewTable() *Table {
	return &Table{
		ids:  make(map[Key]uint32),
		next: 1,
	}
}

// Assign returns the handle of v, and true when the handle was just created
func (t *Table) Assign(v reflect.Value) (uint32, bool) {
	key := KeyOf(v)
	if handle, ok := t.ids[key]; ok {
		return handle, false
	}
	handle := t.Next()
	t.ids[key] = handle
	return handle, true
}

// Next allocates a handle that no identity maps to
func (t *Table) Next() uint32 {
	handle := t.next
	t.next++
	return handle
}

// Len returns the number of handles allocated
func (t *Table) Len() int {
	return int(t.next - 1)
}

// Objects maps handles to decoded instances
type Objects struct {
	byHandle map[uint32]reflect.Value
}

// NewObjects creates an empty Objects
func NewObjects() *Objects {
	return &Objects{byHandle: make(map[uint32]reflect.Value)}
}

// Put records the instance of handle. A handle can only be recorded once.
func (o *Objects) Put(handle uint32, v reflect.Value) error {
	if handle == Null || handle == Sentinel {
		return errors.NewProtocolErrorf("invalid object handle %d", handle)
	}
	if _, ok := o.byHandle[handle]; ok {
		return errors.NewProtocolErrorf("object handle %d defined twice", handle)
	}
	o.byHandle[handle] = v
	return nil
}

// Get returns the instance of handle
func (o *Objects) Get(handle uint32) (reflect.Value, bool) {
	v, ok := o.byHandle[handle]
	return v, ok
}

// Len returns the number of instances recorded
func (o *Objects) Len() int {
	return len(o.byHandle)
}
