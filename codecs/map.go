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

package codecs

import (
	"reflect"

	"github.com/jppf-grid/JPPF-sub017/hook"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

// Map encodes any map kind as an entry count followed by key and value pairs.
// Keys and values are written according to their static types, so pointer
// keys or values keep their identity across the graph.
type Map struct{}

var _ hook.Codec = Map{}

// Encode implements hook.Codec
func (Map) Encode(w hook.Writer, v reflect.Value) error {
	w.Int32(int32(v.Len()))
	iter := v.MapRange()
	for iter.Next() {
		if err := w.WriteValue(iter.Key()); err != nil {
			return err
		}
		if err := w.WriteValue(iter.Value()); err != nil {
			return err
		}
	}
	return w.Error()
}

// Decode implements hook.Codec. An entry is inserted once both its key and
// its value are complete, which may be after Decode returns.
func (Map) Decode(r hook.Reader, v reflect.Value) error {
	size := r.Int32()
	if err := r.Error(); err != nil {
		return err
	}
	if size < 0 {
		return wire.ErrInvalidLength
	}

	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(v.Type(), min(int(size), maxPresize)))
	}

	keyType, valueType := v.Type().Key(), v.Type().Elem()
	for range size {
		key := reflect.New(keyType).Elem()
		value := reflect.New(valueType).Elem()
		remaining := 2
		insert := func() {
			remaining--
			if remaining == 0 {
				v.SetMapIndex(key, value)
			}
		}
		if err := r.ReadValue(key, insert); err != nil {
			return err
		}
		if err := r.ReadValue(value, insert); err != nil {
			return err
		}
	}
	return r.Error()
}
