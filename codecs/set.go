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
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jppf-grid/JPPF-sub017/hook"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

// Set encodes golang-set sets of T, thread-safe or not. Register it on the
// concrete set returned by mapset.NewSet or mapset.NewThreadUnsafeSet:
//
//	graph.RegisterCodec(mapset.NewSet[string](), codecs.Set[string]{})
//
// Fields and elements then hold a mapset.Set[T] as usual.
type Set[T comparable] struct{}

var _ hook.Codec = Set[int]{}

// Encode implements hook.Codec
func (Set[T]) Encode(w hook.Writer, v reflect.Value) error {
	set, ok := addressable(v).Addr().Interface().(mapset.Set[T])
	if !ok {
		return fmt.Errorf("%s is not a set", v.Type())
	}

	items := set.ToSlice()
	w.Int32(int32(len(items)))
	for i := range items {
		if err := w.WriteValue(reflect.ValueOf(&items[i]).Elem()); err != nil {
			return err
		}
	}
	return w.Error()
}

// Decode implements hook.Codec
func (Set[T]) Decode(r hook.Reader, v reflect.Value) error {
	size := r.Int32()
	if err := r.Error(); err != nil {
		return err
	}
	if size < 0 {
		return wire.ErrInvalidLength
	}

	var fresh mapset.Set[T]
	if v.Kind() == reflect.Map {
		fresh = mapset.NewThreadUnsafeSet[T]()
	} else {
		fresh = mapset.NewSet[T]()
	}

	source := reflect.ValueOf(fresh)
	if source.Type() != reflect.PointerTo(v.Type()) {
		return fmt.Errorf("%s is not a set of %s", v.Type(), reflect.TypeFor[T]())
	}
	v.Set(source.Elem())

	set := v.Addr().Interface().(mapset.Set[T])
	for range size {
		item := reflect.New(reflect.TypeFor[T]()).Elem()
		add := func() {
			value, _ := item.Interface().(T)
			set.Add(value)
		}
		if err := r.ReadValue(item, add); err != nil {
			return err
		}
	}
	return r.Error()
}
