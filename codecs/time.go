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
	"time"

	"github.com/jppf-grid/JPPF-sub017/hook"
)

// Time encodes a time.Time as Unix seconds, nanoseconds, zone name and zone offset.
// The decoded value denotes the same instant in a fixed zone of the same name
// and offset; the monotonic clock reading is dropped.
type Time struct{}

var _ hook.Codec = Time{}

// Encode implements hook.Codec
func (Time) Encode(w hook.Writer, v reflect.Value) error {
	t := v.Interface().(time.Time)
	name, offset := t.Zone()
	w.Int64(t.Unix())
	w.Int32(int32(t.Nanosecond()))
	w.String(name)
	w.Int32(int32(offset))
	return w.Error()
}

// Decode implements hook.Codec
func (Time) Decode(r hook.Reader, v reflect.Value) error {
	sec := r.Int64()
	nsec := r.Int32()
	name := r.String()
	offset := r.Int32()
	if err := r.Error(); err != nil {
		return err
	}

	t := time.Unix(sec, int64(nsec))
	if name == "UTC" && offset == 0 {
		t = t.UTC()
	} else {
		t = t.In(time.FixedZone(name, int(offset)))
	}
	v.Set(reflect.ValueOf(t))
	return nil
}
