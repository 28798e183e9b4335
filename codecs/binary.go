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
	"encoding"
	"fmt"
	"reflect"

	"github.com/jppf-grid/JPPF-sub017/hook"
)

var (
	binaryMarshalerType   = reflect.TypeFor[encoding.BinaryMarshaler]()
	binaryUnmarshalerType = reflect.TypeFor[encoding.BinaryUnmarshaler]()
)

// Binary delegates to the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// methods of the value. The payload is length prefixed.
type Binary struct{}

var _ hook.Codec = Binary{}

// IsBinary reports whether values of t can be handled by Binary
func IsBinary(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	ptr := reflect.PointerTo(t)
	return ptr.Implements(binaryMarshalerType) && ptr.Implements(binaryUnmarshalerType)
}

// Encode implements hook.Codec
func (Binary) Encode(w hook.Writer, v reflect.Value) error {
	marshaler := addressable(v).Addr().Interface().(encoding.BinaryMarshaler)
	data, err := marshaler.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal %s: %w", v.Type(), err)
	}
	w.Bytes(data)
	return w.Error()
}

// Decode implements hook.Codec
func (Binary) Decode(r hook.Reader, v reflect.Value) error {
	data := r.Bytes()
	if err := r.Error(); err != nil {
		return err
	}
	unmarshaler := v.Addr().Interface().(encoding.BinaryUnmarshaler)
	if err := unmarshaler.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("unmarshal %s: %w", v.Type(), err)
	}
	return nil
}
