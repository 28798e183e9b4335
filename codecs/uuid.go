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

	"github.com/google/uuid"

	"github.com/jppf-grid/JPPF-sub017/hook"
)

// UUID encodes a uuid.UUID as its 16 raw bytes
type UUID struct{}

var _ hook.Codec = UUID{}

// Encode implements hook.Codec
func (UUID) Encode(w hook.Writer, v reflect.Value) error {
	id := v.Interface().(uuid.UUID)
	w.Data(id[:])
	return w.Error()
}

// Decode implements hook.Codec
func (UUID) Decode(r hook.Reader, v reflect.Value) error {
	var id uuid.UUID
	r.Data(id[:])
	if err := r.Error(); err != nil {
		return err
	}
	v.Set(reflect.ValueOf(id))
	return nil
}
