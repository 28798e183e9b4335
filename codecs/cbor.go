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
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/jppf-grid/JPPF-sub017/hook"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8RejectInvalid,
	}

	// ErrCBORMarshal is returned when a value cannot be marshaled to CBOR
	ErrCBORMarshal = errors.New("codecs: failed to marshal CBOR payload")
	// ErrCBORUnmarshal is returned when a CBOR payload cannot be unmarshaled
	ErrCBORUnmarshal = errors.New("codecs: failed to unmarshal CBOR payload")
)

// CBOR writes the value as a single length-prefixed CBOR document.
// Only what the cbor package sees is carried over: exported fields and
// cbor struct tags. Pointers inside the value lose their identity.
type CBOR struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ hook.Codec = (*CBOR)(nil)

// NewCBOR creates a CBOR codec
func NewCBOR() *CBOR {
	encMode, _ := cborEncOpts.EncMode()
	decMode, _ := cborDecOpts.DecMode()
	return &CBOR{encMode: encMode, decMode: decMode}
}

// Encode implements hook.Codec
func (c *CBOR) Encode(w hook.Writer, v reflect.Value) error {
	data, err := c.encMode.Marshal(v.Interface())
	if err != nil {
		return errors.Join(ErrCBORMarshal, err)
	}
	w.Bytes(data)
	return w.Error()
}

// Decode implements hook.Codec
func (c *CBOR) Decode(r hook.Reader, v reflect.Value) error {
	data := r.Bytes()
	if err := r.Error(); err != nil {
		return err
	}
	if err := c.decMode.Unmarshal(data, v.Addr().Interface()); err != nil {
		return errors.Join(ErrCBORUnmarshal, fmt.Errorf("%s: %w", v.Type(), err))
	}
	return nil
}
