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

	"google.golang.org/protobuf/proto"

	"github.com/jppf-grid/JPPF-sub017/hook"
)

var protoMessageType = reflect.TypeFor[proto.Message]()

// Proto writes protobuf messages in their binary wire format. Register it on
// the message struct type; fields then hold pointers to the message as usual.
type Proto struct{}

var _ hook.Codec = Proto{}

// IsProto reports whether pointers to t are protobuf messages
func IsProto(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(protoMessageType)
}

// Encode implements hook.Codec
func (Proto) Encode(w hook.Writer, v reflect.Value) error {
	message, ok := addressable(v).Addr().Interface().(proto.Message)
	if !ok {
		return fmt.Errorf("%s is not a protobuf message", v.Type())
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", v.Type(), err)
	}
	w.Bytes(data)
	return w.Error()
}

// Decode implements hook.Codec
func (Proto) Decode(r hook.Reader, v reflect.Value) error {
	data := r.Bytes()
	if err := r.Error(); err != nil {
		return err
	}
	message, ok := v.Addr().Interface().(proto.Message)
	if !ok {
		return fmt.Errorf("%s is not a protobuf message", v.Type())
	}
	if err := proto.Unmarshal(data, message); err != nil {
		return fmt.Errorf("unmarshal %s: %w", v.Type(), err)
	}
	return nil
}
