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

package catalog

import (
	"reflect"
)

// Kind classifies a type descriptor
type Kind uint8

const (
	// KindPrimitive is a bool, integer, float or string type
	KindPrimitive Kind = 1
	// KindArray is a slice or fixed array type
	KindArray Kind = 2
	// KindOpaque is a type encoded by a codec
	KindOpaque Kind = 3
	// KindStructured is a struct type encoded field by field
	KindStructured Kind = 4
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindOpaque:
		return "opaque"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// FirstUserHandle is the first handle given to a transmitted descriptor.
// Handles below it are reserved for the builtin descriptors.
const FirstUserHandle uint32 = 32

// TypeDescriptor is the per-stream metadata of one type
type TypeDescriptor struct {
	Handle         uint32
	Signature      string
	Kind           Kind
	Component      *TypeDescriptor
	Fields         []*FieldDescriptor
	Super          *TypeDescriptor
	HasCustomCodec bool
	// GoType is the local type the descriptor stands for
	GoType reflect.Type
}

// FieldDescriptor names one serialized field of a structured type
type FieldDescriptor struct {
	Name string
	Type *TypeDescriptor
}

var builtins = newBuiltins(
	reflect.TypeFor[bool](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[int](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[string](),
	reflect.TypeFor[any](),
)

// anyDescriptor stands for every interface type
var anyDescriptor = builtins[len(builtins)-1]

func newBuiltins(types ...reflect.Type) []*TypeDescriptor {
	out := make([]*TypeDescriptor, 0, len(types))
	for i, t := range types {
		kind := KindPrimitive
		if t.Kind() == reflect.Interface {
			// the top type every struct implicitly extends
			kind = KindStructured
		}
		out = append(out, &TypeDescriptor{
			Handle:    uint32(i + 1),
			Signature: t.String(),
			Kind:      kind,
			GoType:    t,
		})
	}
	// interface{} prints as "interface {}"
	out[len(out)-1].Signature = "any"
	return out
}

// Builtin returns the predeclared descriptor with the given handle
func Builtin(handle uint32) (*TypeDescriptor, bool) {
	if handle == 0 || int(handle) > len(builtins) {
		return nil, false
	}
	return builtins[handle-1], true
}

// builtinFor returns the predeclared descriptor of t
func builtinFor(t reflect.Type) (*TypeDescriptor, bool) {
	if t.Kind() == reflect.Interface {
		return anyDescriptor, true
	}
	if t.PkgPath() != "" || t.Name() == "" || !IsPrimitive(t) {
		return nil, false
	}
	for _, d := range builtins {
		if d.GoType == t {
			return d, true
		}
	}
	return nil, false
}

// IsPrimitive reports whether values of t are written as a single scalar
func IsPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	default:
		return false
	}
}
