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

package accessor

import (
	"reflect"
	"unsafe"
)

// TagName is the struct tag consulted for field options.
// A field tagged `graph:"-"` is transient and never serialized.
const TagName = "graph"

// Field gets and sets one struct field, exported or not
type Field struct {
	Name   string
	Index  int
	Offset uintptr
	Type   reflect.Type
}

// Value returns the field of base as a settable value.
// base must be an addressable struct value of the field's owner type.
func (f *Field) Value(base reflect.Value) reflect.Value {
	ptr := unsafe.Add(base.Addr().UnsafePointer(), f.Offset)
	return reflect.NewAt(f.Type, ptr).Elem()
}

// Shape is the serializable layout of a struct type
type Shape struct {
	Type reflect.Type
	// Fields holds the own fields in declaration order, transient fields
	// and the supertype field excluded.
	Fields []*Field
	// Super is the embedded struct field acting as supertype, nil at the top of the chain.
	Super *Field
}

// Analyze builds the shape of the struct type t. The first embedded struct
// field for which opaque reports false becomes the supertype; opaque may be nil.
func Analyze(t reflect.Type, opaque func(reflect.Type) bool) *Shape {
	shape := &Shape{Type: t, Fields: make([]*Field, 0, t.NumField())}
	for i := range t.NumField() {
		sf := t.Field(i)
		if Transient(sf) {
			continue
		}

		field := &Field{
			Name:   sf.Name,
			Index:  i,
			Offset: sf.Offset,
			Type:   sf.Type,
		}

		if shape.Super == nil && sf.Anonymous && sf.Type.Kind() == reflect.Struct && (opaque == nil || !opaque(sf.Type)) {
			shape.Super = field
			continue
		}
		shape.Fields = append(shape.Fields, field)
	}
	return shape
}

// Transient reports whether the field is excluded from serialization
func Transient(sf reflect.StructField) bool {
	return sf.Name == "_" || sf.Tag.Get(TagName) == "-"
}
