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
	"fmt"
	"reflect"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/internal/types"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

// Builder collects the descriptors of the types met while encoding one stream
type Builder struct {
	registry types.Registry
	byType   map[reflect.Type]*TypeDescriptor
	ordered  []*TypeDescriptor
	next     uint32
}

// NewBuilder creates a Builder resolving names and codecs through registry
func NewBuilder(registry types.Registry) *Builder {
	return &Builder{
		registry: registry,
		byType:   make(map[reflect.Type]*TypeDescriptor),
		next:     FirstUserHandle,
	}
}

// Describe returns the descriptor of t, building it and the descriptors it
// depends on when t has not been seen yet. A pointer to a struct shares the
// descriptor of the struct.
func (b *Builder) Describe(t reflect.Type) (*TypeDescriptor, error) {
	if d, ok := builtinFor(t); ok {
		return d, nil
	}
	if d, ok := b.byType[t]; ok {
		return d, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if _, ok := b.registry.Codec(elem); ok {
			return b.add(t, KindOpaque, true)
		}
		if elem.Kind() == reflect.Struct {
			return b.Describe(elem)
		}
		return nil, errors.NewUnsupportedTypeError(t.String(), "only pointers to structs and codec types are supported")
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Uintptr, reflect.Complex64, reflect.Complex128, reflect.Invalid:
		return nil, errors.NewUnsupportedTypeError(t.String(), fmt.Sprintf("%s values cannot be serialized", t.Kind()))
	}

	if _, ok := b.registry.Codec(t); ok {
		return b.add(t, KindOpaque, true)
	}

	switch {
	case IsPrimitive(t):
		return b.add(t, KindPrimitive, false)
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		d, err := b.add(t, KindArray, false)
		if err != nil {
			return nil, err
		}
		if d.Component, err = b.Describe(t.Elem()); err != nil {
			return nil, err
		}
		return d, nil
	case t.Kind() == reflect.Struct:
		return b.describeStruct(t)
	default:
		return nil, errors.NewUnsupportedTypeError(t.String(), "")
	}
}

func (b *Builder) describeStruct(t reflect.Type) (*TypeDescriptor, error) {
	d, err := b.add(t, KindStructured, false)
	if err != nil {
		return nil, err
	}

	shape := b.registry.Shape(t)
	d.Fields = make([]*FieldDescriptor, 0, len(shape.Fields))
	for _, field := range shape.Fields {
		fd, err := b.Describe(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", field.Name, t, err)
		}
		d.Fields = append(d.Fields, &FieldDescriptor{Name: field.Name, Type: fd})
	}

	if shape.Super != nil {
		if d.Super, err = b.Describe(shape.Super.Type); err != nil {
			return nil, fmt.Errorf("supertype of %s: %w", t, err)
		}
	}
	return d, nil
}

// add registers a new descriptor before its dependencies are described so
// that recursive types terminate
func (b *Builder) add(t reflect.Type, kind Kind, codec bool) (*TypeDescriptor, error) {
	signature, err := b.registry.Signature(t)
	if err != nil {
		return nil, err
	}

	d := &TypeDescriptor{
		Handle:         b.next,
		Signature:      signature,
		Kind:           kind,
		HasCustomCodec: codec,
		GoType:         t,
	}
	b.next++
	b.byType[t] = d
	b.ordered = append(b.ordered, d)
	return d, nil
}

// Descriptors returns the descriptors in handle order
func (b *Builder) Descriptors() []*TypeDescriptor {
	return b.ordered
}

// Len returns the number of descriptors built so far
func (b *Builder) Len() int {
	return len(b.ordered)
}

// WriteTo writes the descriptor count followed by every descriptor
func (b *Builder) WriteTo(sink wire.Sink) error {
	sink.Int32(int32(len(b.ordered)))
	for _, d := range b.ordered {
		writeDescriptor(sink, d)
	}
	return sink.Error()
}

func writeDescriptor(sink wire.Sink, d *TypeDescriptor) {
	sink.String(d.Signature)
	sink.Uint32(d.Handle)
	sink.Uint8(uint8(d.Kind))
	switch d.Kind {
	case KindArray:
		sink.Uint32(d.Component.Handle)
	case KindStructured:
		sink.Int32(int32(len(d.Fields)))
		for _, field := range d.Fields {
			sink.String(field.Name)
			sink.Uint32(field.Type.Handle)
		}
		if d.Super == nil {
			sink.Uint32(0)
		} else {
			sink.Uint32(d.Super.Handle)
		}
	}
	sink.Bool(d.HasCustomCodec)
}
