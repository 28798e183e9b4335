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

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/internal/types"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

const (
	// maxFields bounds the field count of a transmitted structured descriptor
	maxFields = 1 << 16
	// maxPresize caps the capacities taken from counts announced by the stream
	maxPresize = 1 << 10
)

// Catalog is the set of descriptors read from one stream
type Catalog struct {
	registry types.Registry
	byHandle map[uint32]*TypeDescriptor
	ordered  []*TypeDescriptor
}

type rawDescriptor struct {
	descriptor *TypeDescriptor
	component  uint32
	fields     []uint32
	super      uint32
}

// Read reads a catalog written by Builder.WriteTo, links the descriptors
// together and binds each of them to a local type. maxDescriptors bounds the
// descriptor count when positive.
func Read(source wire.Source, registry types.Registry, maxDescriptors int) (*Catalog, error) {
	count := source.Int32()
	if err := source.Error(); err != nil {
		return nil, errors.NewSourceError("read catalog", err)
	}
	if count < 0 || (maxDescriptors > 0 && int(count) > maxDescriptors) {
		return nil, errors.NewProtocolErrorf("invalid descriptor count %d", count)
	}

	hint := min(int(count), maxPresize)
	c := &Catalog{
		registry: registry,
		byHandle: make(map[uint32]*TypeDescriptor, hint),
		ordered:  make([]*TypeDescriptor, 0, hint),
	}

	raws := make([]*rawDescriptor, 0, hint)
	for range count {
		raw, err := readDescriptor(source)
		if err != nil {
			return nil, err
		}

		handle := raw.descriptor.Handle
		if handle < FirstUserHandle {
			return nil, errors.NewProtocolErrorf("descriptor %q uses reserved handle %d", raw.descriptor.Signature, handle)
		}
		if _, ok := c.byHandle[handle]; ok {
			return nil, errors.NewProtocolErrorf("duplicate descriptor handle %d", handle)
		}
		c.byHandle[handle] = raw.descriptor
		c.ordered = append(c.ordered, raw.descriptor)
		raws = append(raws, raw)
	}

	for _, raw := range raws {
		if err := c.link(raw); err != nil {
			return nil, err
		}
	}

	if err := c.bind(); err != nil {
		return nil, err
	}
	return c, nil
}

func readDescriptor(source wire.Source) (*rawDescriptor, error) {
	raw := &rawDescriptor{descriptor: &TypeDescriptor{}}
	d := raw.descriptor
	d.Signature = source.String()
	d.Handle = source.Uint32()
	d.Kind = Kind(source.Uint8())

	switch d.Kind {
	case KindPrimitive, KindOpaque:
	case KindArray:
		raw.component = source.Uint32()
	case KindStructured:
		count := source.Int32()
		if err := source.Error(); err != nil {
			return nil, errors.NewSourceError("read descriptor", err)
		}
		if count < 0 || count > maxFields {
			return nil, errors.NewProtocolErrorf("descriptor %q has an invalid field count %d", d.Signature, count)
		}
		hint := min(int(count), maxPresize)
		d.Fields = make([]*FieldDescriptor, 0, hint)
		raw.fields = make([]uint32, 0, hint)
		for range count {
			d.Fields = append(d.Fields, &FieldDescriptor{Name: source.String()})
			raw.fields = append(raw.fields, source.Uint32())
			if source.Error() != nil {
				break
			}
		}
		raw.super = source.Uint32()
	default:
		if err := source.Error(); err != nil {
			return nil, errors.NewSourceError("read descriptor", err)
		}
		return nil, errors.NewProtocolErrorf("descriptor %q has an unknown kind %d", d.Signature, d.Kind)
	}

	d.HasCustomCodec = source.Bool()
	if err := source.Error(); err != nil {
		return nil, errors.NewSourceError("read descriptor", err)
	}
	return raw, nil
}

func (c *Catalog) link(raw *rawDescriptor) error {
	d := raw.descriptor
	switch d.Kind {
	case KindArray:
		component, ok := c.Lookup(raw.component)
		if !ok {
			return errors.NewProtocolErrorf("descriptor %q references unknown component handle %d", d.Signature, raw.component)
		}
		d.Component = component
	case KindStructured:
		for i, handle := range raw.fields {
			field, ok := c.Lookup(handle)
			if !ok {
				return errors.NewProtocolErrorf("field %s of %q references unknown type handle %d", d.Fields[i].Name, d.Signature, handle)
			}
			d.Fields[i].Type = field
		}
		if raw.super != 0 {
			super, ok := c.byHandle[raw.super]
			if !ok || super.Kind != KindStructured {
				return errors.NewProtocolErrorf("descriptor %q references invalid supertype handle %d", d.Signature, raw.super)
			}
			d.Super = super
		}
	}
	return nil
}

// bind resolves every descriptor to a local type and checks that the local
// type would be described the same way
func (c *Catalog) bind() error {
	for _, d := range c.ordered {
		t, err := c.registry.Resolve(d.Signature)
		if err != nil {
			return err
		}
		d.GoType = t
	}

	local := NewBuilder(c.registry)
	for _, d := range c.ordered {
		expected, err := local.Describe(d.GoType)
		if err != nil {
			return err
		}
		if err := compare(expected, d); err != nil {
			return errors.NewProtocolError("inconsistent catalog", err)
		}
	}
	return nil
}

func compare(expected, actual *TypeDescriptor) error {
	if expected.Signature != actual.Signature {
		return fmt.Errorf("%q resolves to %q", actual.Signature, expected.Signature)
	}
	if expected.Kind != actual.Kind {
		return fmt.Errorf("%q is %s locally, %s in the stream", actual.Signature, expected.Kind, actual.Kind)
	}
	if expected.HasCustomCodec != actual.HasCustomCodec {
		return fmt.Errorf("%q codec presence differs", actual.Signature)
	}

	switch actual.Kind {
	case KindArray:
		if expected.Component.Signature != actual.Component.Signature {
			return fmt.Errorf("%q component is %q locally, %q in the stream", actual.Signature, expected.Component.Signature, actual.Component.Signature)
		}
	case KindStructured:
		if len(expected.Fields) != len(actual.Fields) {
			return fmt.Errorf("%q has %d fields locally, %d in the stream", actual.Signature, len(expected.Fields), len(actual.Fields))
		}
		for i, field := range actual.Fields {
			want := expected.Fields[i]
			if want.Name != field.Name || want.Type.Signature != field.Type.Signature {
				return fmt.Errorf("%q field %d is %s %s locally, %s %s in the stream",
					actual.Signature, i, want.Name, want.Type.Signature, field.Name, field.Type.Signature)
			}
		}
		if signatureOf(expected.Super) != signatureOf(actual.Super) {
			return fmt.Errorf("%q supertype is %q locally, %q in the stream", actual.Signature, signatureOf(expected.Super), signatureOf(actual.Super))
		}
	}
	return nil
}

func signatureOf(d *TypeDescriptor) string {
	if d == nil {
		return ""
	}
	return d.Signature
}

// Lookup returns the descriptor with the given handle, builtins included
func (c *Catalog) Lookup(handle uint32) (*TypeDescriptor, bool) {
	if d, ok := Builtin(handle); ok {
		return d, true
	}
	d, ok := c.byHandle[handle]
	return d, ok
}

// Descriptors returns the transmitted descriptors in stream order
func (c *Catalog) Descriptors() []*TypeDescriptor {
	return c.ordered
}

// Len returns the number of transmitted descriptors
func (c *Catalog) Len() int {
	return len(c.ordered)
}
