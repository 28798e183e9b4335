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

package graph

import (
	"fmt"
	"io"
	"reflect"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/hook"
	"github.com/jppf-grid/JPPF-sub017/internal/catalog"
	"github.com/jppf-grid/JPPF-sub017/internal/handles"
	"github.com/jppf-grid/JPPF-sub017/internal/ledger"
	"github.com/jppf-grid/JPPF-sub017/internal/metric"
	"github.com/jppf-grid/JPPF-sub017/internal/types"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

// Decoder reads object graphs from an io.Reader. Consecutive streams are read
// by consecutive Decode calls. A Decoder is not safe for concurrent use.
type Decoder struct {
	r           *wire.Reader
	config      *Config
	graphMetric *metric.GraphMetric
	stats       Stats
}

// NewDecoder creates a Decoder reading from r
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	config := NewConfig(opts...)
	return newDecoder(r, config, config.graphMetric())
}

func newDecoder(r io.Reader, config *Config, graphMetric *metric.GraphMetric) *Decoder {
	return &Decoder{
		r:           wire.NewReader(r, wire.WithMaxStringLength(config.maxStringLength)),
		config:      config,
		graphMetric: graphMetric,
	}
}

// Decode reads the next stream and returns its root. Structs come back as
// pointers, so the root of a stream written from a struct value is a *T.
func (d *Decoder) Decode() (any, error) {
	id := sessionCounter.Inc()
	start := d.r.Count()

	session := newDecodeSession(d.config, d.r)
	root, err := session.run()

	d.stats = Stats{
		Objects: session.records,
		Bytes:   d.r.Count() - start,
	}
	if session.catalog != nil {
		d.stats.Descriptors = session.catalog.Len()
	}
	report(d.config.logger, d.graphMetric, metric.Decode, id, d.stats, err)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// Stats returns the statistics of the last stream read
func (d *Decoder) Stats() Stats {
	return d.stats
}

// decodeSession holds the state of one stream
type decodeSession struct {
	in         *wire.Reader
	registry   types.Registry
	catalog    *catalog.Catalog
	objects    *handles.Objects
	ledger     *ledger.Ledger
	maxArray   int
	maxObjects int
	records    int
	// err is the first error raised by a completion running after the call that queued it
	err error
}

func newDecodeSession(config *Config, in *wire.Reader) *decodeSession {
	return &decodeSession{
		in:         in,
		registry:   config.registry,
		objects:    handles.NewObjects(),
		ledger:     ledger.New(),
		maxArray:   config.maxArrayLength,
		maxObjects: config.maxObjects,
	}
}

func (s *decodeSession) run() (any, error) {
	var header [4]byte
	s.in.Data(header[:])
	if err := s.in.Error(); err != nil {
		return nil, errors.NewSourceError("read magic", err)
	}
	if header != magic {
		return nil, errors.NewProtocolErrorf("bad magic %q", header[:])
	}

	var err error
	if s.catalog, err = catalog.Read(s.in, s.registry, s.maxObjects); err != nil {
		return nil, err
	}

	root := handles.Null
	for {
		handle := s.in.Uint32()
		if err := s.in.Error(); err != nil {
			return nil, errors.NewSourceError("read record handle", err)
		}
		if handle == handles.Sentinel {
			break
		}
		if handle == handles.Null {
			return nil, errors.NewProtocolErrorf("record %d uses the null handle", s.records+1)
		}
		if s.maxObjects > 0 && s.records >= s.maxObjects {
			return nil, errors.NewProtocolErrorf("stream holds more than %d objects", s.maxObjects)
		}
		if root == handles.Null {
			root = handle
		}
		if err := s.readRecord(handle); err != nil {
			return nil, err
		}
		if s.err != nil {
			return nil, s.err
		}
	}

	if s.ledger.Len() > 0 {
		return nil, errors.NewProtocolErrorf("dangling references to handles %v", s.ledger.Handles())
	}
	if root == handles.Null {
		return nil, nil
	}
	value, ok := s.objects.Get(root)
	if !ok {
		return nil, errors.NewProtocolErrorf("root handle %d is never defined", root)
	}
	return value.Interface(), nil
}

func (s *decodeSession) readRecord(handle uint32) error {
	typeHandle := s.in.Uint32()
	if err := s.in.Error(); err != nil {
		return errors.NewSourceError("read type handle", err)
	}
	desc, ok := s.catalog.Lookup(typeHandle)
	if !ok {
		return errors.NewProtocolErrorf("record %d references unknown type handle %d", handle, typeHandle)
	}
	s.records++

	t := desc.GoType
	switch {
	case desc.HasCustomCodec:
		return s.readHooked(handle, t)
	case desc.Kind == catalog.KindPrimitive:
		v := reflect.New(t).Elem()
		readPrimitive(s.in, v)
		if err := s.in.Error(); err != nil {
			return errors.NewSourceError(fmt.Sprintf("read record %d", handle), err)
		}
		return s.define(handle, v)
	case desc.Kind == catalog.KindArray && t.Kind() == reflect.Slice:
		return s.readSlice(handle, t)
	case desc.Kind == catalog.KindStructured && t.Kind() == reflect.Struct:
		ptr := reflect.New(t)
		if err := s.define(handle, ptr); err != nil {
			return err
		}
		if err := s.readStruct(ptr.Elem(), nil); err != nil {
			return err
		}
		return s.sourceError(handle)
	default:
		return errors.NewProtocolErrorf("record %d has type %q which cannot be an object", handle, desc.Signature)
	}
}

// define registers the instance of handle and patches the places waiting for it
func (s *decodeSession) define(handle uint32, v reflect.Value) error {
	if err := s.objects.Put(handle, v); err != nil {
		return err
	}
	return s.ledger.Resolve(handle, v)
}

func (s *decodeSession) sourceError(handle uint32) error {
	return errors.NewSourceError(fmt.Sprintf("read record %d", handle), s.in.Error())
}

func (s *decodeSession) readSlice(handle uint32, t reflect.Type) error {
	size := s.in.Int32()
	if err := s.in.Error(); err != nil {
		return errors.NewSourceError("read array length", err)
	}
	if size < 0 || (s.maxArray > 0 && int(size) > s.maxArray) {
		return errors.NewProtocolErrorf("record %d has an invalid array length %d", handle, size)
	}

	elem := t.Elem()
	if elem.Kind() == reflect.Uint8 && !s.hasCodec(elem) {
		data := s.in.Block(int(size))
		if err := s.sourceError(handle); err != nil {
			return err
		}
		slice := reflect.MakeSlice(t, int(size), int(size))
		copy(slice.Bytes(), data)
		return s.define(handle, slice)
	}

	slice := reflect.MakeSlice(t, int(size), int(size))
	if err := s.define(handle, slice); err != nil {
		return err
	}
	for i := range int(size) {
		if err := s.readValue(slice.Index(i), ledger.ElementRef{Array: slice, Index: i}, nil); err != nil {
			return err
		}
	}
	return s.sourceError(handle)
}

// readHooked decodes the record of a codec type. Pointers and maps are
// registered before the codec runs so the body may reference them. Other
// values are registered once the codec and every reference it read are complete.
func (s *decodeSession) readHooked(handle uint32, t reflect.Type) error {
	switch t.Kind() {
	case reflect.Pointer:
		ptr := reflect.New(t.Elem())
		if err := s.define(handle, ptr); err != nil {
			return err
		}
		return s.runCodec(ptr.Elem(), nil)
	case reflect.Map:
		shell := reflect.New(t).Elem()
		shell.Set(reflect.MakeMap(t))
		if err := s.define(handle, shell); err != nil {
			return err
		}
		return s.runCodec(shell, nil)
	default:
		v := reflect.New(t).Elem()
		complete := newJoin(func() {
			if err := s.define(handle, v); err != nil && s.err == nil {
				s.err = err
			}
		})
		if err := s.runCodec(v, complete); err != nil {
			return err
		}
		complete.arm()
		return nil
	}
}

func (s *decodeSession) runCodec(v reflect.Value, complete *join) error {
	codec, ok := s.registry.Codec(v.Type())
	if !ok {
		return errors.NewUnsupportedTypeError(v.Type().String(), "no codec is registered")
	}

	op := "decode " + v.Type().String()
	if err := codec.Decode(objectReader{Reader: s.in, session: s, complete: complete}, v); err != nil {
		switch {
		case s.in.Error() != nil:
			return errors.NewSourceError(op, s.in.Error())
		case typed(err):
			return err
		default:
			return errors.NewProtocolError(op, err)
		}
	}
	return errors.NewSourceError(op, s.in.Error())
}

func (s *decodeSession) hasCodec(t reflect.Type) bool {
	_, ok := s.registry.Codec(t)
	return ok
}

// readValue reads into site what writeValue wrote for the static type of
// site. A reference to an object not decoded yet is queued in the ledger
// under patch, or under a SiteRef when patch is nil. done, when not nil,
// runs once site holds its final value.
func (s *decodeSession) readValue(site reflect.Value, patch ledger.Patch, done func()) error {
	t := site.Type()
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		return s.readReference(site, patch, done)
	}
	if s.hasCodec(t) {
		return s.readReference(site, patch, done)
	}

	switch {
	case catalog.IsPrimitive(t):
		readPrimitive(s.in, site)
	case t.Kind() == reflect.Struct:
		return s.readStruct(site, done)
	case t.Kind() == reflect.Array:
		complete := newJoin(done)
		for i := range t.Len() {
			if err := s.readValue(site.Index(i), ledger.ElementRef{Array: site, Index: i}, complete.hold()); err != nil {
				return err
			}
		}
		complete.arm()
		return nil
	default:
		return errors.NewUnsupportedTypeError(t.String(), "")
	}

	if done != nil {
		done()
	}
	return nil
}

func (s *decodeSession) readReference(site reflect.Value, patch ledger.Patch, done func()) error {
	handle := s.in.Uint32()
	if err := s.in.Error(); err != nil {
		return errors.NewSourceError("read reference", err)
	}

	if handle != handles.Null {
		target, ok := s.objects.Get(handle)
		if !ok {
			if patch == nil {
				patch = ledger.SiteRef{Site: site}
			}
			s.ledger.Add(handle, patch, done)
			return nil
		}
		if err := ledger.Assign(site, target); err != nil {
			return err
		}
	}

	if done != nil {
		done()
	}
	return nil
}

// readStruct reads the own fields of base, then those of its supertype chain
func (s *decodeSession) readStruct(base reflect.Value, done func()) error {
	complete := newJoin(done)
	shape := s.registry.Shape(base.Type())
	for _, field := range shape.Fields {
		patch := ledger.FieldRef{Owner: base, Field: field}
		if err := s.readValue(field.Value(base), patch, complete.hold()); err != nil {
			return err
		}
	}
	if shape.Super != nil {
		if err := s.readStruct(shape.Super.Value(base), complete.hold()); err != nil {
			return err
		}
	}
	complete.arm()
	return nil
}

// objectReader is the hook.Reader handed to codecs
type objectReader struct {
	*wire.Reader
	session  *decodeSession
	complete *join
}

var _ hook.Reader = objectReader{}

// ReadValue implements hook.Reader
func (r objectReader) ReadValue(site reflect.Value, done func()) error {
	if !site.CanSet() {
		return fmt.Errorf("cannot read into an unsettable %s", site.Type())
	}
	return r.session.readValue(site, nil, r.complete.wrap(done))
}
