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
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/hook"
	"github.com/jppf-grid/JPPF-sub017/internal/bufferpool"
	"github.com/jppf-grid/JPPF-sub017/internal/catalog"
	"github.com/jppf-grid/JPPF-sub017/internal/handles"
	"github.com/jppf-grid/JPPF-sub017/internal/metric"
	"github.com/jppf-grid/JPPF-sub017/internal/queue"
	"github.com/jppf-grid/JPPF-sub017/internal/types"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

// Encoder writes object graphs to an io.Writer, one complete stream per
// Encode call. An Encoder is not safe for concurrent use.
type Encoder struct {
	w           *wire.Writer
	config      *Config
	graphMetric *metric.GraphMetric
	stats       Stats
}

// NewEncoder creates an Encoder writing to w
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	config := NewConfig(opts...)
	return newEncoder(w, config, config.graphMetric())
}

func newEncoder(w io.Writer, config *Config, graphMetric *metric.GraphMetric) *Encoder {
	return &Encoder{
		w:           wire.NewWriter(w),
		config:      config,
		graphMetric: graphMetric,
	}
}

// Encode writes the graph rooted at root. A nil root produces a stream
// without records. A struct value root is written as a pointer to a copy.
// Nothing reaches the writer when the graph holds an unsupported type.
func (e *Encoder) Encode(root any) error {
	id := sessionCounter.Inc()
	start := e.w.Count()

	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	session := newEncodeSession(e.config.registry, buf)
	err := session.run(root)
	if err == nil {
		err = e.emit(session, buf.Bytes())
	}

	e.stats = Stats{
		Objects:     session.records,
		Descriptors: session.catalog.Len(),
		Bytes:       e.w.Count() - start,
	}
	report(e.config.logger, e.graphMetric, metric.Encode, id, e.stats, err)
	return err
}

// Stats returns the statistics of the last stream written
func (e *Encoder) Stats() Stats {
	return e.stats
}

func (e *Encoder) emit(session *encodeSession, objects []byte) error {
	e.w.Data(magic[:])
	if err := session.catalog.WriteTo(e.w); err != nil {
		return errors.NewIOError("write catalog", err)
	}
	e.w.Data(objects)
	if err := e.w.Flush(); err != nil {
		return errors.NewIOError("write objects", err)
	}
	return nil
}

// pending is an object waiting for its record to be written
type pending struct {
	handle uint32
	value  reflect.Value
	desc   *catalog.TypeDescriptor
}

// encodeSession holds the state of one stream. Records are written to out
// while the graph is discovered, in the order handles are given.
type encodeSession struct {
	registry types.Registry
	catalog  *catalog.Builder
	table    *handles.Table
	work     *queue.Queue[pending]
	out      *wire.Writer
	records  int
}

func newEncodeSession(registry types.Registry, buf *bytes.Buffer) *encodeSession {
	return &encodeSession{
		registry: registry,
		catalog:  catalog.NewBuilder(registry),
		table:    handles.NewTable(),
		work:     queue.New[pending](),
		out:      wire.NewWriter(buf),
	}
}

func (s *encodeSession) run(root any) error {
	v := reflect.ValueOf(root)
	if v.IsValid() {
		if v.Kind() == reflect.Struct && !s.hasCodec(v.Type()) {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			v = ptr
		}
		if _, err := s.dynamic(v); err != nil {
			return err
		}
	}

	for {
		next, ok := s.work.Pop()
		if !ok {
			break
		}
		if err := s.writeRecord(next); err != nil {
			return err
		}
	}

	s.out.Uint32(handles.Sentinel)
	if err := s.out.Flush(); err != nil {
		return errors.NewIOError("buffer objects", err)
	}
	return nil
}

func (s *encodeSession) hasCodec(t reflect.Type) bool {
	_, ok := s.registry.Codec(t)
	return ok
}

// dynamic returns the handle of v, the value held by an interface
func (s *encodeSession) dynamic(v reflect.Value) (uint32, error) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return s.reference(v)
	case reflect.Struct, reflect.Array:
		if !s.hasCodec(v.Type()) {
			return handles.Null, errors.NewUnsupportedTypeError(v.Type().String(), "struct and array values cannot be held in an interface, use a pointer")
		}
	}
	return s.box(v)
}

// reference returns the handle of the object v, queueing it on first sight
func (s *encodeSession) reference(v reflect.Value) (uint32, error) {
	if v.IsNil() {
		return handles.Null, nil
	}
	desc, err := s.catalog.Describe(v.Type())
	if err != nil {
		return handles.Null, err
	}
	handle, fresh := s.table.Assign(v)
	if fresh {
		s.work.Push(pending{handle: handle, value: v, desc: desc})
	}
	return handle, nil
}

// box gives the value v a record of its own under a fresh handle
func (s *encodeSession) box(v reflect.Value) (uint32, error) {
	desc, err := s.catalog.Describe(v.Type())
	if err != nil {
		return handles.Null, err
	}
	handle := s.table.Next()
	s.work.Push(pending{handle: handle, value: v, desc: desc})
	return handle, nil
}

func (s *encodeSession) writeRecord(p pending) error {
	s.records++
	s.out.Uint32(p.handle)
	s.out.Uint32(p.desc.Handle)

	var err error
	switch {
	case p.desc.HasCustomCodec:
		err = s.writeHooked(p.value)
	case p.desc.Kind == catalog.KindPrimitive:
		writePrimitive(s.out, p.value)
	case p.desc.Kind == catalog.KindArray:
		err = s.writeSlice(p.value)
	default:
		err = s.writeStruct(p.value.Elem())
	}
	if err != nil {
		return err
	}
	if err := s.out.Error(); err != nil {
		return errors.NewIOError(fmt.Sprintf("write record %d", p.handle), err)
	}
	return nil
}

// writeHooked hands the body to the codec. A pointer to a codec type is
// encoded through the codec of the pointed type.
func (s *encodeSession) writeHooked(v reflect.Value) error {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	codec, ok := s.registry.Codec(v.Type())
	if !ok {
		return errors.NewUnsupportedTypeError(v.Type().String(), "codec is no longer registered")
	}
	if err := codec.Encode(objectWriter{Writer: s.out, session: s}, v); err != nil {
		switch {
		case typed(err):
			return err
		case s.out.Error() != nil:
			return errors.NewIOError("encode "+v.Type().String(), s.out.Error())
		default:
			return errors.NewCodecError(v.Type().String(), err)
		}
	}
	return nil
}

// writeValue writes v according to its static type
func (s *encodeSession) writeValue(v reflect.Value) error {
	t := v.Type()
	switch t.Kind() {
	case reflect.Interface:
		handle := handles.Null
		if !v.IsNil() {
			var err error
			if handle, err = s.dynamic(v.Elem()); err != nil {
				return err
			}
		}
		s.out.Uint32(handle)
		return nil
	case reflect.Pointer, reflect.Map, reflect.Slice:
		handle, err := s.reference(v)
		if err != nil {
			return err
		}
		s.out.Uint32(handle)
		return nil
	}

	if s.hasCodec(t) {
		handle, err := s.box(v)
		if err != nil {
			return err
		}
		s.out.Uint32(handle)
		return nil
	}

	if catalog.IsPrimitive(t) {
		writePrimitive(s.out, v)
		return nil
	}

	if _, err := s.catalog.Describe(t); err != nil {
		return err
	}
	switch t.Kind() {
	case reflect.Struct:
		return s.writeStruct(v)
	case reflect.Array:
		for i := range v.Len() {
			if err := s.writeValue(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.NewUnsupportedTypeError(t.String(), "")
	}
}

// writeStruct writes the own fields of v, then those of its supertype chain
func (s *encodeSession) writeStruct(v reflect.Value) error {
	if !v.CanAddr() {
		addressable := reflect.New(v.Type()).Elem()
		addressable.Set(v)
		v = addressable
	}

	shape := s.registry.Shape(v.Type())
	for _, field := range shape.Fields {
		if err := s.writeValue(field.Value(v)); err != nil {
			return err
		}
	}
	if shape.Super != nil {
		return s.writeStruct(shape.Super.Value(v))
	}
	return nil
}

// writeSlice writes the length then every element. Byte slices are written in one block.
func (s *encodeSession) writeSlice(v reflect.Value) error {
	s.out.Int32(int32(v.Len()))
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Uint8 && !s.hasCodec(elem) {
		s.out.Data(v.Bytes())
		return nil
	}
	for i := range v.Len() {
		if err := s.writeValue(v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// objectWriter is the hook.Writer handed to codecs
type objectWriter struct {
	*wire.Writer
	session *encodeSession
}

var _ hook.Writer = objectWriter{}

// WriteValue implements hook.Writer
func (w objectWriter) WriteValue(v reflect.Value) error {
	if !v.IsValid() {
		return errors.NewUnsupportedTypeError("invalid", "values written by a codec must be typed")
	}
	return w.session.writeValue(v)
}
