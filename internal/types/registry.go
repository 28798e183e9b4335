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

package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jppf-grid/JPPF-sub017/codecs"
	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/hook"
	"github.com/jppf-grid/JPPF-sub017/internal/accessor"
)

// Registry binds Go types to the names they travel under, and to the codecs
// taking over their encoding. It also caches the field layout of struct types.
// A Registry is safe for concurrent use.
type Registry interface {
	// Register binds the given types, and every type reachable from them through
	// fields, elements, keys and pointers, to their default names. A value may be a
	// reflect.Type, a pointer to a zero value, or a value.
	Register(values ...any) error
	// RegisterName binds the type of v to name instead of its default name
	RegisterName(name string, v any) error
	// RegisterCodec binds the type of v to codec
	RegisterCodec(v any, codec hook.Codec) error
	// Deregister removes the type of v from the registry
	Deregister(v any)
	// Exists return true when the type of v is in the registry
	Exists(v any) bool
	// TypesMap returns a copy of the registered names
	TypesMap() map[string]reflect.Type
	// TypeOf returns the type bound to name
	TypeOf(name string) (reflect.Type, bool)
	// Signature returns the name t travels under
	Signature(t reflect.Type) (string, error)
	// Resolve maps a signature back to a local type
	Resolve(signature string) (reflect.Type, error)
	// Codec returns the codec handling t, if any
	Codec(t reflect.Type) (hook.Codec, bool)
	// Shape returns the cached field layout of the struct type t
	Shape(t reflect.Type) *accessor.Shape
}

// builtins are the predeclared types every registry knows
var builtins = map[string]reflect.Type{
	"bool":    reflect.TypeFor[bool](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"uint8":   reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"int":     reflect.TypeFor[int](),
	"uint":    reflect.TypeFor[uint](),
	"float32": reflect.TypeFor[float32](),
	"float64": reflect.TypeFor[float64](),
	"string":  reflect.TypeFor[string](),
	"any":     reflect.TypeFor[any](),
}

type registry struct {
	mu       *sync.RWMutex
	typesMap map[string]reflect.Type
	names    map[reflect.Type]string
	codecs   map[reflect.Type]hook.Codec
	resolved map[reflect.Type]hook.Codec
	shapes   map[reflect.Type]*accessor.Shape
}

var _ Registry = (*registry)(nil)

// NewRegistry creates a new types registry with codecs for time.Time and
// uuid.UUID already bound.
func NewRegistry() Registry {
	r := &registry{
		mu:       &sync.RWMutex{},
		typesMap: make(map[string]reflect.Type),
		names:    make(map[reflect.Type]string),
		codecs:   make(map[reflect.Type]hook.Codec),
		resolved: make(map[reflect.Type]hook.Codec),
		shapes:   make(map[reflect.Type]*accessor.Shape),
	}

	_ = r.RegisterCodec(reflect.TypeFor[time.Time](), codecs.Time{})
	_ = r.RegisterCodec(reflect.TypeFor[uuid.UUID](), codecs.UUID{})
	_ = r.Register(reflect.TypeFor[time.Duration]())
	return r
}

// Register binds the given types and the types reachable from them
func (r *registry) Register(values ...any) error {
	for _, v := range values {
		rtype := reflectType(v)
		if rtype == nil {
			return fmt.Errorf("%w: nil value", errors.ErrInvalidRegistration)
		}

		r.mu.Lock()
		err := r.walk(rtype, make(map[reflect.Type]struct{}))
		r.mu.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterName binds the type of v to name
func (r *registry) RegisterName(name string, v any) error {
	rtype := reflectType(v)
	name = strings.TrimSpace(name)
	if rtype == nil || name == "" {
		return fmt.Errorf("%w: name and value are required", errors.ErrInvalidRegistration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.typesMap[name]; ok && existing != rtype {
		return fmt.Errorf("%w: %s is bound to %s", errors.ErrNameAlreadyRegistered, name, existing)
	}
	if _, ok := builtins[name]; ok {
		return fmt.Errorf("%w: %s is a builtin", errors.ErrNameAlreadyRegistered, name)
	}
	if old, ok := r.names[rtype]; ok {
		delete(r.typesMap, old)
	}
	r.typesMap[name] = rtype
	r.names[rtype] = name
	return r.walk(rtype, make(map[reflect.Type]struct{}))
}

// RegisterCodec binds the type of v to codec
func (r *registry) RegisterCodec(v any, codec hook.Codec) error {
	rtype := reflectType(v)
	if rtype == nil || codec == nil {
		return fmt.Errorf("%w: type and codec are required", errors.ErrInvalidRegistration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codecs[rtype]; ok {
		return fmt.Errorf("%w: %s", errors.ErrCodecAlreadyRegistered, rtype)
	}
	if name, ok := defaultName(rtype); ok {
		if err := r.bind(name, rtype); err != nil {
			return err
		}
	}
	r.codecs[rtype] = codec
	clear(r.resolved)
	clear(r.shapes)
	return nil
}

// Deregister removes the type of v from the registry
func (r *registry) Deregister(v any) {
	rtype := reflectType(v)
	if rtype == nil {
		return
	}

	r.mu.Lock()
	if name, ok := r.names[rtype]; ok {
		delete(r.typesMap, name)
		delete(r.names, rtype)
	}
	if _, ok := r.codecs[rtype]; ok {
		delete(r.codecs, rtype)
		clear(r.resolved)
		clear(r.shapes)
	}
	r.mu.Unlock()
}

// Exists return true when a given object is in the registry
func (r *registry) Exists(v any) bool {
	rtype := reflectType(v)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[rtype]
	return ok
}

// TypesMap returns a copy of the registered names
func (r *registry) TypesMap() map[string]reflect.Type {
	r.mu.RLock()
	out := make(map[string]reflect.Type, len(r.typesMap))
	for name, rtype := range r.typesMap {
		out[name] = rtype
	}
	r.mu.RUnlock()
	return out
}

// TypeOf returns the type bound to name
func (r *registry) TypeOf(name string) (reflect.Type, bool) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if out, ok := r.typesMap[name]; ok {
		return out, true
	}
	out, ok := builtins[name]
	return out, ok
}

// Signature returns the name t travels under
func (r *registry) Signature(t reflect.Type) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.signature(t)
}

// Resolve maps a signature back to a local type
func (r *registry) Resolve(signature string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolve(signature)
}

// Codec returns the codec handling t. An explicitly registered codec wins,
// then maps, protobuf messages and encoding.BinaryMarshaler types get the
// matching built-in codec.
func (r *registry) Codec(t reflect.Type) (hook.Codec, bool) {
	r.mu.RLock()
	codec, ok := r.resolved[t]
	r.mu.RUnlock()
	if ok {
		return codec, codec != nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	codec = r.lookupCodec(t)
	r.resolved[t] = codec
	return codec, codec != nil
}

// Shape returns the cached field layout of the struct type t
func (r *registry) Shape(t reflect.Type) *accessor.Shape {
	r.mu.RLock()
	shape, ok := r.shapes[t]
	r.mu.RUnlock()
	if ok {
		return shape
	}

	shape = accessor.Analyze(t, func(field reflect.Type) bool {
		_, ok := r.Codec(field)
		return ok
	})

	r.mu.Lock()
	if existing, ok := r.shapes[t]; ok {
		shape = existing
	} else {
		r.shapes[t] = shape
	}
	r.mu.Unlock()
	return shape
}

func (r *registry) lookupCodec(t reflect.Type) hook.Codec {
	if codec, ok := r.codecs[t]; ok {
		return codec
	}
	switch {
	case t.Kind() == reflect.Map:
		return codecs.Map{}
	case codecs.IsProto(t):
		return codecs.Proto{}
	case codecs.IsBinary(t):
		return codecs.Binary{}
	default:
		return nil
	}
}

// opaque reports whether the inside of t is left to a codec
func (r *registry) opaque(t reflect.Type) bool {
	if _, ok := r.codecs[t]; ok {
		return true
	}
	return codecs.IsProto(t) || codecs.IsBinary(t)
}

func (r *registry) walk(t reflect.Type, seen map[reflect.Type]struct{}) error {
	if _, ok := seen[t]; ok {
		return nil
	}
	seen[t] = struct{}{}

	if name, ok := defaultName(t); ok {
		if err := r.bind(name, t); err != nil {
			return err
		}
	}

	if r.opaque(t) {
		return nil
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return r.walk(t.Elem(), seen)
	case reflect.Map:
		if err := r.walk(t.Key(), seen); err != nil {
			return err
		}
		return r.walk(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			field := t.Field(i)
			if accessor.Transient(field) {
				continue
			}
			if err := r.walk(field.Type, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// bind records name for t unless t already has a name
func (r *registry) bind(name string, t reflect.Type) error {
	if _, ok := r.names[t]; ok {
		return nil
	}
	if existing, ok := r.typesMap[name]; ok && existing != t {
		return fmt.Errorf("%w: %s is bound to %s", errors.ErrNameAlreadyRegistered, name, existing)
	}
	r.typesMap[name] = t
	r.names[t] = name
	return nil
}

func (r *registry) signature(t reflect.Type) (string, error) {
	if name, ok := r.names[t]; ok {
		return name, nil
	}

	if t.Kind() == reflect.Interface {
		return "any", nil
	}

	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name(), nil
		}
		return "", errors.NewUnsupportedTypeError(t.String(), "type is not registered")
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		elem, err := r.signature(t.Elem())
		if err != nil {
			return "", err
		}
		switch t.Kind() {
		case reflect.Pointer:
			return "*" + elem, nil
		case reflect.Slice:
			return "[]" + elem, nil
		default:
			return "[" + strconv.Itoa(t.Len()) + "]" + elem, nil
		}
	case reflect.Map:
		key, err := r.signature(t.Key())
		if err != nil {
			return "", err
		}
		elem, err := r.signature(t.Elem())
		if err != nil {
			return "", err
		}
		return "map[" + key + "]" + elem, nil
	default:
		return "", errors.NewUnsupportedTypeError(t.String(), "type is not registered")
	}
}

func (r *registry) resolve(signature string) (reflect.Type, error) {
	if t, ok := r.typesMap[signature]; ok {
		return t, nil
	}
	if t, ok := builtins[signature]; ok {
		return t, nil
	}

	switch {
	case strings.HasPrefix(signature, "*"):
		elem, err := r.resolve(signature[1:])
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(signature, "[]"):
		elem, err := r.resolve(signature[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(signature, "["):
		end := strings.IndexByte(signature, ']')
		if end < 0 {
			break
		}
		length, err := strconv.Atoi(signature[1:end])
		if err != nil || length < 0 {
			break
		}
		elem, err := r.resolve(signature[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(length, elem), nil
	case strings.HasPrefix(signature, "map["):
		end := closingBracket(signature[4:])
		if end < 0 {
			break
		}
		key, err := r.resolve(signature[4 : 4+end])
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, errors.NewUnsupportedTypeError(signature, "map key is not comparable")
		}
		elem, err := r.resolve(signature[4+end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	}
	return nil, errors.NewUnsupportedTypeError(signature, "type is not registered")
}

// closingBracket returns the index of the ']' closing an already opened '['
func closingBracket(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// defaultName returns the name a type is registered under when none is given
func defaultName(t reflect.Type) (string, bool) {
	switch {
	case t.Kind() == reflect.Interface:
		return "", false
	case t.Name() != "" && t.PkgPath() != "":
		return t.PkgPath() + "." + t.Name(), true
	case t.Name() == "" && t.Kind() == reflect.Struct:
		return t.String(), true
	default:
		return "", false
	}
}

// reflectType returns the runtime type registered for v
func reflectType(v any) reflect.Type {
	switch _type := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		return _type
	default:
		rtype := reflect.TypeOf(v)
		if rtype.Kind() == reflect.Pointer {
			return rtype.Elem()
		}
		return rtype
	}
}

// TypeName returns the default name of the type of v
func TypeName(v any) string {
	rtype := reflectType(v)
	if rtype == nil {
		return ""
	}
	if name, ok := defaultName(rtype); ok {
		return name
	}
	return rtype.String()
}
