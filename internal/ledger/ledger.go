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

package ledger

import (
	"maps"
	"reflect"
	"slices"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/internal/accessor"
)

// Patch writes a decoded object into the place that referenced it before it existed
type Patch interface {
	Apply(target reflect.Value) error
}

// FieldRef patches a field of a struct
type FieldRef struct {
	Owner reflect.Value
	Field *accessor.Field
}

// Apply implements Patch
func (p FieldRef) Apply(target reflect.Value) error {
	return assign(p.Field.Value(p.Owner), target)
}

// ElementRef patches an element of a slice or array
type ElementRef struct {
	Array reflect.Value
	Index int
}

// Apply implements Patch
func (p ElementRef) Apply(target reflect.Value) error {
	return assign(p.Array.Index(p.Index), target)
}

// SiteRef patches any addressable value
type SiteRef struct {
	Site reflect.Value
}

// Apply implements Patch
func (p SiteRef) Apply(target reflect.Value) error {
	return assign(p.Site, target)
}

type entry struct {
	patch Patch
	then  func()
}

// Ledger records references to objects that are not decoded yet
type Ledger struct {
	pending map[uint32][]entry
	count   int
}

// New creates an empty Ledger
func New() *Ledger {
	return &Ledger{pending: make(map[uint32][]entry)}
}

// Add records that p waits for handle. then, when not nil, runs right after p is applied.
func (l *Ledger) Add(handle uint32, p Patch, then func()) {
	l.pending[handle] = append(l.pending[handle], entry{patch: p, then: then})
	l.count++
}

// Resolve applies and forgets every patch waiting for handle
func (l *Ledger) Resolve(handle uint32, target reflect.Value) error {
	entries, ok := l.pending[handle]
	if !ok {
		return nil
	}
	delete(l.pending, handle)
	l.count -= len(entries)

	for _, e := range entries {
		if err := e.patch.Apply(target); err != nil {
			return err
		}
		if e.then != nil {
			e.then()
		}
	}
	return nil
}

// Len returns the number of patches not applied yet
func (l *Ledger) Len() int {
	return l.count
}

// Handles returns the handles still waited for, in ascending order
func (l *Ledger) Handles() []uint32 {
	return slices.Sorted(maps.Keys(l.pending))
}

// Assign stores target into site when its type allows it
func Assign(site, target reflect.Value) error {
	return assign(site, target)
}

func assign(site, target reflect.Value) error {
	if !target.Type().AssignableTo(site.Type()) {
		return errors.NewProtocolErrorf("cannot assign %s to %s", target.Type(), site.Type())
	}
	site.Set(target)
	return nil
}
