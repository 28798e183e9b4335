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
	"google.golang.org/protobuf/proto"

	"github.com/jppf-grid/JPPF-sub017/hook"
	"github.com/jppf-grid/JPPF-sub017/internal/types"
)

// Registry binds Go types to the names they travel under and to their codecs
type Registry = types.Registry

// DefaultRegistry is used when no registry is configured
var DefaultRegistry = types.GlobalRegistry

// NewRegistry creates a Registry with codecs for time.Time and uuid.UUID
func NewRegistry() Registry {
	return types.NewRegistry()
}

// Register binds the given types, and every type reachable from them, in DefaultRegistry.
// Pass a pointer to a zero value or a reflect.Type.
func Register(values ...any) error {
	return DefaultRegistry.Register(values...)
}

// RegisterName binds the type of v to name in DefaultRegistry
func RegisterName(name string, v any) error {
	return DefaultRegistry.RegisterName(name, v)
}

// RegisterCodec binds the type of v to codec in DefaultRegistry
func RegisterCodec(v any, codec hook.Codec) error {
	return DefaultRegistry.RegisterCodec(v, codec)
}

// RegisterProtoMessages binds protobuf message types to the protobuf codec in DefaultRegistry
func RegisterProtoMessages(messages ...proto.Message) error {
	return types.RegisterProtoMessages(messages...)
}
