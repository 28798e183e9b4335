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
	"google.golang.org/protobuf/proto"

	"github.com/jppf-grid/JPPF-sub017/codecs"
)

// GlobalRegistry is the registry used by the package level graph functions
// when no registry is configured.
var GlobalRegistry = NewRegistry()

// RegisterProtoMessages binds each message type to the protobuf codec in the
// global registry. Pass a pointer to a zero message.
func RegisterProtoMessages(messages ...proto.Message) error {
	for _, message := range messages {
		if GlobalRegistry.Exists(message) {
			continue
		}
		if err := GlobalRegistry.RegisterCodec(message, codecs.Proto{}); err != nil {
			return err
		}
	}
	return nil
}
