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

package errors

import (
	"errors"
	"fmt"

	"github.com/jppf-grid/JPPF-sub017/wire"
)

var (
	// ErrUnsupportedType is returned when a value's type cannot be described in the
	// type catalog, or when a transmitted type signature cannot be resolved locally.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProtocol is returned when a stream violates the wire format: bad magic,
	// an inconsistent catalog, a duplicate handle or unresolved pending references.
	ErrProtocol = errors.New("protocol error")

	// ErrIO is returned when the underlying byte sink or source fails.
	ErrIO = errors.New("i/o error")

	// ErrInvalidCompression is returned when a frame names an unknown compression algorithm.
	ErrInvalidCompression = errors.New("invalid compression")

	// ErrChecksumMismatch is returned when the checksum of a decompressed frame does not match.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidFrame is returned when a frame is too short or carries an unknown version.
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrCodecAlreadyRegistered is returned when a second codec is registered for the same type.
	ErrCodecAlreadyRegistered = errors.New("codec already registered")

	// ErrNameAlreadyRegistered is returned when a type name is already bound to another type.
	ErrNameAlreadyRegistered = errors.New("type name already registered")

	// ErrInvalidRegistration is returned when a nil value or an unnamed type is registered.
	ErrInvalidRegistration = errors.New("invalid registration")
)

// UnsupportedTypeError reports a type the codec cannot handle
type UnsupportedTypeError struct {
	// Type is the type name or signature
	Type string
	// Reason describes why the type is rejected
	Reason string
	// Err is the optional cause, such as the error returned by a codec
	Err error
}

// enforce compilation error
var _ error = (*UnsupportedTypeError)(nil)

// NewUnsupportedTypeError returns an instance of UnsupportedTypeError
func NewUnsupportedTypeError(typeName, reason string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Type: typeName, Reason: reason}
}

// NewCodecError returns an UnsupportedTypeError raised by the codec of typeName
func NewCodecError(typeName string, err error) *UnsupportedTypeError {
	return &UnsupportedTypeError{Type: typeName, Reason: err.Error(), Err: err}
}

// Error implements the standard error interface
func (e *UnsupportedTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported type %s", e.Type)
	}
	return fmt.Sprintf("unsupported type %s: %s", e.Type, e.Reason)
}

func (e *UnsupportedTypeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnsupportedType}
	}
	return []error{ErrUnsupportedType, e.Err}
}

// ProtocolError reports a malformed or inconsistent stream
type ProtocolError struct {
	// Reason describes the violation
	Reason string
	// Err is the optional cause
	Err error
}

var _ error = (*ProtocolError)(nil)

// NewProtocolError returns an instance of ProtocolError
func NewProtocolError(reason string, err error) *ProtocolError {
	return &ProtocolError{Reason: reason, Err: err}
}

// NewProtocolErrorf returns an instance of ProtocolError with a formatted reason
func NewProtocolErrorf(format string, args ...any) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

// Error implements the standard error interface
func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol error: %s", e.Reason)
	}
	return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
}

func (e *ProtocolError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProtocol}
	}
	return []error{ErrProtocol, e.Err}
}

// IOError wraps a failure of the underlying sink or source
type IOError struct {
	// Op is the operation that failed
	Op string
	// Err is the error returned by the sink or source
	Err error
}

var _ error = (*IOError)(nil)

// NewIOError returns an instance of IOError
func NewIOError(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

// Error implements the standard error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// NewSourceError turns an error raised while reading a stream into a typed error.
// Typed errors are returned unchanged, invalid length prefixes become a
// ProtocolError and anything else an IOError.
func NewSourceError(op string, err error) error {
	var (
		protocolErr    *ProtocolError
		ioErr          *IOError
		unsupportedErr *UnsupportedTypeError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &protocolErr), errors.As(err, &ioErr), errors.As(err, &unsupportedErr):
		return err
	case errors.Is(err, wire.ErrInvalidLength):
		return NewProtocolError(op, err)
	default:
		return NewIOError(op, err)
	}
}
