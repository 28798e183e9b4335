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
	"context"
	stderrors "errors"

	"github.com/jppf-grid/JPPF-sub017/errors"
	"github.com/jppf-grid/JPPF-sub017/internal/metric"
	"github.com/jppf-grid/JPPF-sub017/log"
)

// report logs and records the outcome of one session
func report(logger log.Logger, graphMetric *metric.GraphMetric, op metric.Direction, id uint64, stats Stats, err error) {
	if graphMetric != nil {
		graphMetric.Record(context.Background(), op, int64(stats.Objects), stats.Bytes, errorKind(err))
	}

	if err != nil {
		logger.With("session", id, "kind", errorKind(err)).
			Errorf("%s session %d failed after %d objects: %v", op, id, stats.Objects, err)
		return
	}
	if logger.Enabled(log.DebugLevel) {
		logger.Debugf("%s session %d: %d objects, %d descriptors, %d bytes",
			op, id, stats.Objects, stats.Descriptors, stats.Bytes)
	}
}

// errorKind names the class of err for metrics, empty for nil
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, errors.ErrUnsupportedType):
		return "unsupported"
	case stderrors.Is(err, errors.ErrProtocol):
		return "protocol"
	case stderrors.Is(err, errors.ErrIO):
		return "io"
	default:
		return "other"
	}
}

// typed reports whether err already carries one of the codec error types
func typed(err error) bool {
	return stderrors.Is(err, errors.ErrUnsupportedType) ||
		stderrors.Is(err, errors.ErrProtocol) ||
		stderrors.Is(err, errors.ErrIO)
}

// join runs done once every held callback has run and arm has been called.
// A nil join holds nothing, so callers that need no completion pay nothing.
type join struct {
	pending int
	armed   bool
	done    func()
}

func newJoin(done func()) *join {
	if done == nil {
		return nil
	}
	return &join{done: done}
}

// hold returns a callback that must run exactly once
func (j *join) hold() func() {
	if j == nil {
		return nil
	}
	j.pending++
	return func() {
		j.pending--
		j.fire()
	}
}

// wrap holds j until done has run
func (j *join) wrap(done func()) func() {
	if j == nil {
		return done
	}
	release := j.hold()
	return func() {
		if done != nil {
			done()
		}
		release()
	}
}

// arm tells j that no further callbacks will be held
func (j *join) arm() {
	if j == nil {
		return
	}
	j.armed = true
	j.fire()
}

func (j *join) fire() {
	if j.armed && j.pending == 0 && j.done != nil {
		done := j.done
		j.done = nil
		done()
	}
}
