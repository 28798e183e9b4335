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

// Package metric records serialization activity through OpenTelemetry
package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/jppf-grid/JPPF-sub017/graph"

// Direction labels a measurement
type Direction string

const (
	// Encode is used for serialization measurements
	Encode Direction = "encode"
	// Decode is used for deserialization measurements
	Decode Direction = "decode"
)

// Option configures a Provider
type Option func(*Provider)

// WithMeterProvider overrides the global MeterProvider. nil is ignored.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(p *Provider) {
		if provider != nil {
			p.meterProvider = provider
		}
	}
}

// Provider holds the meter used by the graph codec
type Provider struct {
	meterProvider metric.MeterProvider
	meter         metric.Meter
}

// New creates a Provider backed by the global MeterProvider unless overridden
func New(opts ...Option) *Provider {
	provider := &Provider{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(provider)
	}
	provider.meter = provider.meterProvider.Meter(instrumentationName)
	return provider
}

// Meter returns the Meter used by this Provider
func (x *Provider) Meter() metric.Meter {
	return x.meter
}

// GraphMetric holds the serialization instruments
type GraphMetric struct {
	// number of encode and decode sessions
	sessions metric.Int64Counter
	// number of object records written or read
	objects metric.Int64Counter
	// number of bytes written or read
	bytes metric.Int64Counter
	// number of failed sessions
	errors metric.Int64Counter
}

// NewGraphMetric creates the instruments on meter
func NewGraphMetric(meter metric.Meter) (*GraphMetric, error) {
	graphMetric := new(GraphMetric)
	var err error
	if graphMetric.sessions, err = meter.Int64Counter(
		"graph.sessions",
		metric.WithDescription("Total number of serialization sessions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create sessions instrument, %w", err)
	}
	if graphMetric.objects, err = meter.Int64Counter(
		"graph.objects",
		metric.WithDescription("Total number of object records"),
	); err != nil {
		return nil, fmt.Errorf("failed to create objects instrument, %w", err)
	}
	if graphMetric.bytes, err = meter.Int64Counter(
		"graph.bytes",
		metric.WithDescription("Total number of stream bytes"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create bytes instrument, %w", err)
	}
	if graphMetric.errors, err = meter.Int64Counter(
		"graph.errors",
		metric.WithDescription("Total number of failed sessions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create errors instrument, %w", err)
	}
	return graphMetric, nil
}

// Record adds the outcome of one session. failure is empty for a
// successful session, otherwise it names the error kind.
func (x *GraphMetric) Record(ctx context.Context, op Direction, objects, bytes int64, failure string) {
	attrs := metric.WithAttributes(attribute.String("op", string(op)))
	x.sessions.Add(ctx, 1, attrs)
	x.objects.Add(ctx, objects, attrs)
	x.bytes.Add(ctx, bytes, attrs)
	if failure != "" {
		x.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("op", string(op)),
			attribute.String("kind", failure)))
	}
}
