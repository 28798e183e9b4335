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
	"runtime"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/jppf-grid/JPPF-sub017/internal/metric"
	"github.com/jppf-grid/JPPF-sub017/internal/validation"
	"github.com/jppf-grid/JPPF-sub017/log"
	"github.com/jppf-grid/JPPF-sub017/wire"
)

const (
	// DefaultMaxArrayLength bounds the length of a decoded slice
	DefaultMaxArrayLength = 1 << 26
	// DefaultMaxFrameSize bounds the raw stream carried by a frame
	DefaultMaxFrameSize = 1 << 30
)

// Config holds the settings of encoders, decoders and serializers
type Config struct {
	logger          log.Logger
	registry        Registry
	maxArrayLength  int
	maxStringLength int
	maxObjects      int
	maxFrameSize    int
	compression     Compression
	parallelism     int
	meterProvider   otelmetric.MeterProvider
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// NewConfig creates a Config with the default settings overridden by opts
func NewConfig(opts ...Option) *Config {
	config := &Config{
		logger:          log.DiscardLogger,
		registry:        DefaultRegistry,
		maxArrayLength:  DefaultMaxArrayLength,
		maxStringLength: wire.DefaultMaxStringLength,
		maxFrameSize:    DefaultMaxFrameSize,
		compression:     ZstdCompression,
		parallelism:     runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Validate checks the limits of the configuration
func (c *Config) Validate() error {
	return validation.New().
		AddAssertion(c.logger != nil, "the [logger] is required").
		AddAssertion(c.registry != nil, "the [registry] is required").
		AddAssertion(c.compression.Valid(), "the [compression] is invalid").
		AddValidator(validation.NewLimitValidator("maxArrayLength", c.maxArrayLength, 0)).
		AddValidator(validation.NewLimitValidator("maxStringLength", c.maxStringLength, 0)).
		AddValidator(validation.NewLimitValidator("maxObjects", c.maxObjects, 0)).
		AddValidator(validation.NewLimitValidator("maxFrameSize", c.maxFrameSize, 0)).
		AddValidator(validation.NewLimitValidator("parallelism", c.parallelism, 1)).
		Validate()
}

// Logger returns the configured logger
func (c *Config) Logger() log.Logger {
	return c.logger
}

// Registry returns the configured registry
func (c *Config) Registry() Registry {
	return c.registry
}

// Compression returns the configured compression
func (c *Config) Compression() Compression {
	return c.compression
}

// graphMetric creates the instruments, nil when the meter refuses them
func (c *Config) graphMetric() *metric.GraphMetric {
	provider := metric.New(metric.WithMeterProvider(c.meterProvider))
	graphMetric, err := metric.NewGraphMetric(provider.Meter())
	if err != nil {
		c.logger.Warnf("graph metrics are disabled: %v", err)
		return nil
	}
	return graphMetric
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithRegistry sets the registry resolving type names and codecs.
// DefaultRegistry is used otherwise.
func WithRegistry(registry Registry) Option {
	return OptionFunc(func(config *Config) {
		config.registry = registry
	})
}

// WithMaxArrayLength bounds the length of a decoded slice. Zero disables the check.
func WithMaxArrayLength(length int) Option {
	return OptionFunc(func(config *Config) {
		config.maxArrayLength = length
	})
}

// WithMaxStringLength bounds the byte length of a decoded string and of the
// payloads read by codecs. Zero disables the check.
func WithMaxStringLength(length int) Option {
	return OptionFunc(func(config *Config) {
		config.maxStringLength = length
	})
}

// WithMaxObjects bounds the number of records and descriptors of a decoded
// stream. Zero, the default, disables the check.
func WithMaxObjects(count int) Option {
	return OptionFunc(func(config *Config) {
		config.maxObjects = count
	})
}

// WithMaxFrameSize bounds the raw stream size announced by a frame
func WithMaxFrameSize(size int) Option {
	return OptionFunc(func(config *Config) {
		config.maxFrameSize = size
	})
}

// WithCompression sets the compression applied by the Serializer
func WithCompression(compression Compression) Option {
	return OptionFunc(func(config *Config) {
		config.compression = compression
	})
}

// WithParallelism bounds the number of concurrent sessions run by
// SerializeAll and DeserializeAll. One makes them sequential.
func WithParallelism(parallelism int) Option {
	return OptionFunc(func(config *Config) {
		config.parallelism = parallelism
	})
}

// WithMeterProvider sets the OpenTelemetry MeterProvider used to record
// session metrics. The global provider is used otherwise.
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.meterProvider = provider
	})
}
