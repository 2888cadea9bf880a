package telemetry

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnatoleLucet/cell"
)

const defaultTracerName = "github.com/AnatoleLucet/cell"

// TracingConfig configures the OpenTelemetry instrument.
type TracingConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = provider
	}
}

// Tracing records a span per watch callback and per computed evaluation.
// Writes and invalidations are not traced.
type Tracing struct {
	tracer trace.Tracer
}

var _ cell.Instrument = (*Tracing)(nil)

func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}

	return &Tracing{
		tracer: config.TracerProvider.Tracer(config.TracerName),
	}
}

func (t *Tracing) Written(ulid.ULID)     {}
func (t *Tracing) Invalidated(ulid.ULID) {}

func (t *Tracing) Recomputed(id ulid.ULID, took time.Duration) {
	end := time.Now()

	_, span := t.tracer.Start(context.Background(), "cell.recompute",
		trace.WithTimestamp(end.Add(-took)),
		trace.WithAttributes(attribute.String("cell.id", id.String())),
	)
	span.End(trace.WithTimestamp(end))
}

func (t *Tracing) WatchTriggered(id ulid.ULID, sources int) func() {
	_, span := t.tracer.Start(context.Background(), "cell.watch",
		trace.WithAttributes(
			attribute.String("cell.watch.id", id.String()),
			attribute.Int("cell.watch.sources", sources),
		),
	)

	return func() { span.End() }
}
