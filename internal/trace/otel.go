package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/udisondev/elemental/internal/trace"

// SetupOtel installs a global OTLP/HTTP tracer provider exporting to
// endpoint. An empty endpoint leaves tracing off and returns a no-op
// shutdown. The returned shutdown flushes pending spans.
func SetupOtel(ctx context.Context, serviceName, endpoint string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, fmt.Errorf("creating otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("creating otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// OtelSink records every hit and reaction as a short span.
type OtelSink struct {
	tracer oteltrace.Tracer
}

// NewOtelSink creates a sink on tp. A nil tp means the global provider.
func NewOtelSink(tp oteltrace.TracerProvider) *OtelSink {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &OtelSink{tracer: tp.Tracer(instrumentationName)}
}

func (s *OtelSink) Enabled() bool { return true }

func (s *OtelSink) Hit(t HitTrace) {
	_, span := s.tracer.Start(context.Background(), "elemental.hit")
	span.SetAttributes(
		attribute.Int64("elemental.tick", t.Tick),
		attribute.Int64("elemental.attacker", int64(t.Attacker)),
		attribute.Int64("elemental.target", int64(t.Target)),
		attribute.String("elemental.element", t.Element.String()),
		attribute.String("elemental.target_dominant", t.TargetDominant.String()),
		attribute.Int("elemental.wetness", t.TargetWetness),
		attribute.Float64("elemental.physical", t.Pipeline.Physical),
		attribute.Float64("elemental.pre_resist", t.Pipeline.PreResist),
		attribute.Float64("elemental.reduction", t.Pipeline.Reduction),
		attribute.String("elemental.restraint", t.Pipeline.Relation.String()),
		attribute.Bool("elemental.floored", t.Pipeline.Floored),
		attribute.String("elemental.reaction", t.Reaction),
		attribute.Float64("elemental.final", t.Final),
	)
	span.End()
}

func (s *OtelSink) Reaction(t ReactionTrace) {
	_, span := s.tracer.Start(context.Background(), "elemental.reaction."+t.Kind)
	span.SetAttributes(
		attribute.Int64("elemental.tick", t.Tick),
		attribute.Int64("elemental.source", int64(t.Source)),
		attribute.Int64("elemental.target", int64(t.Target)),
		attribute.Int("elemental.level", t.Level),
		attribute.Float64("elemental.amount", t.Amount),
	)
	span.End()
}
