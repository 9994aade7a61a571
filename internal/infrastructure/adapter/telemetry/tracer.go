package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Tracer adapts an OpenTelemetry tracer to the core port
type Tracer struct {
	tracer trace.Tracer
}

var _ coreport.Tracer = (*Tracer)(nil)

// NewTracer wraps tracer
func NewTracer(tracer trace.Tracer) *Tracer {
	return &Tracer{tracer: tracer}
}

// Start opens a span carrying attrs
func (t *Tracer) Start(ctx context.Context, name string, attrs map[string]any) (context.Context, coreport.Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))
	return ctx, &Span{span: span}
}

// Span adapts an OpenTelemetry span
type Span struct {
	span trace.Span
}

func (s *Span) AddEvent(name string, attrs map[string]any) {
	s.span.AddEvent(name, trace.WithAttributes(toAttributes(attrs)...))
}

func (s *Span) SetOK(message string) {
	s.span.SetStatus(codes.Ok, message)
}

func (s *Span) SetError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *Span) End() {
	s.span.End()
}

func toAttributes(attrs map[string]any) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for key, value := range attrs {
		out = append(out, toAttribute(key, value))
	}
	return out
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case uint64:
		return attribute.Int64(key, int64(v))
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
