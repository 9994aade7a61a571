package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// NewTracerProvider builds the process tracer provider. With LogSpans set, ended spans
// are written to logger at debug level.
func NewTracerProvider(cfg Config, logger coreport.Logger, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
	}
	if cfg.LogSpans {
		base = append(base, sdktrace.WithSpanProcessor(&logSpanProcessor{logger: logger}))
	}
	return sdktrace.NewTracerProvider(append(base, opts...)...)
}

// logSpanProcessor writes every ended span to the core logger
type logSpanProcessor struct {
	logger coreport.Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := map[string]any{
		"trace_id":    s.SpanContext().TraceID().String(),
		"span_id":     s.SpanContext().SpanID().String(),
		"status":      s.Status().Code.String(),
		"duration_ms": s.EndTime().Sub(s.StartTime()).Milliseconds(),
		"events":      len(s.Events()),
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}
	p.logger.Debug("Span "+s.Name(), fields)
}

func (p *logSpanProcessor) Shutdown(context.Context) error   { return nil }
func (p *logSpanProcessor) ForceFlush(context.Context) error { return nil }
