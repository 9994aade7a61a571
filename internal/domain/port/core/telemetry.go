package core

import (
	"context"
	"time"
)

// Metrics records one request outcome. method is an HTTP-style verb, status is SUCCESS or ERROR.
type Metrics interface {
	RecordRequest(method, status string, elapsed time.Duration)
}

// Tracer starts spans carrying the given attributes
type Tracer interface {
	Start(ctx context.Context, name string, attrs map[string]any) (context.Context, Span)
}

// Span is one traced operation
type Span interface {
	AddEvent(name string, attrs map[string]any)
	SetOK(message string)
	SetError(err error)
	End()
}
