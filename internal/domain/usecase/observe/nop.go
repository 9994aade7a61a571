package observe

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// NopMetrics discards every measurement
type NopMetrics struct{}

func (NopMetrics) RecordRequest(string, string, time.Duration) {}

// NopTracer starts spans that record nothing
type NopTracer struct{}

func (NopTracer) Start(ctx context.Context, _ string, _ map[string]any) (context.Context, coreport.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) AddEvent(string, map[string]any) {}
func (nopSpan) SetOK(string)                    {}
func (nopSpan) SetError(error)                  {}
func (nopSpan) End()                            {}
