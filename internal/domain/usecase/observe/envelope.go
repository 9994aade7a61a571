package observe

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Request methods used as the metrics method label
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// Outcome labels
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Call names one public service operation and the attributes attached to its span
type Call struct {
	Name   string
	Method string
	Attrs  map[string]any
}

// Envelope wraps service operations with a span, a start event, a request counter and a
// duration histogram. Recording failures never reach the caller.
type Envelope struct {
	metrics coreport.Metrics
	tracer  coreport.Tracer
	logger  coreport.Logger
	clock   coreport.TimeProvider
}

// NewEnvelope creates a new envelope
func NewEnvelope(
	metrics coreport.Metrics,
	tracer coreport.Tracer,
	logger coreport.Logger,
	clock coreport.TimeProvider,
) *Envelope {
	return &Envelope{
		metrics: metrics,
		tracer:  tracer,
		logger:  logger,
		clock:   clock,
	}
}

// Operation is one in-flight call. Exactly one of Success and Error takes effect.
type Operation struct {
	env   *Envelope
	call  Call
	span  coreport.Span
	start time.Time
	once  sync.Once
}

// Begin starts the span and the timer for call
func (e *Envelope) Begin(ctx context.Context, call Call) (context.Context, *Operation) {
	op := &Operation{env: e, call: call, start: e.clock.Now()}

	spanCtx := ctx
	e.guard(call, "start span", func() {
		spanCtx, op.span = e.tracer.Start(ctx, call.Name, call.Attrs)
		op.span.AddEvent("start: "+call.Name, call.Attrs)
	})

	return spanCtx, op
}

// Success completes the operation with status SUCCESS
func (o *Operation) Success(message string) {
	o.complete(StatusSuccess, message, nil)
}

// Error completes the operation with status ERROR
func (o *Operation) Error(err error) {
	o.complete(StatusError, err.Error(), err)
}

func (o *Operation) complete(status, message string, err error) {
	o.once.Do(func() {
		elapsed := o.env.clock.Since(o.start)

		o.env.guard(o.call, "record metrics", func() {
			o.env.metrics.RecordRequest(o.call.Method, status, elapsed)
		})

		if o.span != nil {
			o.env.guard(o.call, "end span", func() {
				o.span.AddEvent("complete: "+o.call.Name, map[string]any{
					"status":  status,
					"message": message,
				})
				if err != nil {
					o.span.SetError(err)
				} else {
					o.span.SetOK(message)
				}
				o.span.End()
			})
		}

		if err != nil {
			o.env.logger.Debug("Operation failed", map[string]any{
				"operation":   o.call.Name,
				"error":       message,
				"duration_ms": elapsed.Milliseconds(),
			})
		}
	})
}

func (e *Envelope) guard(call Call, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Telemetry recording failed", map[string]any{
				"operation": call.Name,
				"stage":     stage,
				"panic":     fmt.Sprint(r),
			})
		}
	}()
	fn()
}

// Run executes fn inside the envelope. fn's result and error are returned unchanged.
// A panic in fn is recorded as an error and re-raised.
func Run[T any](ctx context.Context, env *Envelope, call Call, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, op := env.Begin(ctx, call)

	defer func() {
		if r := recover(); r != nil {
			op.Error(fmt.Errorf("%w: panic: %v", errs.ErrInternalServer, r))
			panic(r)
		}
	}()

	result, err := fn(ctx)
	if err != nil {
		op.Error(err)
		return result, err
	}

	op.Success(call.Name + " completed")
	return result, nil
}
