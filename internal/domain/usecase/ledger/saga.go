package ledger

import (
	"context"
	"fmt"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Step is one forward action of a saga and the action that undoes it.
// Undo may be nil for the last step or for steps with nothing to revert.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Saga runs steps in order. When a step fails, the completed steps are undone in reverse.
type Saga struct {
	name   string
	logger coreport.Logger
	steps  []Step
}

// NewSaga creates an empty saga
func NewSaga(name string, logger coreport.Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

// Then appends a step
func (s *Saga) Then(name string, do, undo func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{Name: name, Do: do, Undo: undo})
	return s
}

// Run executes the saga detached from ctx cancellation: once started, every step and every
// compensation runs to completion. It returns the failing step's error unchanged, or a
// *errs.CompensationError wrapping it when an undo also failed.
func (s *Saga) Run(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	for i, step := range s.steps {
		err := step.Do(ctx)
		if err == nil {
			continue
		}

		failures := s.compensate(ctx, i)
		if len(failures) > 0 {
			compErr := &errs.CompensationError{
				Saga:     s.name,
				Step:     step.Name,
				Cause:    err,
				Failures: failures,
			}
			s.logger.Error("Saga compensation failed", compErr.LogFields())
			return compErr
		}

		s.logger.Warn("Saga step failed, completed steps compensated", map[string]any{
			"saga":        s.name,
			"step":        step.Name,
			"compensated": i,
			"error":       err.Error(),
		})
		return err
	}

	return nil
}

func (s *Saga) compensate(ctx context.Context, failed int) []error {
	var failures []error
	for j := failed - 1; j >= 0; j-- {
		step := s.steps[j]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(ctx); err != nil {
			failures = append(failures, fmt.Errorf("undo %s: %w", step.Name, err))
		}
	}
	return failures
}
