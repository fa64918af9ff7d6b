package core

import (
	"context"
	"errors"
)

// InputAdapter loads input records for pipeline processing.
type InputAdapter[In any] interface {
	Load(ctx context.Context) ([]In, error)
}

// OutputAdapter persists output records produced by pipeline processing.
type OutputAdapter[Out any] interface {
	Store(ctx context.Context, rows []Out) error
}

// Processor transforms one input item into one output item.
type Processor[In any, Out any] interface {
	Process(ctx context.Context, in In) (Out, error)
}

// ProcessFunc adapts a function to the Processor interface.
type ProcessFunc[In any, Out any] func(ctx context.Context, in In) (Out, error)

func (f ProcessFunc[In, Out]) Process(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// RateLimitedError marks a failure as a per-key rate limit rejection.
// Callers own the backoff policy; this type only carries the classification.
type RateLimitedError struct {
	Err error
}

func (e *RateLimitedError) Error() string {
	if e == nil || e.Err == nil {
		return "rate limited"
	}
	return e.Err.Error()
}

func (e *RateLimitedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OverloadedError marks a failure as a service-side overload condition.
// Retryable, but expects a longer backoff than a rate limit rejection.
type OverloadedError struct {
	Err error
}

func (e *OverloadedError) Error() string {
	if e == nil || e.Err == nil {
		return "service overloaded"
	}
	return e.Err.Error()
}

func (e *OverloadedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransientError marks an error as retryable by worker implementations
// without distinguishing the backoff class.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	if e == nil || e.Err == nil {
		return "transient error"
	}
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsRateLimited reports whether err is classified as a rate limit rejection.
func IsRateLimited(err error) bool {
	var re *RateLimitedError
	return errors.As(err, &re)
}

// IsOverloaded reports whether err is classified as a service overload.
func IsOverloaded(err error) bool {
	var oe *OverloadedError
	return errors.As(err, &oe)
}

// IsTransient reports whether err is retryable under any classification.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	return IsRateLimited(err) || IsOverloaded(err)
}
