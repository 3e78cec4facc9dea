// Package guard runs blocking backend calls under a timeout on a bounded
// worker pool and classifies each call as ok, error or timeout.
//
// A call that misses its deadline is abandoned: Run returns immediately with
// StatusTimeout and the operation's context is cancelled, but the guard does
// not wait for the operation to observe the cancellation. Its worker slot is
// held until it actually returns, and whatever it eventually produces is
// discarded.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olgasafonova/chemdata-mcp-server/metrics"
	"github.com/olgasafonova/chemdata-mcp-server/tracing"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultTimeout applies when a Call does not set its own
	DefaultTimeout = 30 * time.Second

	// DefaultMaxConcurrent bounds in-flight backend calls across all tools
	DefaultMaxConcurrent = 8
)

// Status is the three-way classification of a guarded call.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusTimeout Status = "timeout"
)

// Call identifies a guarded operation.
type Call struct {
	Service   string
	Operation string
	Timeout   time.Duration // zero means the guard default
}

func (c Call) name() string {
	return c.Service + "." + c.Operation
}

// Outcome is the result of one guarded call. Payload is set only when
// Status is StatusOK; Message only otherwise.
type Outcome[T any] struct {
	Status  Status
	Elapsed time.Duration
	Payload T
	Message string

	call  Call
	cause error
}

// OK reports whether the call succeeded.
func (o Outcome[T]) OK() bool {
	return o.Status == StatusOK
}

// Err returns nil for a successful outcome and an *ExecError otherwise.
func (o Outcome[T]) Err() error {
	if o.Status == StatusOK {
		return nil
	}
	return &ExecError{
		Service:   o.call.Service,
		Operation: o.call.Operation,
		Status:    o.Status,
		Elapsed:   o.Elapsed,
		Message:   o.Message,
		Cause:     o.cause,
	}
}

// ExecError describes a failed or timed-out guarded call.
type ExecError struct {
	Service   string
	Operation string
	Status    Status
	Elapsed   time.Duration
	Message   string
	Cause     error
}

func (e *ExecError) Error() string {
	if e.Status == StatusTimeout {
		return fmt.Sprintf("%s %s timed out after %s", e.Service, e.Operation, e.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s %s: %s", e.Service, e.Operation, e.Message)
}

func (e *ExecError) Unwrap() error {
	return e.Cause
}

// IsTimeout reports whether err is a timed-out guarded call.
func IsTimeout(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee) && ee.Status == StatusTimeout
}

// Guard owns the worker pool shared by all backend calls.
type Guard struct {
	slots          *semaphore.Weighted
	size           int64
	defaultTimeout time.Duration
	logger         *slog.Logger
}

// Option configures a Guard
type Option func(*Guard)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = l
	}
}

// WithDefaultTimeout sets the timeout used when a Call leaves it zero
func WithDefaultTimeout(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.defaultTimeout = d
		}
	}
}

// WithMaxConcurrent sets the number of worker slots
func WithMaxConcurrent(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.size = int64(n)
		}
	}
}

// New creates a Guard.
func New(opts ...Option) *Guard {
	g := &Guard{
		size:           DefaultMaxConcurrent,
		defaultTimeout: DefaultTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.slots = semaphore.NewWeighted(g.size)
	return g
}

// Capacity returns the number of worker slots.
func (g *Guard) Capacity() int {
	return int(g.size)
}

// DefaultTimeout returns the timeout applied to calls that set none.
func (g *Guard) DefaultTimeout() time.Duration {
	return g.defaultTimeout
}

type result[T any] struct {
	value T
	err   error
}

// Run executes op on a worker slot and waits at most the call's timeout for
// it. Nothing op does, including panicking, escapes as anything other than
// a classified Outcome. Exactly one attempt is made.
func Run[T any](ctx context.Context, g *Guard, call Call, op func(context.Context) (T, error)) Outcome[T] {
	timeout := call.Timeout
	if timeout <= 0 {
		timeout = g.defaultTimeout
	}

	ctx, span := tracing.StartBackendSpan(ctx, call.Service, call.Operation, timeout)
	defer span.End()

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out Outcome[T]
	if err := g.slots.Acquire(runCtx, 1); err != nil {
		out = fromContext[T](call, runCtx, time.Since(start))
	} else {
		metrics.GuardSlotsInUse.Inc()
		done := make(chan result[T], 1)

		go func() {
			defer func() {
				g.slots.Release(1)
				metrics.GuardSlotsInUse.Dec()
			}()
			defer func() {
				if rec := recover(); rec != nil {
					metrics.PanicsRecovered.WithLabelValues(call.name()).Inc()
					done <- result[T]{err: fmt.Errorf("panic in %s: %v", call.name(), rec)}
				}
			}()
			v, err := op(runCtx)
			done <- result[T]{value: v, err: err}
		}()

		select {
		case r := <-done:
			out = fromResult(call, runCtx, r, time.Since(start))
		case <-runCtx.Done():
			out = fromContext[T](call, runCtx, time.Since(start))
		}
	}

	elapsed := out.Elapsed.Seconds()
	metrics.RecordGuardedCall(call.Service, call.Operation, string(out.Status), elapsed)
	tracing.EndOutcome(span, string(out.Status), out.Elapsed, out.Message)

	switch out.Status {
	case StatusOK:
		g.logger.Debug("Guarded call completed",
			"service", call.Service,
			"operation", call.Operation,
			"elapsed", out.Elapsed)
	default:
		g.logger.Warn("Guarded call failed",
			"service", call.Service,
			"operation", call.Operation,
			"status", out.Status,
			"elapsed", out.Elapsed,
			"error", out.Message)
	}
	return out
}

// fromResult classifies a value returned by op. A result that arrives after
// the deadline has already passed is treated as late and dropped.
func fromResult[T any](call Call, runCtx context.Context, r result[T], elapsed time.Duration) Outcome[T] {
	if runCtx.Err() != nil {
		return fromContext[T](call, runCtx, elapsed)
	}
	if r.err != nil {
		return Outcome[T]{
			Status:  StatusError,
			Elapsed: elapsed,
			Message: r.err.Error(),
			call:    call,
			cause:   r.err,
		}
	}
	return Outcome[T]{
		Status:  StatusOK,
		Elapsed: elapsed,
		Payload: r.value,
		call:    call,
	}
}

// fromContext classifies a call whose context finished before op did.
func fromContext[T any](call Call, runCtx context.Context, elapsed time.Duration) Outcome[T] {
	err := runCtx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return Outcome[T]{
			Status:  StatusTimeout,
			Elapsed: elapsed,
			Message: fmt.Sprintf("timed out after %s", elapsed.Round(time.Millisecond)),
			call:    call,
			cause:   err,
		}
	}
	if err == nil {
		err = context.Canceled
	}
	return Outcome[T]{
		Status:  StatusError,
		Elapsed: elapsed,
		Message: err.Error(),
		call:    call,
		cause:   err,
	}
}
