package guard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chemerrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
)

func quietGuard(opts ...Option) *Guard {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(opts...)
}

func TestRun_OK(t *testing.T) {
	g := quietGuard()

	out := Run(context.Background(), g, Call{Service: "pdb", Operation: "search", Timeout: time.Second},
		func(ctx context.Context) ([]byte, error) {
			return []byte(`{"ok":true}`), nil
		})

	assert.Equal(t, StatusOK, out.Status)
	assert.True(t, out.OK())
	assert.GreaterOrEqual(t, out.Elapsed, time.Duration(0))
	assert.Equal(t, `{"ok":true}`, string(out.Payload))
	assert.Empty(t, out.Message)
	assert.NoError(t, out.Err())
}

func TestRun_TimeoutDropsLatePayload(t *testing.T) {
	g := quietGuard()
	release := make(chan struct{})
	var finished atomic.Bool

	start := time.Now()
	out := Run(context.Background(), g, Call{Service: "pdb", Operation: "search", Timeout: 50 * time.Millisecond},
		func(ctx context.Context) (string, error) {
			<-release
			finished.Store(true)
			return "late", nil
		})
	waited := time.Since(start)
	close(release)

	assert.Equal(t, StatusTimeout, out.Status)
	assert.Empty(t, out.Payload)
	assert.GreaterOrEqual(t, out.Elapsed, 50*time.Millisecond)
	assert.Less(t, waited, time.Second)
	assert.False(t, finished.Load(), "guard waited for the abandoned call")

	err := out.Err()
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Contains(t, err.Error(), "timed out")
}

func TestRun_CancelsOperationContextOnTimeout(t *testing.T) {
	g := quietGuard()
	observed := make(chan error, 1)

	out := Run(context.Background(), g, Call{Service: "chembl", Operation: "similarity", Timeout: 20 * time.Millisecond},
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			observed <- ctx.Err()
			return 0, ctx.Err()
		})

	assert.Equal(t, StatusTimeout, out.Status)
	select {
	case err := <-observed:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("operation context was never cancelled")
	}
}

func TestRun_ErrorPreservesMessage(t *testing.T) {
	g := quietGuard()
	cause := &chemerrors.HTTPStatusError{Service: "pubchem", StatusCode: 503, URL: "https://example.test"}

	out := Run(context.Background(), g, Call{Service: "pubchem", Operation: "compound"},
		func(ctx context.Context) ([]byte, error) {
			return nil, cause
		})

	assert.Equal(t, StatusError, out.Status)
	assert.Nil(t, out.Payload)
	assert.Equal(t, cause.Error(), out.Message)

	err := out.Err()
	var ee *ExecError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StatusError, ee.Status)
	assert.Contains(t, err.Error(), cause.Error())
	assert.Equal(t, 503, chemerrors.StatusCode(err))
	assert.False(t, IsTimeout(err))
}

func TestRun_RecoversPanic(t *testing.T) {
	g := quietGuard(WithMaxConcurrent(1))

	out := Run(context.Background(), g, Call{Service: "drugbank", Operation: "get"},
		func(ctx context.Context) ([]byte, error) {
			panic("boom")
		})

	assert.Equal(t, StatusError, out.Status)
	assert.Contains(t, out.Message, "boom")

	// slot released after the panic
	again := Run(context.Background(), g, Call{Service: "drugbank", Operation: "get", Timeout: time.Second},
		func(ctx context.Context) (string, error) { return "fine", nil })
	assert.Equal(t, StatusOK, again.Status)
}

func TestRun_ParentCancelIsError(t *testing.T) {
	g := quietGuard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := Run(ctx, g, Call{Service: "opentargets", Operation: "graphql", Timeout: time.Second},
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	assert.Equal(t, StatusError, out.Status)
	assert.Contains(t, out.Message, "canceled")
	assert.False(t, IsTimeout(out.Err()))
}

func TestRun_DefaultTimeoutApplies(t *testing.T) {
	g := quietGuard(WithDefaultTimeout(30 * time.Millisecond))
	assert.Equal(t, 30*time.Millisecond, g.DefaultTimeout())

	out := Run(context.Background(), g, Call{Service: "surechembl", Operation: "search"},
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	assert.Equal(t, StatusTimeout, out.Status)
}

func TestRun_PoolIsBounded(t *testing.T) {
	g := quietGuard(WithMaxConcurrent(1))
	require.Equal(t, 1, g.Capacity())

	hold := make(chan struct{})
	started := make(chan struct{})
	done := make(chan Outcome[string], 1)

	go func() {
		done <- Run(context.Background(), g, Call{Service: "pdb", Operation: "slow", Timeout: 5 * time.Second},
			func(ctx context.Context) (string, error) {
				close(started)
				<-hold
				return "first", nil
			})
	}()
	<-started

	var ran atomic.Bool
	blocked := Run(context.Background(), g, Call{Service: "pdb", Operation: "fast", Timeout: 50 * time.Millisecond},
		func(ctx context.Context) (string, error) {
			ran.Store(true)
			return "second", nil
		})

	assert.Equal(t, StatusTimeout, blocked.Status, "slot wait counts against the deadline")
	assert.False(t, ran.Load())

	close(hold)
	first := <-done
	assert.Equal(t, StatusOK, first.Status)
	assert.Equal(t, "first", first.Payload)
}

func TestExecError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ExecError{Service: "pdb", Operation: "get", Status: StatusError, Message: cause.Error(), Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "pdb get: connection refused", err.Error())
}
