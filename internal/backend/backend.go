// Package backend defines the capability every data service client
// implements and runs those capabilities through the execution guard.
package backend

import (
	"context"
	"time"

	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
)

// Backend is a remote data service that can run a structured search of
// query type Q and fetch a single entity by identifier. Both return the raw
// JSON payload.
type Backend[Q any] interface {
	Name() string
	Search(ctx context.Context, q Q) ([]byte, error)
	GetByID(ctx context.Context, id string) ([]byte, error)
}

// Search runs b.Search under the guard.
func Search[Q any](ctx context.Context, g *guard.Guard, b Backend[Q], q Q, timeout time.Duration) guard.Outcome[[]byte] {
	return guard.Run(ctx, g, guard.Call{Service: b.Name(), Operation: "search", Timeout: timeout},
		func(ctx context.Context) ([]byte, error) {
			return b.Search(ctx, q)
		})
}

// Fetch runs b.GetByID under the guard.
func Fetch[Q any](ctx context.Context, g *guard.Guard, b Backend[Q], id string, timeout time.Duration) guard.Outcome[[]byte] {
	return guard.Run(ctx, g, guard.Call{Service: b.Name(), Operation: "get_by_id", Timeout: timeout},
		func(ctx context.Context) ([]byte, error) {
			return b.GetByID(ctx, id)
		})
}

// Call runs an arbitrary backend operation under the guard. It is used for
// endpoints that fit neither Search nor GetByID.
func Call[T any](ctx context.Context, g *guard.Guard, service, operation string, timeout time.Duration, op func(context.Context) (T, error)) guard.Outcome[T] {
	return guard.Run(ctx, g, guard.Call{Service: service, Operation: operation, Timeout: timeout}, op)
}
