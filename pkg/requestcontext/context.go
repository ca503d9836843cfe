// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, tests
// inject them; keeping the package free of net/http lets services import only
// what they need.
package requestcontext

import (
	"context"
	"time"
)

type (
	actorKey         struct{}
	orgUnitKey       struct{}
	correlationIDKey struct{}
	requestTimeKey   struct{}
)

// Actor retrieves the acting caseworker ident from the context.
func Actor(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the acting caseworker ident into the context.
func WithActor(ctx context.Context, ident string) context.Context {
	return context.WithValue(ctx, actorKey{}, ident)
}

// OrgUnit retrieves the acting organizational unit from the context.
func OrgUnit(ctx context.Context) string {
	if v, ok := ctx.Value(orgUnitKey{}).(string); ok {
		return v
	}
	return ""
}

// WithOrgUnit injects the acting organizational unit into the context.
func WithOrgUnit(ctx context.Context, unit string) context.Context {
	return context.WithValue(ctx, orgUnitKey{}, unit)
}

// CorrelationID retrieves the correlation id propagated to upstream systems.
func CorrelationID(ctx context.Context) string {
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithCorrelationID injects a correlation id into the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// Now retrieves the request-scoped time from context. Falls back to
// time.Now() for non-HTTP contexts (workers, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Used by middleware to pin
// one timestamp per request and by tests to make time deterministic.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
