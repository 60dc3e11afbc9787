// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values, so services can read what middleware set without
// importing net/http code.
//
// Usage in services:
//
//	requestID := requestcontext.RequestID(ctx)
//
// Usage in middleware and tests:
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
package requestcontext

import "context"

type requestIDKey struct{}

// RequestID retrieves the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
