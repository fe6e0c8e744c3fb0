package contextutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type (
	traceIDT struct{}
)

var traceIDKey = traceIDT{}

// TraceIDFromContext returns the trace id stored in the given context, or
// generates a new one and stores it if the context carries none. The
// (possibly updated) context is returned alongside the id.
func TraceIDFromContext(ctx context.Context) (context.Context, string) {
	tID := ctx.Value(traceIDKey)
	if tID == nil {
		stID := randomTraceID()
		ctx = context.WithValue(ctx, traceIDKey, stID)
		return ctx, stID
	}
	stID, ok := tID.(string)
	if !ok {
		stID = randomTraceID()
		ctx = context.WithValue(ctx, traceIDKey, stID)
	}
	return ctx, stID
}

// WithTraceID returns a context with the given trace id set.
func WithTraceID(ctx context.Context, tID string) context.Context {
	return context.WithValue(ctx, traceIDKey, tID)
}

func randomTraceID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
