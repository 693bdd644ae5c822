package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "no trace ID expected before SetTraceID")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, 32, "trace ID should be 32 hex characters (16 bytes)")

	assert.Empty(t, GetTraceID(ctx), "original context must remain unchanged")
}

func TestGetTraceID_NonStringValue(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx), "non-string trace ID values are ignored")
}

func TestTraceIDs_AreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GetTraceID(SetTraceID(context.Background()))
		assert.False(t, seen[id], "trace IDs must not repeat")
		seen[id] = true
	}
}

func TestGenerateFallbackTraceID(t *testing.T) {
	t.Parallel()

	id := generateFallbackTraceID()
	assert.Len(t, id, 32)
	assert.NotEqual(t, "00000000000000000000000000000000", id,
		"fallback ID must never be a static zero value")
}
