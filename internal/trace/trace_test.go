package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	require.NoError(t, Init(Options{}))
	assert.False(t, Enabled())

	ctx := context.Background()
	spanCtx, span := StartSpan(ctx, "engine.Run")
	defer span.End()

	assert.Equal(t, ctx, spanCtx)
	_, _, ok := GetTraceFields(spanCtx)
	assert.False(t, ok)
	assert.NoError(t, Shutdown(ctx))
}

func TestInit_ExportsRunAttributes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf, Mode: "DRY_RUN", Provider: "CLAUDE"}))
	assert.True(t, Enabled())

	ctx, span := StartSpan(context.Background(), "engine.Run")
	traceID, spanID, ok := GetTraceFields(ctx)
	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	span.End()

	require.NoError(t, Shutdown(context.Background()))
	assert.False(t, Enabled())

	out := buf.String()
	assert.Contains(t, out, `"engine.Run"`)
	assert.Contains(t, out, `"bot.mode"`)
	assert.Contains(t, out, `"DRY_RUN"`)
	assert.Contains(t, out, `"llm.provider"`)
	assert.Contains(t, out, `"CLAUDE"`)
	assert.Contains(t, out, traceID)
}
