package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLogging_Text(t *testing.T) {
	var buf bytes.Buffer

	log := ConfigureLogging(Options{
		MinLevel: slog.LevelInfo,
		Output:   &buf,
	})
	require.NotNil(t, log)

	log.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key=value")
}

func TestConfigureLogging_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := ConfigureLogging(Options{
		JSON:     true,
		MinLevel: slog.LevelInfo,
		Output:   &buf,
	})

	log.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestConfigureLogging_MinLevel(t *testing.T) {
	var buf bytes.Buffer

	log := ConfigureLogging(Options{
		MinLevel: slog.LevelWarn,
		Output:   &buf,
	})

	log.Info("filtered out")
	log.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "filtered out")
	assert.Contains(t, out, "kept")
}

func TestGet_NoContext(t *testing.T) {
	log := Get()
	require.NotNil(t, log)
}

func TestGet_Muted(t *testing.T) {
	ctx := WithMuted(t.Context(), true)

	log := Get(ctx)
	require.NotNil(t, log)
	assert.False(t, log.Enabled(ctx, slog.LevelError))
}

func TestGet_Unmuted(t *testing.T) {
	ctx := WithMuted(t.Context(), true)
	ctx = WithMuted(ctx, false)

	log := Get(ctx)
	assert.True(t, log.Enabled(ctx, slog.LevelError))
}

func TestWith_AttributesFlowThroughContext(t *testing.T) {
	var buf bytes.Buffer

	ConfigureLogging(Options{
		MinLevel: slog.LevelInfo,
		Output:   &buf,
	})

	ctx := With(t.Context(), "request_id", "abc-123")
	Get(ctx).Info("doing work")

	assert.Contains(t, buf.String(), "request_id=abc-123")
}

func TestWith_Accumulates(t *testing.T) {
	ctx := With(t.Context(), "a", 1)
	ctx = With(ctx, "b", 2)

	vals := getValues(ctx)
	require.Len(t, vals, 4)
	assert.Equal(t, "a", vals[0])
	assert.Equal(t, "b", vals[2])
}

func TestWith_NoValuesReturnsSameContext(t *testing.T) {
	ctx := t.Context()
	assert.Equal(t, ctx, With(ctx))
}

func TestWith_NilContext(t *testing.T) {
	ctx := With(nil, "k", "v") //nolint:staticcheck // Exercising nil handling on purpose
	require.NotNil(t, ctx)
	assert.Len(t, getValues(ctx), 2)
}

func TestGet_NilVariadicContext(t *testing.T) {
	log := Get(context.Context(nil))
	require.NotNil(t, log)
}

func TestNullHandler_DropsEverything(t *testing.T) {
	var buf bytes.Buffer

	ConfigureLogging(Options{
		MinLevel: slog.LevelDebug,
		Output:   &buf,
	})

	ctx := WithMuted(t.Context(), true)
	Get(ctx).Error("should not appear")

	assert.Empty(t, strings.TrimSpace(buf.String()))
}
