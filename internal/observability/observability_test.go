package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-dashboard/internal/config"
)

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("shown", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "commerce-dashboard", entry["service"])
	assert.EqualValues(t, 3, entry["records"])
}

func TestNewLoggerTo_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "debug", Format: "text"})
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestStartSpan_Nesting(t *testing.T) {
	ctx, parent := StartSpan(context.Background(), "parent")
	_, child := StartSpan(ctx, "child")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
	assert.Len(t, parent.SpanID, 16)
}

func TestSpan_FinishAndError(t *testing.T) {
	_, span := StartSpan(context.Background(), "op")
	span.SetTag("k", "v")
	span.SetError(errors.New("boom"))
	span.Finish()

	assert.Equal(t, SpanStatusError, span.Status)
	assert.Equal(t, "boom", span.Error)
	assert.Equal(t, "v", span.Tags["k"])

	d := span.Duration
	span.Finish()
	assert.Equal(t, d, span.Duration)
}
