package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_NotNil verifies that NewLogger returns a non-nil *Logger.
func TestNewLogger_NotNil(t *testing.T) {
	require.NotNil(t, NewLogger("test"))
}

// TestNew_Fields verifies that every entry carries role, timestamp and
// caller fields.
func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test-role")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Contains(t, entry, zerolog.TimestampFieldName)
	assert.Contains(t, entry, "func")
	assert.Equal(t, "hello", entry["message"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.Error(t, SetLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestSetLevel_FiltersEntries verifies that entries below the global level
// are dropped.
func TestSetLevel_FiltersEntries(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	require.NoError(t, SetLevel("error"))

	var buf bytes.Buffer
	l := New(&buf, "test")
	l.Info().Msg("dropped")

	assert.Zero(t, buf.Len())
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

// TestGetChildLogger_InheritsFields verifies that the child keeps the
// parent's fields while its own additions do not leak back.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "parent")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("trace_id", "abc").Logger()

	child.Info().Msg("child")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	entry = decodeEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")
}

// TestFromContext_ReturnsAttachedLogger verifies the WithContext/FromContext
// round trip.
func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ctx")
	l.Logger = l.With().Str("ctx-key", "ctx-value").Logger()

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])
}

func TestFromContext_EmptyContextNotNil(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "req")
	l.Logger = l.With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-value", decodeEntry(t, &buf)["req-key"])
}
