package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(NewHandler(&buf, slog.LevelDebug))), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "dbg", `"a":1`},
		{"INFO", "inf", `"b":2`},
		{"WARN", "wrn", `"c":3`},
		{"ERROR", "err", `"d":4`},
	}

	for _, tc := range tests {
		assert.Contains(t, out, `"level":"`+tc.level+`"`)
		assert.Contains(t, out, `"msg":"`+tc.msg+`"`)
		assert.Contains(t, out, tc.attr)
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("request_id", "123", "user", "alice").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, s := range []string{`"msg":"hello"`, `"request_id":"123"`, `"user":"alice"`, `"k":"v"`} {
		assert.Contains(t, out, s)
	}
}

func TestSlogLogger_RedactsSecrets(t *testing.T) {
	log, buf := newTestLogger(t)

	log.Info(context.Background(), "signing in",
		"username", "t_user",
		"password", "secret1",
		"Token", "abc.def.ghi",
		slog.Group("request", slog.String("authorization", "Bearer abc")),
	)

	out := buf.String()
	assert.Contains(t, out, `"username":"t_user"`)
	assert.NotContains(t, out, "secret1")
	assert.NotContains(t, out, "abc.def.ghi")
	assert.NotContains(t, out, "Bearer abc")
	assert.Equal(t, 3, strings.Count(out, Redacted))
}

func TestHeaders_RedactsCredentials(t *testing.T) {
	log, buf := newTestLogger(t)

	h := http.Header{}
	h.Set("Authorization", "Bearer secret-token")
	h.Set("Content-Type", "application/json")

	log.Debug(context.Background(), "identifying user", Headers(h))

	out := buf.String()
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, `"content-type":"application/json"`)
	assert.Contains(t, out, `"authorization":"`+Redacted+`"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop().With("k", "v")
	ctx := context.TODO()
	log.Debug(ctx, "x")
	log.Info(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
}
