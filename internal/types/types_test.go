package types

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilLogger(t *testing.T) {
	var l Logger
	assert.False(t, l.Enabled(slog.LevelError))
	assert.False(t, l.TraceEnabled())
	l.Log(slog.LevelError, "dropped")
	l.Trace("dropped")
	assert.Nil(t, Component(nil, "parser"))
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := Logger{L: Component(base, "resolver")}

	assert.True(t, l.Enabled(slog.LevelDebug))
	assert.False(t, l.TraceEnabled())
	l.Trace("hidden")
	l.Log(slog.LevelDebug, "phase complete", slog.String("phase", "types"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "component=resolver")
	assert.Contains(t, out, "phase=types")
}

func TestCodesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range AllCodes() {
		require.NotEmpty(t, c.Code)
		assert.Contains(t, []string{"lexer", "parser", "resolver"}, c.Phase)
		assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
		seen[c.Code] = true
	}
}

func TestSpan(t *testing.T) {
	assert.Equal(t, Span{Start: 3, End: 7}, NewSpan(3, 7))
}
