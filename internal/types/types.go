// Package types holds the logger, source spans and diagnostic codes that
// the lexer, parser, resolver and code generator share.
package types

import (
	"context"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug. The lexer logs each token and
// the parser each assignment at this level.
const LevelTrace = slog.Level(-8)

// Logger is embedded by the compiler phases. The zero value discards
// everything.
type Logger struct {
	L *slog.Logger
}

func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(context.Background(), level)
}

// Log skips building the record when level is disabled.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.Enabled(level) {
		l.L.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

func (l *Logger) TraceEnabled() bool { return l.Enabled(LevelTrace) }

func (l *Logger) Trace(msg string, attrs ...slog.Attr) { l.Log(LevelTrace, msg, attrs...) }

// Component tags logger with the phase name, so one handler can filter
// lexer, parser, resolver and codegen output. A nil logger stays nil.
func Component(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

// ByteOffset indexes the schema source.
type ByteOffset uint32

// Span covers source bytes [Start, End) of a token.
type Span struct {
	Start ByteOffset
	End   ByteOffset
}

func NewSpan(start, end ByteOffset) Span { return Span{Start: start, End: end} }
