// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// go-accounts server.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// are available directly on *Logger. Request-scoped loggers carrying a
// trace_id are attached to the context by the HTTP middleware and read
// back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Option customises a logger built by NewLogger.
type Option func(*options)

type options struct {
	out     io.Writer
	level   zerolog.Level
	version string
}

// WithOutput redirects log output, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLevel sets the global level, zerolog.DebugLevel by default.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithVersion adds a "version" field to every entry.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// NewLogger constructs a JSON *Logger for the given role label
// (e.g. "server", "migrations").
//
// Every entry carries the "role" field, a timestamp and a "func" caller
// field holding the fully-qualified function name.
func NewLogger(role string, opts ...Option) *Logger {
	o := options{out: os.Stdout, level: zerolog.DebugLevel}
	for _, opt := range opts {
		opt(&o)
	}

	zerolog.SetGlobalLevel(o.level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	ctx := zerolog.New(o.out).With().
		Str("role", role).
		Timestamp().
		Caller()
	if o.version != "" {
		ctx = ctx.Str("version", o.version)
	}

	return &Logger{ctx.Logger()}
}

// Nop returns a *Logger that discards all log output. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithTraceID returns a child logger tagged with trace_id and a context that
// carries it, so FromContext picks it up further down the call chain.
func (l *Logger) WithTraceID(ctx context.Context, traceID string) (*Logger, context.Context) {
	child := l.With().Str("trace_id", traceID).Logger()
	return &Logger{child}, child.WithContext(ctx)
}

// FromRequest returns the logger attached to the request's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. When none is attached,
// zerolog falls back to its default logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
