// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and
// request-scoped helpers used across the event organizer server.
//
// Loggers are passed by pointer. Request handlers pick up the per-request
// logger attached by the trace id middleware via FromRequest or FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds a JSON logger writing to stdout. Every entry carries the
// service name, a timestamp and the name of the calling function under "func".
func NewLogger(service string) *Logger {
	return newLogger(os.Stdout, service)
}

func newLogger(w io.Writer, service string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().
		Str("service", service).
		Timestamp().
		Caller().
		Logger()}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithComponent returns a child logger tagged with a component name,
// e.g. "notifier" or "dispatcher".
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// ForRequest returns a child logger carrying the trace id, method and path
// of an inbound request.
func (l *Logger) ForRequest(traceID, method, path string) *Logger {
	return &Logger{l.With().
		Str("trace_id", traceID).
		Str("method", method).
		Str("path", path).
		Logger()}
}

// ForCaller returns a child logger carrying the authenticated user.
func (l *Logger) ForCaller(caller models.Caller) *Logger {
	return &Logger{l.With().
		Int64("user_id", caller.UserID).
		Str("user_role", string(caller.Role)).
		Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. When there is none zerolog
// hands back its disabled default logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
