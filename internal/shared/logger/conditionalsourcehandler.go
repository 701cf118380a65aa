package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceByLevelHandler decorates another slog.Handler and attaches the
// caller's source location only to records at the configured levels. The
// inner handler must be built with AddSource disabled, otherwise the
// location would point into this wrapper.
type sourceByLevelHandler struct {
	inner  slog.Handler
	levels map[slog.Level]bool
}

// NewConditionalSourceHandler wraps handler so that source attributes are
// emitted only for the given levels.
func NewConditionalSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	enabled := make(map[slog.Level]bool, len(levels))
	for _, l := range levels {
		enabled[l] = true
	}
	return &sourceByLevelHandler{inner: handler, levels: enabled}
}

func (h *sourceByLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.levels[r.Level] {
		// Two frames up: past Handle itself and slog's dispatch frame.
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		frame, _ := runtime.CallersFrames(pcs[:]).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.inner.Handle(ctx, r)
}

func (h *sourceByLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceByLevelHandler{inner: h.inner.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceByLevelHandler) WithGroup(name string) slog.Handler {
	return &sourceByLevelHandler{inner: h.inner.WithGroup(name), levels: h.levels}
}

func (h *sourceByLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}
