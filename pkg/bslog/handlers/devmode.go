// Package handlers holds slog.Handler decorators used by bslog.
package handlers

import (
	"context"
	"log/slog"
	"runtime"
)

// Devmode decorates a handler with an env marker and the caller's
// source location, which the production handlers deliberately omit.
type Devmode struct {
	base slog.Handler
}

func NewDevModeHandler(base slog.Handler) slog.Handler {
	return Devmode{base: base}
}

func (dm Devmode) Enabled(ctx context.Context, level slog.Level) bool {
	return dm.base.Enabled(ctx, level)
}

func (dm Devmode) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String("env", "dev"))

	if record.PC != 0 {
		if frame, ok := callerFrame(); ok {
			record.AddAttrs(
				slog.Group(
					"caller_meta_data",
					slog.String("func", frame.Function),
					slog.String("file", frame.File),
					slog.Int("line", frame.Line),
				),
			)
		}
	}

	return dm.base.Handle(ctx, record)
}

// callerFrame resolves the frame of the original logging call site,
// skipping the slog and bslog wrapper layers in between.
func callerFrame() (runtime.Frame, bool) {
	pc, _, _, ok := runtime.Caller(5)
	if !ok {
		return runtime.Frame{}, false
	}

	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	return frame, true
}

func (dm Devmode) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Devmode{base: dm.base.WithAttrs(attrs)}
}

func (dm Devmode) WithGroup(name string) slog.Handler {
	return Devmode{base: dm.base.WithGroup(name)}
}
