package gfx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silent drops every record. Enabled is false, so attribute values such as
// formatted result codes are never built.
type silent struct{}

func (silent) Enabled(context.Context, slog.Level) bool  { return false }
func (silent) Handle(context.Context, slog.Record) error { return nil }
func (s silent) WithAttrs([]slog.Attr) slog.Handler      { return s }
func (s silent) WithGroup(string) slog.Handler           { return s }

var (
	quiet  = slog.New(silent{})
	active atomic.Pointer[slog.Logger]
)

func init() { active.Store(quiet) }

// SetLogger routes the records of gfx and its backends to l. Pass nil to
// silence them again, which is also the state at startup. It may be called
// while other goroutines are creating resources.
//
// Messages are prefixed with the emitting package ("d3d11:", "haldev:",
// "backend:"). Levels:
//   - [slog.LevelDebug]: one record per created object, with its native
//     descriptor fields ("size", "bind", "format", "dimension")
//   - [slog.LevelWarn]: requests the device cannot honor as asked, such as
//     an "op" that needs a device context, or a program whose vertex
//     bytecode "hash" is missing from the shader cache
//   - [slog.LevelError]: native failures. "hr" holds the result code as
//     0x%08X when the device returned one and "err" holds the error.
//
// Example:
//
//	gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelWarn,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = quiet
	}
	active.Store(l)
}

// Logger returns the logger set by SetLogger. Packages call it at each log
// site rather than caching the result.
func Logger() *slog.Logger {
	return active.Load()
}
