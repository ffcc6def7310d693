package xbee

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// NewLogger builds a Logger backed by github.com/charmbracelet/log,
// writing to stderr at the given level ("debug", "info", "warn", or
// "error"; anything else defaults to "info").
//
// charmbracelet/log is a direct dependency the teacher repo declares
// but never imports; this is where it gets a real job, in place of
// the teacher's own textcolor.go (a verbosity-gated no-op stub).
func NewLogger(level string) Logger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "xbee",
	})
	l.SetLevel(parseLevel(level))
	return charmLogger{l: l}
}

func parseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// charmLogger adapts *charmlog.Logger to this package's Logger
// interface; the two already share the same (msg string, kv ...any)
// shape, so this is a thin rename rather than a real adaptation.
type charmLogger struct {
	l *charmlog.Logger
}

func (c charmLogger) Debug(msg string, kv ...any) { c.l.Debug(msg, kv...) }
func (c charmLogger) Info(msg string, kv ...any)  { c.l.Info(msg, kv...) }
func (c charmLogger) Warn(msg string, kv ...any)  { c.l.Warn(msg, kv...) }
func (c charmLogger) Error(msg string, kv ...any) { c.l.Error(msg, kv...) }
