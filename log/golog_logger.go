package log

import (
	"github.com/kataras/golog"
)

// GologLogger adapts an existing *golog.Logger to the Logger interface
// graph writes through, so the level-filtering, formatting, and
// dispatch of golog's own Debug/Info/Warn/Error calls is reused here —
// one method does the filtering/dispatch, the four exported methods
// just name the level.
type GologLogger struct {
	backend *golog.Logger
	level   LogLevel
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger — golog.Default, or one
// built with golog.New() and configured independently (prefix, output,
// golog's own level string) — at LogLevelInfo.
func NewGologLogger(backend *golog.Logger) *GologLogger {
	return &GologLogger{backend: backend, level: LogLevelInfo}
}

func (l *GologLogger) log(level LogLevel, format string, v ...any) {
	if l.level > level {
		return
	}
	switch level {
	case LogLevelDebug:
		l.backend.Debugf(format, v...)
	case LogLevelInfo:
		l.backend.Infof(format, v...)
	case LogLevelWarn:
		l.backend.Warnf(format, v...)
	default:
		l.backend.Errorf(format, v...)
	}
}

func (l *GologLogger) Debug(format string, v ...any) { l.log(LogLevelDebug, format, v...) }
func (l *GologLogger) Info(format string, v ...any)  { l.log(LogLevelInfo, format, v...) }
func (l *GologLogger) Warn(format string, v ...any)  { l.log(LogLevelWarn, format, v...) }
func (l *GologLogger) Error(format string, v ...any) { l.log(LogLevelError, format, v...) }

// SetLevel sets GologLogger's own filtering threshold and mirrors it
// onto the wrapped backend's level, so a message this adapter would
// drop is also suppressed if something else logs through backend
// directly (e.g. golog.Default shared with other code).
func (l *GologLogger) SetLevel(level LogLevel) {
	l.level = level

	gologLevel := "info"
	switch level {
	case LogLevelDebug:
		gologLevel = "debug"
	case LogLevelWarn:
		gologLevel = "warn"
	case LogLevelError:
		gologLevel = "error"
	case LogLevelNone:
		gologLevel = "disable"
	}
	l.backend.SetLevel(gologLevel)
}

// GetLevel returns GologLogger's own filtering threshold.
func (l *GologLogger) GetLevel() LogLevel {
	return l.level
}
