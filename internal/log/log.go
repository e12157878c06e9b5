// Package log is a small leveled logger. The TUI owns stdout, so the writer
// is normally the file opened by tea.LogToFile.
package log

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level. ok is false for unknown names.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO", "":
		return LevelInfo, true
	case "ERROR":
		return LevelError, true
	case "NONE":
		return LevelNone, true
	default:
		return LevelInfo, false
	}
}

// Logger writes level-prefixed lines. A nil *Logger logs nothing.
type Logger struct {
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags),
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) Debugf(format string, v ...any) {
	if l != nil && l.level <= LevelDebug {
		l.logger.Printf("DEBUG: "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l != nil && l.level <= LevelInfo {
		l.logger.Printf("INFO: "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l != nil && l.level <= LevelInfo { // warnings show at info
		l.logger.Printf("WARN: "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l != nil && l.level <= LevelError {
		l.logger.Printf("ERROR: "+format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Level() Level {
	return l.level
}
