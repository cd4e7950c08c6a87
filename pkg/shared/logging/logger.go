// Package logging provides the leveled, module-scoped logger used across the console.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the upper-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Logger is the interface for logging. Args are key/value pairs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
	WithModule(module string) Logger
}

// SimpleLogger writes "[module] LEVEL: msg k=v" lines through the standard log package.
type SimpleLogger struct {
	module    string
	level     Level
	logger    *log.Logger
	useColors bool
}

// NewSimpleLogger creates a logger on stdout. Colors are only used on a terminal.
func NewSimpleLogger(module string, level Level, useColors bool) *SimpleLogger {
	return NewSimpleLoggerWithWriter(module, level, useColors && stdoutIsTTY(), os.Stdout)
}

// NewSimpleLoggerWithWriter creates a logger writing to w.
func NewSimpleLoggerWithWriter(module string, level Level, useColors bool, w io.Writer) *SimpleLogger {
	return &SimpleLogger{
		module:    module,
		level:     level,
		logger:    log.New(w, "", log.LstdFlags),
		useColors: useColors,
	}
}

func stdoutIsTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func (l *SimpleLogger) format(level Level, msg string, args ...interface{}) string {
	var b strings.Builder
	module := "[" + l.module + "]"
	name := level.String()
	if l.useColors {
		module = colorCyan + module + colorReset
		name = levelColor(level) + name + colorReset
	}
	b.WriteString(module)
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}

func levelColor(level Level) string {
	switch level {
	case LevelDebug:
		return colorGray
	case LevelInfo:
		return colorGreen
	case LevelWarn:
		return colorYellow
	case LevelFatal:
		return colorRed + colorBold
	default:
		return colorRed
	}
}

func (l *SimpleLogger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.logger.Println(l.format(level, msg, args...))
	if level == LevelFatal {
		os.Exit(1)
	}
}

func (l *SimpleLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *SimpleLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *SimpleLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *SimpleLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

// Fatal logs and exits the process.
func (l *SimpleLogger) Fatal(msg string, args ...interface{}) { l.log(LevelFatal, msg, args...) }

// WithModule returns a logger whose module is nested under the current one ("web/forms").
func (l *SimpleLogger) WithModule(module string) Logger {
	name := module
	if l.module != "" {
		name = l.module + "/" + module
	}
	return &SimpleLogger{
		module:    name,
		level:     l.level,
		logger:    l.logger,
		useColors: l.useColors,
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)
