package logging

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotationConfig contains file logging rotation settings
type FileRotationConfig struct {
	Path       string // Log file path (required)
	MaxSizeMB  int    // Megabytes before rotation (default: 100)
	MaxBackups int    // Rotated files kept (default: 3)
	MaxAge     int    // Days rotated files are kept (default: 28)
	Compress   bool
}

// NewLoggerWithFile creates a logger that writes to stdout and, when fileConfig has a path,
// to a rotated log file as well. Colors are disabled whenever a file is written.
func NewLoggerWithFile(module string, level Level, useColors bool, fileConfig *FileRotationConfig) (*SimpleLogger, error) {
	if fileConfig == nil || fileConfig.Path == "" {
		return NewSimpleLogger(module, level, useColors), nil
	}

	fileWriter := &lumberjack.Logger{
		Filename:   fileConfig.Path,
		MaxSize:    orDefault(fileConfig.MaxSizeMB, 100),
		MaxBackups: orDefault(fileConfig.MaxBackups, 3),
		MaxAge:     orDefault(fileConfig.MaxAge, 28),
		Compress:   fileConfig.Compress,
	}

	return NewSimpleLoggerWithWriter(module, level, false, io.MultiWriter(os.Stdout, fileWriter)), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
