package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithFile_NoFileConfig(t *testing.T) {
	logger, err := NewLoggerWithFile("test", LevelInfo, false, nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLoggerWithFile("test", LevelInfo, false, &FileRotationConfig{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLoggerWithFile_WritesPlainLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := NewLoggerWithFile("web", LevelInfo, true, &FileRotationConfig{Path: logPath, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("campaign created", "emails", 3)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "[web] INFO: campaign created emails=3")
	assert.NotContains(t, text, "hidden")
	assert.False(t, strings.Contains(text, "\033["), "file output must not contain ANSI escapes")
}
