package logging

import "testing"

// TestLogger is a logger for tests. It is silent unless created with NewTestLoggerVerbose.
type TestLogger struct {
	module string
	t      *testing.T
}

// NewTestLogger creates a silent test logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{module: "test"}
}

// NewTestLoggerVerbose creates a test logger that writes through t.Logf.
func NewTestLoggerVerbose(t *testing.T) *TestLogger {
	return &TestLogger{module: "test", t: t}
}

func (l *TestLogger) logf(level, msg string, args []interface{}) {
	if l.t != nil {
		l.t.Helper()
		l.t.Logf("[%s] %s: %s %v", l.module, level, msg, args)
	}
}

func (l *TestLogger) Debug(msg string, args ...interface{}) { l.logf("DEBUG", msg, args) }
func (l *TestLogger) Info(msg string, args ...interface{})  { l.logf("INFO", msg, args) }
func (l *TestLogger) Warn(msg string, args ...interface{})  { l.logf("WARN", msg, args) }
func (l *TestLogger) Error(msg string, args ...interface{}) { l.logf("ERROR", msg, args) }

// Fatal fails the test instead of exiting.
func (l *TestLogger) Fatal(msg string, args ...interface{}) {
	if l.t != nil {
		l.t.Fatalf("[%s] FATAL: %s %v", l.module, msg, args)
	}
}

// WithModule nests the module name ("test/forms").
func (l *TestLogger) WithModule(module string) Logger {
	return &TestLogger{module: l.module + "/" + module, t: l.t}
}
