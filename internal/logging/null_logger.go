package logging

// NullLogger discards everything. Used by tests that only care about a
// load's report, not its console output.
type NullLogger struct{}

// NewNullLogger returns a logger that drops all messages.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}
