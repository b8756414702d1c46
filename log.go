package ddbc

import (
	"github.com/sirupsen/logrus"
)

// logs is package-level so every parse uses the currently configured
// logger without threading one through every call. Swappable via
// SetLogger; defaults to tracing through logrus, same as production code
// elsewhere in this stack.
var logs logger

func init() {
	logs = defaultLogger{}
}

// logger receives one trace line per clause match and per AST-reduction
// pass. The parser never blocks or does I/O, so unlike most loggers in
// this codebase this one takes no context.
type logger interface {
	Tracef(format string, args ...interface{})
}

type defaultLogger struct{}

func (defaultLogger) Tracef(format string, args ...interface{}) {
	logrus.StandardLogger().Tracef(format, args...)
}

// DisableLogger discards everything. Install it with SetLogger to
// silence parse tracing entirely.
type DisableLogger struct{}

func (DisableLogger) Tracef(format string, args ...interface{}) {}

// SetLogger replaces the package-level logger.
func SetLogger(log logger) {
	logs = log
}
