package upstream

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// leveledLogger adapts logrus to retryablehttp.LeveledLogger.
type leveledLogger struct {
	l *logrus.Logger
}

func newLeveledLogger(l *logrus.Logger) *leveledLogger { return &leveledLogger{l: l} }

func (a *leveledLogger) entry(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{"component": "upstream"}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return a.l.WithFields(fields)
}

func (a *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	a.entry(keysAndValues).Error(msg)
}

func (a *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	a.entry(keysAndValues).Info(msg)
}

func (a *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	a.entry(keysAndValues).Debug(msg)
}

func (a *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	a.entry(keysAndValues).Warn(msg)
}
