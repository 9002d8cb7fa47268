package logsvc

import (
	"log"

	"github.com/trezcool/shule/core"
)

// StdLogger logs to the standard logger only. Used in dev and tests
// where error reporting is not wired.
type StdLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std, enabled: true}
}

func (l *StdLogger) Enable(enabled bool) { l.enabled = enabled }

func (l *StdLogger) print(lvl, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	l.std.Printf("%s %s", lvl, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *StdLogger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, err)
	}
	l.print("ERROR", msg, args)
}
