package modem

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "modem",
	Level:  log.InfoLevel,
})

// SetLogger replaces the package logger. Passing nil is a no-op.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}
