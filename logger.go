package qsim

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

/*
NewLogger builds the logger used by the shot runner and the CLI. An unknown
level falls back to info.
*/
func NewLogger(level string) *log.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "qsim",
		ReportTimestamp: true,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
