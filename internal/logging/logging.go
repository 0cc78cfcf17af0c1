package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it.
// level: "debug", "info", "warn", "error" (case-insensitive, default info).
// format: "json" selects the JSON formatter, anything else the text formatter.
func Setup(level, format string) *logrus.Logger {
	return configure(logrus.StandardLogger(), os.Stdout, level, format)
}

func configure(l *logrus.Logger, out io.Writer, level, format string) *logrus.Logger {
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006/01/02 15:04:05"})
	}
	return l
}
