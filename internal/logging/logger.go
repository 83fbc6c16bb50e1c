// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// appFormatter tags every message with the application name before handing
// the entry to the wrapped formatter.
type appFormatter struct {
	appName string
	logrus.Formatter
}

func (f *appFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	tagged := *entry
	tagged.Message = "[" + f.appName + "] " + entry.Message
	return f.Formatter.Format(&tagged)
}

// InitLogger sets the level from levelStr (LOG_LEVEL when empty), the text
// formatter and the app name prefix. Logs go to stderr so command output on
// stdout stays parseable.
func InitLogger(appName, levelStr string) {
	Logger.SetOutput(os.Stderr)

	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	levelStr = strings.ToLower(levelStr)
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", levelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	Logger.SetFormatter(&appFormatter{
		appName:   appName,
		Formatter: &logrus.TextFormatter{FullTimestamp: true},
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
