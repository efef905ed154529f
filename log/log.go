// Package log writes the console's diagnostics to a daily file in the logs directory.
// Nothing is written unless logs.write is set.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/grundrisse/grundrisse/filesystem"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is a set of structured key-value pairs attached to a log entry.
type Fields = logrus.Fields

var logger = newLogger(io.Discard, logrus.PanicLevel, false)

func newLogger(out io.Writer, level logrus.Level, asJson bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	if asJson {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return l
}

// Setup opens today's log file and applies logs.level and logs.json.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = newLogger(io.Discard, logrus.PanicLevel, false)
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}

	logger = newLogger(f, level, viper.GetBool(key.LogsJson))
	return nil
}

// WithFields returns an entry carrying the given fields, e.g. a request id.
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any) { logger.Error(args...) }

func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

func Warn(args ...any) { logger.Warn(args...) }

func Info(args ...any) { logger.Info(args...) }

func Infof(format string, args ...any) { logger.Infof(format, args...) }

func Debug(args ...any) { logger.Debug(args...) }
