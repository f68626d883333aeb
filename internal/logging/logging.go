// Package logging builds the diagnostic logger. The report goes to stdout;
// everything here goes to stderr and, optionally, a rotated log file.
package logging

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/psantana5/jobhealth/internal/config"
)

// TimestampFormat is used by both text and JSON formatters
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger wraps a logrus entry carrying the run id
type Logger struct {
	*logrus.Entry
	file io.Closer
}

// New creates a logger writing to out and, when cfg.File is set, to a
// size-rotated file as well.
func New(cfg config.LogConfig, out io.Writer) *Logger {
	log := logrus.New()
	log.SetLevel(ParseLevel(cfg.Level))

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: TimestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: TimestampFormat,
			DisableColors:   true,
		})
	}

	l := &Logger{}
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // MB
			MaxBackups: cfg.MaxBackups,
		}
		l.file = fileWriter
		out = io.MultiWriter(out, fileWriter)
	}
	log.SetOutput(out)

	l.Entry = log.WithField("run_id", uuid.NewString())
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Entry: logrus.NewEntry(log)}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a logrus level.
// Unknown strings default to info.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Close flushes and closes the log file, if any. Safe to call twice.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
