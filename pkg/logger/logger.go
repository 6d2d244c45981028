package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"video-hosting-service/pkg/config"
)

// Logger wraps logrus so call sites stay decoupled from the backend.
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// NewLogger builds a logger from service configuration.
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()

	level := logrus.InfoLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)

	if cfg != nil && cfg.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger := &Logger{entry: l}
	if cfg != nil && cfg.Log.Output == "file" && cfg.Log.Filename != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Filename), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.Log.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				logger.file = f
				l.SetOutput(io.MultiWriter(os.Stdout, f))
				return logger
			}
		}
		l.Warnf("falling back to stdout logging filename=%s", cfg.Log.Filename)
	}
	l.SetOutput(os.Stdout)
	return logger
}

func (l *Logger) Debug(msg string)                     { l.entry.Debug(msg) }
func (l *Logger) Debugf(format string, args ...any)    { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)     { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)     { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any)    { l.entry.Errorf(format, args...) }
func (l *Logger) Fatal(msg string)                     { l.entry.Fatal(msg) }

// Close releases the log file if one is open.
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

var (
	globalMu     sync.RWMutex
	globalLogger = &Logger{entry: logrus.StandardLogger()}
)

// SetGlobalLogger installs the process-wide logger (startup only).
func SetGlobalLogger(l *Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(msg string)                  { global().Debug(msg) }
func Debugf(format string, args ...any) { global().Debugf(format, args...) }
func Infof(format string, args ...any)  { global().Infof(format, args...) }
func Warnf(format string, args ...any)  { global().Warnf(format, args...) }
func Errorf(format string, args ...any) { global().Errorf(format, args...) }
func Fatal(msg string)                  { global().Fatal(msg) }
