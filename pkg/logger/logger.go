// Package logger provides the leveled printf-style logger shared by every layer of the service.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/loggo"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	moduleName = "carwash"

	writerStderr = "stderr"
	writerFile   = "file"

	// callDepth skips the Logger method frame so loggo records the caller's file:line.
	callDepth = 1
)

// Logger пишет записи в stderr и, если указан файл, в ротируемый лог-файл.
type Logger struct {
	ctx    *loggo.Context
	logger loggo.Logger
	file   *lumberjack.Logger
}

// New создает логгер с уровнем level ("debug", "info", "warn", "error").
// Пустой filePath отключает запись в файл.
func New(filePath, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	ctx := loggo.NewContext(lvl)
	if err := ctx.AddWriter(writerStderr, loggo.NewSimpleWriter(os.Stderr, loggo.DefaultFormatter)); err != nil {
		return nil, fmt.Errorf("logger: add stderr writer: %w", err)
	}

	l := &Logger{ctx: ctx, logger: ctx.GetLogger(moduleName)}

	if strings.TrimSpace(filePath) != "" {
		l.file = &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		if err := ctx.AddWriter(writerFile, loggo.NewSimpleWriter(l.file, loggo.DefaultFormatter)); err != nil {
			return nil, fmt.Errorf("logger: add file writer: %w", err)
		}
	}

	return l, nil
}

// NewWithWriter creates a logger that writes only to w. Used by tools and tests.
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	ctx := loggo.NewContext(lvl)
	if err := ctx.AddWriter(writerStderr, loggo.NewSimpleWriter(w, loggo.DefaultFormatter)); err != nil {
		return nil, fmt.Errorf("logger: add writer: %w", err)
	}

	return &Logger{ctx: ctx, logger: ctx.GetLogger(moduleName)}, nil
}

// NewDiscard возвращает логгер, который ничего не пишет.
func NewDiscard() *Logger {
	l, _ := NewWithWriter(io.Discard, "error")
	return l
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.logger.LogCallf(callDepth, loggo.DEBUG, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.logger.LogCallf(callDepth, loggo.INFO, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.logger.LogCallf(callDepth, loggo.WARNING, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.logger.LogCallf(callDepth, loggo.ERROR, format, v...)
}

// Fatal логирует сообщение и завершает процесс с кодом 1.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logger.LogCallf(callDepth, loggo.CRITICAL, format, v...)
	_ = l.Close()
	os.Exit(1)
}

// Close закрывает файл лога, если он был открыт.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) (loggo.Level, error) {
	if strings.TrimSpace(level) == "" {
		return loggo.INFO, nil
	}
	lvl, ok := loggo.ParseLevel(level)
	if !ok {
		return loggo.UNSPECIFIED, fmt.Errorf("logger: unknown level %q", level)
	}
	return lvl, nil
}
