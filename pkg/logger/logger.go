package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level - уровень логирования.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel разбирает уровень из строки конфига. Неизвестное значение - info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger пишет форматированные сообщения с уровнями в stdout и,
// опционально, в файл.
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер. Если filePath не пустой, лог дублируется в файл
// (каталог создается при необходимости).
func New(filePath, level string) (*Logger, error) {
	l := &Logger{
		level: ParseLevel(level),
	}

	writers := []io.Writer{os.Stdout}

	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}

		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}

		l.file = f
		writers = append(writers, f)
	}

	l.out = log.New(io.MultiWriter(writers...), "", log.LstdFlags)

	return l, nil
}

// Close закрывает файл лога, если он был открыт.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}

	return nil
}

func (l *Logger) logf(lvl Level, prefix, format string, args ...interface{}) {
	if lvl < l.level {
		return
	}

	l.out.Printf(prefix+" "+format, args...)
}

// Debug пишет отладочное сообщение.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, "[DEBUG]", format, args...)
}

// Info пишет информационное сообщение.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, "[INFO]", format, args...)
}

// Warn пишет предупреждение.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, "[WARN]", format, args...)
}

// Error пишет сообщение об ошибке.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, "[ERROR]", format, args...)
}

// Fatal пишет сообщение и завершает процесс с кодом 1.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.logf(LevelError, "[FATAL]", format, args...)
	l.Close()
	os.Exit(1)
}
