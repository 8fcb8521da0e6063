// Package logger provides the leveled, structured logger used across mbtestgen.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of log messages.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Config holds the logger configuration.
type Config struct {
	Level     Level
	UseColor  bool
	JSON      bool
	Component string
}

// Field represents a structured field in a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err.Error()}
}

type entry struct {
	Time      time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger writes leveled log entries to a single output writer.
type Logger struct {
	mu     sync.Mutex
	config Config
	out    io.Writer
}

var defaultLogger = &Logger{
	config: Config{Level: InfoLevel, Component: "mbtestgen"},
	out:    os.Stderr,
}

// Initialize reconfigures the default logger.
func Initialize(config Config) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.config = config
}

// SetOutput redirects the default logger, mainly for tests.
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.out = w
}

func (l *Logger) log(level Level, message string, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.config.Level {
		return
	}

	e := entry{
		Time:      time.Now(),
		Level:     level.String(),
		Message:   message,
		Component: l.config.Component,
	}
	if len(fields) > 0 {
		e.Fields = make(map[string]interface{}, len(fields))
		for _, f := range fields {
			e.Fields[f.Key] = f.Value
		}
	}

	var line string
	if l.config.JSON {
		b, _ := json.Marshal(e)
		line = string(b)
	} else {
		line = l.formatPretty(e, fields)
	}
	fmt.Fprintln(l.out, line)
}

// formatPretty renders one entry for terminal consumption. Fields are
// appended in call order rather than map order so output stays stable.
func (l *Logger) formatPretty(e entry, fields []Field) string {
	var b strings.Builder

	b.WriteString(e.Time.Format("15:04:05"))
	b.WriteString(" ")

	level := e.Level
	if l.config.UseColor {
		switch e.Level {
		case "DEBUG":
			level = "\033[36m" + level + "\033[0m"
		case "INFO":
			level = "\033[32m" + level + "\033[0m"
		case "WARN":
			level = "\033[33m" + level + "\033[0m"
		case "ERROR":
			level = "\033[31m" + level + "\033[0m"
		}
	}
	b.WriteString("[" + level + "]")

	if e.Component != "" {
		b.WriteString(" " + e.Component + ":")
	}
	b.WriteString(" " + e.Message)

	for _, f := range fields {
		b.WriteString(fmt.Sprintf(" %s=%v", f.Key, f.Value))
	}

	return b.String()
}

// Convenience functions for the default logger.

func Debug(message string, fields ...Field) {
	defaultLogger.log(DebugLevel, message, fields...)
}

func Info(message string, fields ...Field) {
	defaultLogger.log(InfoLevel, message, fields...)
}

func Warn(message string, fields ...Field) {
	defaultLogger.log(WarnLevel, message, fields...)
}

func Error(message string, fields ...Field) {
	defaultLogger.log(ErrorLevel, message, fields...)
}
