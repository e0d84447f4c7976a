// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides leveled logging for Kanbo.
//
// A Logger dispatches formatted events to its writer; the package keeps one
// default logger writing to stderr, which is what the rest of the code uses
// through the package-level functions.
package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

// LevelLogger provides level-related logging functions
type LevelLogger interface {
	LevelEnabled(level Level) bool

	Trace(format string, v ...any)
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// Logger is a leveled logger writing line-oriented events to a single writer
type Logger struct {
	mu     sync.Mutex
	name   string
	level  Level
	out    io.Writer
	caller bool
}

var defaultLogger = &Logger{name: "default", level: INFO, out: os.Stderr, caller: true}

// GetLogger returns a named logger sharing the default writer and level.
// Named loggers exist so log lines can be attributed (eg: "xorm").
func GetLogger(name string) *Logger {
	return &Logger{name: name, level: defaultLogger.level, out: defaultLogger.out, caller: false}
}

// SetLevel sets the level of the default logger
func SetLevel(level Level) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.level = level
}

// SetOutput redirects the default logger, used by tests
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.out = w
}

// LevelEnabled reports whether events at the given level would be written
func (l *Logger) LevelEnabled(level Level) bool {
	return level >= l.level
}

// Log writes an event at the given level, skip frames above the caller
func (l *Logger) Log(skip int, level Level, format string, v ...any) {
	if !l.LevelEnabled(level) {
		return
	}
	loc := ""
	if l.caller {
		if _, file, line, ok := runtime.Caller(skip + 1); ok {
			for i := len(file) - 1; i > 0; i-- {
				if file[i] == '/' {
					file = file[i+1:]
					break
				}
			}
			loc = fmt.Sprintf(" %s:%d", file, line)
		}
	}
	msg := fmt.Sprintf(format, v...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s [%s]%s %s\n", time.Now().Format("2006/01/02 15:04:05"), l.name, level.String(), loc, msg)
}

func (l *Logger) Trace(format string, v ...any) { l.Log(1, TRACE, format, v...) }
func (l *Logger) Debug(format string, v ...any) { l.Log(1, DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.Log(1, INFO, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.Log(1, WARN, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.Log(1, ERROR, format, v...) }

// Trace records trace log
func Trace(format string, v ...any) {
	defaultLogger.Log(1, TRACE, format, v...)
}

// Debug records debug log
func Debug(format string, v ...any) {
	defaultLogger.Log(1, DEBUG, format, v...)
}

// Info records information log
func Info(format string, v ...any) {
	defaultLogger.Log(1, INFO, format, v...)
}

// Warn records warning log
func Warn(format string, v ...any) {
	defaultLogger.Log(1, WARN, format, v...)
}

// Error records error log
func Error(format string, v ...any) {
	defaultLogger.Log(1, ERROR, format, v...)
}

// ErrorWithSkip records error log with the caller skipping the given frames
func ErrorWithSkip(skip int, format string, v ...any) {
	defaultLogger.Log(skip+1, ERROR, format, v...)
}

// Fatal records fatal log and exits the process
func Fatal(format string, v ...any) {
	defaultLogger.Log(1, FATAL, format, v...)
	os.Exit(1)
}
