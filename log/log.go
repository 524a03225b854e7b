// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log defines this module's logging interface. By default it logs
// to stderr via the standard library logger, but callers may install their
// own implementation.
package log

import "log"

// Logger is the logging interface used throughout this module.
type Logger interface {
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}

var active Logger = &StdLogger{}

// SetLogger replaces the active logger.
func SetLogger(l Logger) { active = l }

// Errorf logs a formatted error.
func Errorf(format string, args ...any) { active.Errorf(format, args...) }

// Error logs an error.
func Error(args ...any) { active.Error(args...) }

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) { active.Warnf(format, args...) }

// Warn logs a warning.
func Warn(args ...any) { active.Warn(args...) }

// Infof logs formatted info.
func Infof(format string, args ...any) { active.Infof(format, args...) }

// Info logs info.
func Info(args ...any) { active.Info(args...) }

// Debugf logs formatted debug output.
func Debugf(format string, args ...any) { active.Debugf(format, args...) }

// Debug logs debug output.
func Debug(args ...any) { active.Debug(args...) }

// StdLogger is the default Logger, backed by the standard library "log"
// package. Debug output is suppressed unless Verbose is set.
type StdLogger struct {
	Verbose bool
}

// Errorf logs a formatted error.
func (StdLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

// Error logs an error.
func (StdLogger) Error(args ...any) { log.Print(append([]any{"ERROR:"}, args...)...) }

// Warnf logs a formatted warning.
func (StdLogger) Warnf(format string, args ...any) { log.Printf("WARN: "+format, args...) }

// Warn logs a warning.
func (StdLogger) Warn(args ...any) { log.Print(append([]any{"WARN:"}, args...)...) }

// Infof logs formatted info.
func (StdLogger) Infof(format string, args ...any) { log.Printf("INFO: "+format, args...) }

// Info logs info.
func (StdLogger) Info(args ...any) { log.Print(append([]any{"INFO:"}, args...)...) }

// Debugf logs formatted debug output, if Verbose is set.
func (l StdLogger) Debugf(format string, args ...any) {
	if l.Verbose {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Debug logs debug output, if Verbose is set.
func (l StdLogger) Debug(args ...any) {
	if l.Verbose {
		log.Print(append([]any{"DEBUG:"}, args...)...)
	}
}
