//
// DISCLAIMER
//
// Copyright 2017-2026 ArangoDB GmbH, Cologne, Germany
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Copyright holder is ArangoDB GmbH, Cologne, Germany
//

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Trigger components log every rotation at debug level; keep them at
// info unless asked for explicitly.
var defaultLevels = map[string]string{
	"trigger.signal": "info",
	"trigger.watch":  "info",
}

// Service exposes the interfaces for a logger service
// that supports different loggers with different levels.
type Service interface {
	// MustGetLogger creates a logger with given name.
	MustGetLogger(name string) zerolog.Logger
	// MustSetLevel sets the log level for the component with given name to given level.
	MustSetLevel(name, level string)
	// RotateLogFiles re-opens log file writer.
	RotateLogFiles() error
	// Close closes the log file writer (if any).
	Close() error
}

// loggingService implements Service
type loggingService struct {
	mutex        sync.Mutex
	rootLog      zerolog.Logger
	defaultLevel zerolog.Level
	levels       map[string]zerolog.Level
	file         *RotatingSink
}

type LoggerOutputOptions struct {
	Color   bool   // Produce colored logs
	JSON    bool   // Project JSON messages
	Stderr  bool   // Write logs to stderr
	LogFile string // Path of file to write to
}

func configureLogger(lg zerolog.ConsoleWriter) zerolog.ConsoleWriter {
	lg.TimeFormat = "2006-01-02T15:04:05-07:00"

	lg.FormatLevel = func(i interface{}) string {
		return fmt.Sprintf("|%s|", strings.ToUpper(fmt.Sprintf("%s", i)))
	}

	return lg
}

// formatWriter wraps out in a console writer unless JSON output is asked for.
func formatWriter(out io.Writer, options LoggerOutputOptions, noColor bool) io.Writer {
	if options.JSON {
		return out
	}
	return configureLogger(zerolog.ConsoleWriter{
		Out:     out,
		NoColor: noColor,
	})
}

// NewRootLogger creates a new zerolog logger with default settings.
// When a log file is configured, the returned sink writes to it and must
// be reopened on rotation and closed on shutdown.
func NewRootLogger(options LoggerOutputOptions) (zerolog.Logger, *RotatingSink) {
	var writers []io.Writer
	var file *RotatingSink
	var openErr error
	if options.LogFile != "" {
		if file, openErr = New(options.LogFile); openErr != nil {
			// Make sure the failure is seen somewhere.
			options.Stderr = true
		} else {
			writers = append(writers, formatWriter(file, options, true))
		}
	}
	if options.Stderr {
		writers = append(writers, formatWriter(os.Stderr, options, !options.Color))
	}

	writer := io.Discard
	if len(writers) == 1 {
		writer = writers[0]
	} else if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	}

	l := zerolog.New(writer).With().Timestamp().Logger()
	if openErr != nil {
		l.Error().Msg(openErr.Error())
		l.Fatal().Msg("Failed to initialize logging")
	}
	return l, file
}

// NewService creates a new Service.
func NewService(defaultLevel string, options LoggerOutputOptions) (Service, error) {
	l, err := stringToLevel(defaultLevel)
	if err != nil {
		return nil, maskAny(err)
	}
	rootLog, file := NewRootLogger(options)
	s := &loggingService{
		rootLog:      rootLog,
		defaultLevel: l,
		levels:       make(map[string]zerolog.Level),
		file:         file,
	}
	for k, v := range defaultLevels {
		s.MustSetLevel(k, v)
	}
	return s, nil
}

// MustGetLogger creates a logger with given name
func (s *loggingService) MustGetLogger(name string) zerolog.Logger {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	level, found := s.levels[name]
	if !found {
		level = s.defaultLevel
	}
	return s.rootLog.With().Str("component", name).Logger().Level(level)
}

// MustSetLevel sets the log level for the component with given name to given level.
func (s *loggingService) MustSetLevel(name, level string) {
	l, err := stringToLevel(level)
	if err != nil {
		panic(err)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.levels[name] = l
}

// RotateLogFiles re-opens log file writer.
func (s *loggingService) RotateLogFiles() error {
	if s.file == nil {
		return nil
	}
	return maskAny(s.file.Reopen())
}

// Close closes the log file writer.
func (s *loggingService) Close() error {
	if s.file == nil {
		return nil
	}
	return maskAny(s.file.Close())
}

// stringToLevel converts a level string to a zerolog level
func stringToLevel(l string) (zerolog.Level, error) {
	switch strings.ToLower(l) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	case "panic":
		return zerolog.PanicLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("Unknown log level '%s'", l)
}
