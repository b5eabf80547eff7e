/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gmsuite/gmsuite/common/flogging/fabenc"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SpecEnv names the environment variable consulted when Config.LogSpec is
// empty.
const SpecEnv = "GMSUITE_LOGGING_SPEC"

// structuredFormats maps the Format values that select a structured
// encoder. Any other format string is a fabenc console template.
var structuredFormats = map[string]Encoding{
	"json":   JSON,
	"logfmt": LOGFMT,
}

// Config is applied to a Logging instance by New and Apply. Zero fields take
// their defaults: the package console template, the GMSUITE_LOGGING_SPEC
// environment variable or INFO, and os.Stderr.
type Config struct {
	// Format is "json", "logfmt" or a fabenc template such as
	// "%{time} [%{module}] %{level} %{message}".
	Format string

	// LogSpec is a level spec accepted by ActivateSpec, for example
	// "info:bccsp_gm=debug".
	LogSpec string

	Writer io.Writer
}

// Logging is the shared state behind every logger it hands out: level spec,
// encoding, sink and observer. Changes apply to loggers already created.
type Logging struct {
	*LoggerLevels

	mutex      sync.RWMutex
	encoding   Encoding
	formatters []fabenc.Formatter
	writer     zapcore.WriteSyncer
	observer   Observer

	encoderConfig zapcore.EncoderConfig
}

func New(c Config) (*Logging, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "name"

	s := &Logging{
		LoggerLevels:  &LoggerLevels{defaultLevel: defaultLevel},
		encoderConfig: encoderConfig,
	}
	if err := s.Apply(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply replaces format, level spec and writer in that order. Nothing after
// a failing step is applied.
func (s *Logging) Apply(c Config) error {
	if err := s.SetFormat(c.Format); err != nil {
		return err
	}

	spec := c.LogSpec
	if spec == "" {
		spec = os.Getenv(SpecEnv)
	}
	if spec == "" {
		spec = defaultLevel.String()
	}
	if err := s.ActivateSpec(spec); err != nil {
		return err
	}

	w := c.Writer
	if w == nil {
		w = os.Stderr
	}
	s.SetWriter(w)
	return nil
}

// SetFormat selects the encoder for records written from now on. An empty
// format restores the default console template.
func (s *Logging) SetFormat(format string) error {
	if format == "" {
		format = defaultFormat
	}

	encoding, structured := structuredFormats[format]
	var formatters []fabenc.Formatter
	if !structured {
		var err error
		if formatters, err = fabenc.ParseFormat(format); err != nil {
			return err
		}
		encoding = CONSOLE
	}

	s.mutex.Lock()
	s.encoding = encoding
	if !structured {
		s.formatters = formatters
	}
	s.mutex.Unlock()
	return nil
}

// SetWriter swaps the sink and returns the previous one. Writers other than
// *os.File must be safe for concurrent use.
func (s *Logging) SetWriter(w io.Writer) io.Writer {
	var ws zapcore.WriteSyncer
	switch t := w.(type) {
	case *os.File:
		ws = zapcore.Lock(t)
	case zapcore.WriteSyncer:
		ws = t
	default:
		ws = zapcore.AddSync(w)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	prev := s.writer
	s.writer = ws
	return prev
}

// SetObserver installs the single observer notified of checked and written
// entries, returning the one it replaces.
func (s *Logging) SetObserver(observer Observer) Observer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	prev := s.observer
	s.observer = observer
	return prev
}

func (s *Logging) sink() zapcore.WriteSyncer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.writer
}

func (s *Logging) currentObserver() Observer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.observer
}

// Write sends b to the current sink.
func (s *Logging) Write(b []byte) (int, error) {
	return s.sink().Write(b)
}

func (s *Logging) Sync() error {
	return s.sink().Sync()
}

func (s *Logging) Encoding() Encoding {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.encoding
}

func (s *Logging) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) {
	if o := s.currentObserver(); o != nil {
		o.Check(e, ce)
	}
}

func (s *Logging) WriteEntry(e zapcore.Entry, fields []zapcore.Field) {
	if o := s.currentObserver(); o != nil {
		o.WriteEntry(e, fields)
	}
}

// ZapLogger returns a zap.Logger named name whose core follows this
// Logging's levels, encoding, sink and observer. It panics on an invalid
// name.
func (s *Logging) ZapLogger(name string) *zap.Logger {
	if !isValidLoggerName(name) {
		panic(fmt.Sprintf("invalid logger name: %s", name))
	}

	s.mutex.RLock()
	encoders := map[Encoding]zapcore.Encoder{
		CONSOLE: fabenc.NewFormatEncoder(s.formatters...),
		JSON:    zapcore.NewJSONEncoder(s.encoderConfig),
		LOGFMT:  zaplogfmt.NewEncoder(s.encoderConfig),
	}
	s.mutex.RUnlock()

	return NewZapLogger(&Core{
		LevelEnabler: s.LoggerLevels,
		Levels:       s.LoggerLevels,
		Encoders:     encoders,
		Selector:     s,
		Output:       s,
		Observer:     s,
	}).Named(name)
}

// Logger is ZapLogger wrapped in the sugared Logger.
func (s *Logging) Logger(name string) *Logger {
	return NewLogger(s.ZapLogger(name))
}
