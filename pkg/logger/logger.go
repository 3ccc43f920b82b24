// Package logger provides the structured logger of guardhouse, a thin interface over
// zap's SugaredLogger.
package logger

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger writes structured entries as a message followed by key value pairs:
//
//	lggr.Infow("Request served", "route", route, "status", status)
//
// Loggers are injected and named per component (http, datastore, cli). Tests should use
// [Test] or [TestObserved]; [New] is reserved for the binary.
//
// Levels
//   - Error: something failed on our side, e.g. a query failed while serving a request
//   - Warn: a client mistake or a recovered failure, e.g. a login with a wrong password
//   - Info: lifecycle events, e.g. server started, request served, passwords rehashed
//   - Debug: SQL statements and their arguments
type Logger interface {
	// Name returns the dotted name of the logger, e.g. "cli.http".
	Name() string
	// Named returns a child logger with name appended to the logger name.
	Named(name string) Logger
	// With returns a child logger that adds the key value pairs to every entry.
	With(keysAndValues ...any) Logger

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// Sync flushes buffered entries.
	Sync() error
}

// Config selects the level and encoding of a production logger.
type Config struct {
	Level zapcore.Level
	// Development switches to the human readable console encoder.
	Development bool
}

// ParseConfig builds a Config from a level name such as "debug" or "warn".
func ParseConfig(level string) (Config, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return Config{Level: lvl}, nil
}

// New builds a JSON logger writing to stderr, or a console logger in development mode.
func (c *Config) New() (Logger, error) {
	return NewWith(func(cfg *zap.Config) {
		if c.Development {
			*cfg = zap.NewDevelopmentConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(c.Level)
	})
}

// NewWith builds a logger from the zap production config as modified by cfgFn.
func NewWith(cfgFn func(*zap.Config)) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfgFn(&cfg)
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return wrap(z), nil
}

// Test returns a logger that writes every level to tb's log.
func Test(tb testing.TB) Logger {
	tb.Helper()

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zaptest.NewTestingWriter(tb), zapcore.DebugLevel)

	return wrap(zap.New(core))
}

// TestObserved returns a test logger and the entries it wrote at lvl or above.
func TestObserved(tb testing.TB, lvl zapcore.Level) (Logger, *observer.ObservedLogs) {
	tb.Helper()

	observed, logs := observer.New(lvl)
	z := zaptest.NewLogger(tb, zaptest.WrapOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, observed)
	})))

	return wrap(z), logs
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return wrap(zap.NewNop())
}

type logger struct {
	*zap.SugaredLogger
}

func wrap(z *zap.Logger) *logger {
	return &logger{z.Sugar()}
}

func (l *logger) Name() string {
	return l.Desugar().Name()
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}
