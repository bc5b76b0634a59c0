package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's sugared logger so command code can log with
// key-value pairs without importing zap directly.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger. Verbose mode enables debug-level
// output with caller annotations; otherwise only warnings and errors
// reach the terminal so command output stays clean.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return &Logger{SugaredLogger: base.Sugar()}
}

// Sync flushes buffered log entries; errors from closed terminals are
// not interesting at exit.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
