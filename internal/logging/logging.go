// Package logging builds the zap logger used for verbose diagnostics.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a debug-level console logger writing to w when verbose is set,
// and a no-op logger otherwise.
func New(verbose bool, w io.Writer) *zap.Logger {
	if !verbose || w == nil {
		return zap.NewNop()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	return zap.New(core)
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
