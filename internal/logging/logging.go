// ABOUTME: File-backed zap logger for the CLI and TUI
// ABOUTME: Writes to the config directory so terminal output stays clean

package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing JSON lines to epay.log inside configDir.
// An empty configDir or an unwritable directory disables logging rather
// than failing the program; the log is a diagnostic aid, not a dependency.
func New(configDir string, debug bool) *zap.Logger {
	if configDir == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return zap.NewNop()
	}

	logPath := filepath.Join(configDir, "epay.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(f),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
