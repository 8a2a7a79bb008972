// ABOUTME: File-backed debug logger shared by the API client and TUI
// ABOUTME: Keeps diagnostics off the terminal while the alt screen is active

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Init wires the logger to a rotated debug.log in the config directory.
// If configDir is empty, logging stays disabled (no-op logger).
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(configDir, "debug.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.DebugLevel,
	)

	logger = zap.New(core)
	return nil
}

// Close flushes any buffered entries
func Close() {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	logger = zap.NewNop()
}

// Request logs an outgoing API request with its correlation ID
func Request(id, method, path string) {
	logger.Debug("request",
		zap.String("id", id),
		zap.String("method", method),
		zap.String("path", path),
	)
}

// Response logs the status of a completed API request
func Response(id string, status int) {
	logger.Debug("response",
		zap.String("id", id),
		zap.Int("status", status),
	)
}

// Log writes a freeform debug message
func Log(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	logger.Error(context, zap.Error(err))
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}
