package logger

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// no-op until Initialize, so library code can log unconditionally
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. Logs go to stderr, stdout carries
// the command output.
func Initialize(jsonOutput bool) error {
	return InitializeWriter(os.Stderr, jsonOutput)
}

// InitializeWriter sets up the global logger writing to w.
func InitializeWriter(w io.Writer, jsonOutput bool) error {
	if w == nil {
		return errors.New("logger: nil writer")
	}
	JSONOutput = jsonOutput

	var enc zapcore.Encoder
	if jsonOutput {
		// JSON structured output for machine consumption
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	Logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.InfoLevel)).Sugar()
	return nil
}

// Sync flushes the global logger. Errors from syncing a terminal are
// ignored.
func Sync() {
	_ = Logger.Sync()
}
