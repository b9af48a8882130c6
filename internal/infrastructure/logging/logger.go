package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/version"
)

// Logger wraps zap.Logger
type Logger struct {
	*zap.Logger
}

// Options configures a Logger
type Options struct {
	Level       string   // debug, info, warn, error; empty means info
	Development bool     // colored console output, stack traces from warn
	Outputs     []string // zap sinks (paths, "stdout", "stderr"); stdout when empty
}

// FromConfig builds the process logger from the LOG_* settings
func FromConfig(cfg config.LogConfig) (*Logger, error) {
	return New(Options{
		Level:       cfg.Level,
		Development: cfg.Development,
		Outputs:     cfg.Outputs,
	})
}

// New creates a logger. Every entry carries the service version.
func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(opts.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	var zc zap.Config
	if opts.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.MessageKey = "message"
		zc.EncoderConfig.NameKey = "logger"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if len(opts.Outputs) > 0 {
		zc.OutputPaths = opts.Outputs
	} else {
		zc.OutputPaths = []string{"stdout"}
	}
	zc.InitialFields = map[string]interface{}{"version": version.Version}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
