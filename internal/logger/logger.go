// Package logger builds the zap logger used by the commands.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select where and how much is logged.
type Options struct {
	Level  string `yaml:"level"`  // debug, info, warn or error; default info
	File   string `yaml:"file"`   // append to this file; "" or "-" for stdout, os.DevNull for nothing
	Format string `yaml:"format"` // console or json; default console
}

func level(option string) (zapcore.Level, bool) {
	switch strings.ToLower(option) {
	case "", "info":
		return zapcore.InfoLevel, true
	case "debug":
		return zapcore.DebugLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// New returns a logger for the options. Options that cannot be used are reset to their default and
// reported through the returned logger, so New never fails.
func New(options *Options) *zap.Logger {
	var warnings []func(*zap.Logger)

	lvl, ok := level(options.Level)
	if !ok {
		options.Level = ""
		warnings = append(warnings, func(l *zap.Logger) { l.Warn("could not parse logger level") })
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	switch strings.ToLower(options.Format) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		options.Format = ""
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		warnings = append(warnings, func(l *zap.Logger) { l.Warn("could not parse logger format") })
	}

	// Opened only after level and format are settled.
	var output zapcore.WriteSyncer
	switch options.File {
	case "", "-":
		output = zapcore.Lock(os.Stdout)
	case os.DevNull:
		return zap.NewNop()
	default:
		file, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			output = zapcore.Lock(os.Stdout)
			warnings = append(warnings, func(l *zap.Logger) { l.Warn("could not open logger file", zap.Error(err)) })
		} else {
			output = zapcore.Lock(file)
		}
	}

	logger := zap.New(zapcore.NewCore(encoder, output, lvl))
	for _, warn := range warnings {
		warn(logger)
	}
	return logger
}
