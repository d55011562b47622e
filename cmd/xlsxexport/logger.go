package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a JSON zap logger writing to stderr, stdout, or a daily
// file inside the directory logPath.
func newLogger(logLevel, logPath string) (*zap.Logger, error) {
	level := zap.InfoLevel
	switch logLevel {
	case "debug", "trace":
		level = zap.DebugLevel
	case "info", "":
		level = zap.InfoLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", logLevel)
	}

	var logWriter string
	switch logPath {
	case "stderr", "":
		logWriter = "stderr"
	case "stdout":
		logWriter = "stdout"
	default:
		if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("log path %s: %w", logPath, err)
		}
		logWriter = filepath.Join(logPath, time.Now().Format("2006-01-02")+".log")
	}

	// durations in microseconds
	microDurationEncoder := func(d time.Duration, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendInt64(d.Nanoseconds() / 1e3)
	}

	c := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: microDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{logWriter},
		ErrorOutputPaths: []string{logWriter},
	}
	return c.Build()
}
