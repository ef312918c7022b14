// Package logging builds the structured logger used across the VEN.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/voltgrid/oadr2-ven/config"
)

// New creates a zap logger from the logging configuration. With no file
// configured, logs go to stdout; with a file, lumberjack handles rotation
// and Console additionally mirrors to stdout.
func New(cfg config.LoggingConfig) *zap.Logger {
	var ws zapcore.WriteSyncer
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  cfg.MaxSizeMB,
		}
		if cfg.Console {
			ws = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(lj))
		} else {
			ws = zapcore.AddSync(lj)
		}
	} else {
		ws = zapcore.AddSync(os.Stdout)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	return zap.New(zapcore.NewCore(encoder, ws, level))
}
