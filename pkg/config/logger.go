package config

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build returns the program logger: info and debug go to stdout, errors to stderr.
// Levels are coloured when the destination is a terminal.
func (conf LoggerConfig) Build() *zap.Logger {
	return conf.build(os.Stdout, os.Stderr)
}

func (conf LoggerConfig) build(stdout, stderr io.Writer) *zap.Logger {
	var low zapcore.LevelEnabler
	switch conf.Level {
	case "debug":
		low = zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
		})
	case "normal":
		low = zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
		})
	default:
		return zap.NewNop()
	}
	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(conf.encoder(stdout), zapcore.AddSync(stdout), low),
		zapcore.NewCore(conf.encoder(stderr), zapcore.AddSync(stderr), high),
	)
	return zap.New(core).Named("key-figures")
}

func (conf LoggerConfig) encoder(w io.Writer) zapcore.Encoder {
	if conf.Encoding == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isTerminal(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
