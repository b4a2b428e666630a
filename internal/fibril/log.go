package fibril

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// logLevel is a configurable log level
	verboseLogging bool

	logLevel = zap.LevelEnablerFunc(func(level zapcore.Level) bool {

		// true: log message at this level
		// false: skip message at this level
		if verboseLogging {
			return level >= zapcore.DebugLevel
		} else {
			return level >= zapcore.InfoLevel
		}
	})

	l = zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			logLevel,
		),
	)

	// flog is the default sugared logger
	flog = l.Sugar()
)

func SetVerboseLogging() {
	verboseLogging = true
}

func isVerboseLogging() bool {
	return verboseLogging
}
