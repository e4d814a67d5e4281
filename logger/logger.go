package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	zapLog   = zap.NewNop()
	logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func InitLogger(level zapcore.Level) error {

	config := zap.NewDevelopmentConfig()
	logLevel.SetLevel(level)
	config.Level = logLevel
	config.OutputPaths = []string{"stderr"}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("Jan _2 15:04:05.000000000")
	encoderConfig.StacktraceKey = "" // to hide stacktrace info
	config.EncoderConfig = encoderConfig

	built, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	zapLog = built
	return nil
}

// SetLevel changes the level of the logger built by InitLogger.
func SetLevel(level zapcore.Level) {
	logLevel.SetLevel(level)
}

// L returns the shared logger without the caller skip, for components that take a *zap.Logger.
func L() *zap.Logger {
	return zapLog.WithOptions(zap.AddCallerSkip(-1))
}

func Info(message string, fields ...zap.Field) {
	zapLog.Info(message, fields...)
}

func Warn(message string, fields ...zap.Field) {
	zapLog.Warn(message, fields...)
}

func Debug(message string, fields ...zap.Field) {
	zapLog.Debug(message, fields...)
}

func Error(message string, fields ...zap.Field) {
	zapLog.Error(message, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return zapLog.Sync()
}
