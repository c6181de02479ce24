package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = fallback()

// fallback is used until Init runs, so startup failures still reach stderr.
func fallback() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// Init builds the global JSON logger. "production" selects the production
// config, anything else the development one.
func Init(appEnv string) error {
	var config zap.Config
	if appEnv == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "json"

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	globalLogger = logger.Sugar()
	return nil
}

func L() *zap.SugaredLogger {
	return globalLogger
}

// Set replaces the global logger, used by tests.
func Set(logger *zap.SugaredLogger) {
	globalLogger = logger
}

// Close flushes buffered entries.
func Close() error {
	return globalLogger.Sync()
}

func Info(message string, fields ...interface{}) {
	globalLogger.Infow(message, fields...)
}

func Warn(message string, fields ...interface{}) {
	globalLogger.Warnw(message, fields...)
}

func Error(message string, fields ...interface{}) {
	globalLogger.Errorw(message, fields...)
}

func Fatal(message string, fields ...interface{}) {
	globalLogger.Fatalw(message, fields...)
}
