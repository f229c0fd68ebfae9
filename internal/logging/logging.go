package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New builds a zap logger. format "json" selects the production encoder, anything
// else the console one.
func New(level, format string) (*zap.Logger, error) {
	var zapCfg zap.Config

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("logging: unknown level %q", level)
	}
}

// GormLevel keeps SQL logging silent unless the service runs at debug level.
func GormLevel(level string) gormlogger.LogLevel {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		return gormlogger.Info
	}
	return gormlogger.Silent
}
