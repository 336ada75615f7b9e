package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LogLevelFromEnv parses the LAKEGATE_LOG_LEVEL environment variable and
// returns the corresponding slog.Level. Falls back to LOG_LEVEL without the
// prefix. Defaults to slog.LevelInfo if neither is set or if the value is
// invalid.
func LogLevelFromEnv() slog.Level {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	levelStr := v.GetString("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}

	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("Invalid LOG_LEVEL, using INFO", "value", levelStr)
		return slog.LevelInfo
	}
}
