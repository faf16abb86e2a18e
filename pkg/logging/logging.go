package logging

import (
	"log/slog"
	"os"
)

const (
	// KeyAppName is the key for the application name.
	KeyAppName = "app"

	// KeyError is the key for an error.
	KeyError = "err"

	// KeyDal is the key for the data access layer name.
	KeyDal = "dal"

	// KeyGuild is the key for a guild ID.
	KeyGuild = "guild_id"

	// KeyChannel is the key for a channel ID.
	KeyChannel = "channel_id"

	// KeyUser is the key for a user ID.
	KeyUser = "user_id"

	// KeyInteraction is the key for the correlation ID of an interaction.
	KeyInteraction = "interaction"
)

// Name is the name of the application that is logging.
type Name string

// Config is the configuration for the logger.
type Config struct {
	appName string
	level   slog.Level
}

// NewConfig creates a new logger config for the given application.
func NewConfig(appName Name) *Config {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	return &Config{
		appName: string(appName),
		level:   level,
	}
}

// CommonLogger creates the JSON logger used across the application and sets it as the default logger.
func CommonLogger(conf *Config) (*slog.Logger, error) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     conf.level,
	})

	l := slog.New(h).With(slog.String(KeyAppName, conf.appName))
	slog.SetDefault(l)
	return l, nil
}
