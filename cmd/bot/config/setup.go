package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess"
	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess/connection"
)

// Parse reads the configuration from the environment and the optional settings file, then connects to the
// databases.
func Parse(ctx context.Context, l *slog.Logger) error {
	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envAppId := os.Getenv(EnvApplicationId); envAppId != "" {
		l.Debug("Found application ID in environment", slog.String("key", EnvApplicationId))
		ApplicationId = envAppId
	}

	if envMongoUri := os.Getenv(EnvMongoUri); envMongoUri != "" {
		l.Debug("Found MongoDB URI in environment", slog.String("key", EnvMongoUri))
		MongoUri = envMongoUri
	}

	if envMonitoringPort := os.Getenv(EnvMonitoringPort); envMonitoringPort != "" {
		l.Debug("Found monitoring port in environment", slog.String("key", EnvMonitoringPort))
		MonitoringPort = envMonitoringPort
	} else {
		MonitoringPort = defaultMonitoringPort
		l.Info("No monitoring port provided in environment, defaulting to "+defaultMonitoringPort, slog.String("key", EnvMonitoringPort))
	}

	if envRedisUrl := os.Getenv(EnvRedisUrl); envRedisUrl != "" {
		l.Debug("Found Redis URL in environment", slog.String("key", EnvRedisUrl))
		RedisUrl = envRedisUrl
	}

	if envApiToken := os.Getenv(EnvApiToken); envApiToken != "" {
		l.Debug("Found API token in environment", slog.String("key", EnvApiToken))
		ApiToken = envApiToken
	}

	if envConfigFile := os.Getenv(EnvConfigFile); envConfigFile != "" {
		l.Debug("Found config file in environment", slog.String("key", EnvConfigFile))
		ConfigFile = envConfigFile
	}

	if BotToken == "" || ApplicationId == "" || MongoUri == "" {
		return errors.New("not all required environment variables have been provided")
	}

	if ConfigFile != "" {
		f, err := LoadFile(ConfigFile)
		if err != nil {
			return err
		}
		if err := f.Apply(&TicketSettings, &TranscriptRequestsPerSecond); err != nil {
			return fmt.Errorf("invalid config file %s: %w", ConfigFile, err)
		}
		l.Info("Loaded config file", slog.String("path", ConfigFile))
	}

	if err := connectMongo(ctx, l); err != nil {
		return err
	}

	if RedisUrl != "" {
		client, err := connection.Redis(ctx, RedisUrl)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		RedisClient = client
		l.Debug("Connected to Redis", slog.String("key", EnvRedisUrl))
	} else {
		l.Info("No Redis URL provided, ticket cooldowns are kept in memory", slog.String("key", EnvRedisUrl))
	}
	return nil
}

func connectMongo(ctx context.Context, l *slog.Logger) error {
	mongoConn := new(connection.MongoDB)
	mongoConn.ConnectionString = MongoUri

	db, err := mongoConn.Connect(ctx)
	if err != nil {
		return fmt.Errorf("error connecting to mongo: %w", err)
	} else if db == nil {
		return errors.New("mongo client came back nil")
	}

	dataaccess.MongoDB = db

	if err := dataaccess.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	l.Debug("Connected to MongoDB", slog.String("key", EnvMongoUri))
	return nil
}
