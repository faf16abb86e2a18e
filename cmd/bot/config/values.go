package config

import (
	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
	"github.com/redis/go-redis/v9"
)

const (
	// AppName is the name of the application.
	AppName = "helpdesk"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvRedisUrl is the environment variable for the optional Redis URL. Cooldowns are kept in memory without it.
	EnvRedisUrl = `REDIS_URL`

	// EnvApiToken is the environment variable for the bearer token of the guild config API. The API is disabled
	// without it.
	EnvApiToken = `API_TOKEN`

	// EnvConfigFile is the environment variable for the optional YAML settings file.
	EnvConfigFile = `CONFIG_FILE`

	// defaultMonitoringPort is used when no monitoring port is provided.
	defaultMonitoringPort = "8080"

	// defaultTranscriptRequestsPerSecond bounds history requests while generating a transcript.
	defaultTranscriptRequestsPerSecond = 2
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// MongoUri is the URI for the MongoDB database.
	MongoUri string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string

	// RedisUrl is the URL of the Redis server holding cooldowns.
	RedisUrl string

	// ApiToken authenticates requests to the guild config API.
	ApiToken string

	// ConfigFile is the path of the YAML settings file.
	ConfigFile string

	// RedisClient is the Redis client. It is nil when no Redis URL is provided.
	RedisClient *redis.Client

	// TicketSettings tune the ticket flows.
	TicketSettings = tickets.DefaultSettings()

	// TranscriptRequestsPerSecond bounds history requests while generating a transcript.
	TranscriptRequestsPerSecond float64 = defaultTranscriptRequestsPerSecond
)
