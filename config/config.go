package config

import (
	"os"
	"strconv"
	"strings"

	"notion-blocks/blockmirror/utils/logger"
)

type Config struct {
	AppEnv              string
	AppPort             string
	AllowedOrigins      string
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPath              string
	DBMaxIdleConns      int
	DBMaxOpenConns      int
	NatsURL             string
	JWTSecret           string
	JWTExpirationHours  int
	BlockMaxDepth       int
	EventPollIntervalMs int
	IntegrationName     string
	IntegrationSecret   string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	logger.Log.Debug().Msgf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		logger.Log.Warn().Msgf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	logger.Log.Info().Msg("Loading configuration...")

	return Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		AppPort:             getEnv("APP_PORT", "8080"),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", "*"),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "blockmirror"),
		DBPassword:          getEnv("DB_PASSWORD", "blockmirror"),
		DBName:              getEnv("DB_NAME", "blockmirror"),
		DBPath:              getEnv("DB_PATH", "blockmirror.db"),
		DBMaxIdleConns:      getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:      getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		NatsURL:             getEnv("NATS_URL", "nats://localhost:4222"),
		JWTSecret:           getEnv("JWT_SECRET", "your-super-secret-key-change-this-in-production"),
		JWTExpirationHours:  getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		BlockMaxDepth:       getEnvAsInt("BLOCK_MAX_DEPTH", 64),
		EventPollIntervalMs: getEnvAsInt("EVENT_POLL_INTERVAL_MS", 1000),
		IntegrationName:     getEnv("INTEGRATION_NAME", ""),
		IntegrationSecret:   getEnv("INTEGRATION_SECRET", ""),
	}
}

// Origins splits AllowedOrigins on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
