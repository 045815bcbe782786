// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Engine    EngineConfig
	Collector CollectorConfig
	Notifier  NotifierConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	APIKey       string
	APIKeyHeader string
}

// EngineConfig holds the conversation engine policy knobs.
type EngineConfig struct {
	MaxMessagesPerSession  int
	SessionTTL             time.Duration
	MinMessagesForCallback int
	MinEngagementMessages  int
	ConfidenceThreshold    float64
	MinIntelItems          int
	SweepInterval          time.Duration
}

// CollectorConfig holds configuration for the terminated-session collector.
type CollectorConfig struct {
	Type            string
	CallbackURL     string
	CallbackTimeout time.Duration
}

// NotifierConfig holds the dispatch queue configuration.
type NotifierConfig struct {
	Workers    int
	BufferSize int
}

// RedisConfig holds Redis connection configuration for the queue sink.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	QueueKey string
	QueueMax int64
}

// MongoConfig holds MongoDB configuration for the archive sink.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Auth: AuthConfig{
			APIKey:       getEnv("API_KEY", "default-api-key-change-me"),
			APIKeyHeader: getEnv("API_KEY_HEADER", "X-API-Key"),
		},
		Engine: EngineConfig{
			MaxMessagesPerSession:  getEnvAsInt("MAX_MESSAGES_PER_SESSION", 20),
			SessionTTL:             time.Duration(getEnvAsInt("SESSION_TIMEOUT_SECONDS", 3600)) * time.Second,
			MinMessagesForCallback: getEnvAsInt("MIN_MESSAGES_FOR_CALLBACK", 3),
			MinEngagementMessages:  getEnvAsInt("MIN_ENGAGEMENT_MESSAGES", 3),
			ConfidenceThreshold:    getEnvAsFloat("SCAM_CONFIDENCE_THRESHOLD", 0.6),
			MinIntelItems:          getEnvAsInt("MIN_INTEL_ITEMS", 5),
			SweepInterval:          time.Duration(getEnvAsInt("SWEEP_INTERVAL_SECONDS", 300)) * time.Second,
		},
		Collector: CollectorConfig{
			Type:            getEnv("COLLECTOR_TYPE", "log"),
			CallbackURL:     getEnv("CALLBACK_URL", ""),
			CallbackTimeout: time.Duration(getEnvAsInt("CALLBACK_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Notifier: NotifierConfig{
			Workers:    getEnvAsInt("NOTIFIER_WORKERS", 2),
			BufferSize: getEnvAsInt("NOTIFIER_BUFFER", 64),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			QueueKey: getEnv("REDIS_QUEUE_KEY", "honeypot:reports"),
			QueueMax: int64(getEnvAsInt("REDIS_QUEUE_MAX", 1000)),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGODB_DATABASE", "honeypot"),
			Collection: getEnv("MONGODB_COLLECTION", "session_reports"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as a float with a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
