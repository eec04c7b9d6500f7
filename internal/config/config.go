package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	DefaultCPUDelay = time.Second
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool

	// CPUDelay is how long a websocket session waits before the CPU plays.
	CPUDelay time.Duration
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:          getEnvMust("REVERSI_REDIS_URL"),
		BasicAuthUsername: getEnvMust("REVERSI_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("REVERSI_BASIC_AUTH_PASS"),
		Token:             getEnvMust("REVERSI_TOKEN"),
		Prefork:           getEnvMustBool("REVERSI_PREFORK"),
		CPUDelay:          getEnvDuration("REVERSI_CPU_DELAY", DefaultCPUDelay),
	}
}

type ClientConfig struct {
	ServerURL string
	Token     string
}

func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnvMust("REVERSI_SERVER_URL"),
		Token:     getEnvMust("REVERSI_TOKEN"),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvDuration parses a duration such as "750ms", falling back to defaultValue when unset.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration < 0 {
		slog.Error("Cannot load environment variable, it must be a non-negative duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
