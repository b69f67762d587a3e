package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the connection settings for the Casdoor
// authentication provider.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// KafkaConfig holds the event broker settings. Publishing is optional:
// an empty broker list disables the Kafka publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Casdoor CasdoorConfig
	Kafka   KafkaConfig

	// ProbeTimeout bounds each role-store lookup during role resolution.
	ProbeTimeout time.Duration

	// DetectAmbiguity keeps probing after the first match so that a uid
	// present in more than one role store is logged and reported.
	DetectAmbiguity bool
}

// LoadConfig reads configuration from the environment, loading .env first
// when present.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: getEnv("CASDOOR_ORGANIZATION", "pixalara"),
			Application:  getEnv("CASDOOR_APPLICATION", "placement-portal"),
		},

		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "placement-events"),
		},

		ProbeTimeout:    getDuration("ROLE_PROBE_TIMEOUT", 5*time.Second),
		DetectAmbiguity: getBool("ROLE_DETECT_AMBIGUITY", true),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Casdoor.Endpoint == "" {
		return nil, fmt.Errorf("CASDOOR_ENDPOINT is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if part := s[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
