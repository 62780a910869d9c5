package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers for the submission sink
const (
	StorageMongo  = "mongo"
	StorageSQLite = "sqlite"
	StorageNone   = "none"
)

// Config is the process configuration, loaded once at startup
type Config struct {
	HTTPPort      string
	LogLevel      string
	Development   bool
	CatalogPath   string
	StorageDriver string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string
	RedisAddr     string
	KafkaBrokers  []string
	KafkaTopic    string
	JWTSecret     string
	SessionTTL    time.Duration
	CORSOrigins   []string
	AI            *AIConfig
}

// Load reads configuration from the environment and, when WELLBEING_CONFIG
// points to a file, from that file first.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("WELLBEING_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEVELOPMENT", false)
	v.SetDefault("STORAGE_DRIVER", StorageNone)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "wellbeing")
	v.SetDefault("SQLITE_PATH", "./wellbeing.db")
	v.SetDefault("KAFKA_TOPIC", "wellbeing.submissions")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("OPENAI_BASE_URL", defaultBaseURL)
	v.SetDefault("OPENAI_MODEL", defaultModel)
	v.SetDefault("OPENAI_TEMPERATURE", defaultTemperature)
	v.SetDefault("REPORT_TIMEOUT_MS", defaultTimeoutMS)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTPPort:      v.GetString("PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Development:   v.GetBool("DEVELOPMENT"),
		CatalogPath:   v.GetString("CATALOG_PATH"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		RedisAddr:     strings.TrimPrefix(v.GetString("REDIS_URI"), "redis://"),
		KafkaBrokers:  splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:    v.GetString("KAFKA_TOPIC"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		SessionTTL:    v.GetDuration("SESSION_TTL"),
		CORSOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AI: &AIConfig{
			APIKey:      v.GetString("OPENAI_API_KEY"),
			BaseURL:     strings.TrimRight(v.GetString("OPENAI_BASE_URL"), "/"),
			Model:       v.GetString("OPENAI_MODEL"),
			Temperature: v.GetFloat64("OPENAI_TEMPERATURE"),
			TimeoutMS:   v.GetInt("REPORT_TIMEOUT_MS"),
		},
	}

	switch cfg.StorageDriver {
	case StorageMongo, StorageSQLite, StorageNone:
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.AI.TimeoutMS <= 0 {
		return nil, fmt.Errorf("config: REPORT_TIMEOUT_MS must be positive, got %d", cfg.AI.TimeoutMS)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("config: SESSION_TTL must be positive")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
