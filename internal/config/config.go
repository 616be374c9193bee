package config

import (
	"fmt"
	"mediaplanner/internal/platform/envutil"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	CatalogEmbedded = "embedded"
	CatalogMongo    = "mongo"
)

// Config is the full process configuration
type Config struct {
	Port    string
	LogMode string

	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	CORS     CORSConfig
	AI       *AIConfig

	// SessionStore selects the backend for saved recommendations
	SessionStore string
	// CatalogSource selects where the question/rule tables are loaded from
	CatalogSource string

	ProgressTTL time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	DSN string
}

type AuthConfig struct {
	Username  string
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
}

type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// Load reads configuration from the environment, after loading .env if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		LogMode: getEnvOrDefault("LOG_MODE", "dev"),
		Mongo: MongoConfig{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DATABASE", "mediaplanner"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimPrefix(getEnvOrDefault("REDIS_URI", "localhost:6379"), "redis://"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envutil.Int("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Auth: AuthConfig{
			Username:  getEnvOrDefault("ADMIN_USERNAME", "admin"),
			Password:  getEnvOrDefault("ADMIN_PASSWORD", "password123"),
			JWTSecret: getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
			TokenTTL:  time.Duration(envutil.Int("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnvOrDefault("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
			AllowedHeaders: getEnvOrDefault("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
		},
		AI:            DefaultAIConfig(),
		SessionStore:  strings.ToLower(getEnvOrDefault("SESSION_STORE", StoreMongo)),
		CatalogSource: strings.ToLower(getEnvOrDefault("CATALOG_SOURCE", CatalogEmbedded)),
		ProgressTTL:   time.Duration(envutil.Int("PROGRESS_TTL_MINUTES", 1440)) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SessionStore {
	case StoreMongo:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("SESSION_STORE=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	switch c.CatalogSource {
	case CatalogEmbedded, CatalogMongo:
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.ProgressTTL <= 0 {
		return fmt.Errorf("PROGRESS_TTL_MINUTES must be positive")
	}
	return nil
}
