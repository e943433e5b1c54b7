package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Gemini   GeminiConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// MentorPoolTTL is how long the visible mentor pool stays cached.
	MentorPoolTTL time.Duration
}

// Enabled reports whether a Redis host was configured.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

type JWTConfig struct {
	AccessSecret string
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type StorageConfig struct {
	Type string
	// SeedFile is a JSON fixture loaded into memory storage at startup.
	SeedFile string
}

type LoggingConfig struct {
	Level string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type MatchingConfig struct {
	DefaultLimit int
	MaxLimit     int
	// Regions overrides or extends the built-in country groupings,
	// e.g. "north_africa:Egypt|Morocco;east_africa:Ethiopia".
	Regions string
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("MENTOR_CACHE_TTL", "2m")
	viper.SetDefault("STORAGE_TYPE", StoragePostgres)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MATCHING_DEFAULT_LIMIT", 10)
	viper.SetDefault("MATCHING_MAX_LIMIT", 100)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:          viper.GetString("REDIS_HOST"),
			Port:          viper.GetInt("REDIS_PORT"),
			Password:      viper.GetString("REDIS_PASSWORD"),
			DB:            viper.GetInt("REDIS_DB"),
			MentorPoolTTL: viper.GetDuration("MENTOR_CACHE_TTL"),
		},
		JWT: JWTConfig{
			AccessSecret: viper.GetString("JWT_ACCESS_SECRET"),
		},
		Storage: StorageConfig{
			Type:     viper.GetString("STORAGE_TYPE"),
			SeedFile: viper.GetString("STORAGE_SEED_FILE"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Gemini: GeminiConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Model:  viper.GetString("GEMINI_MODEL"),
		},
		Matching: MatchingConfig{
			DefaultLimit: viper.GetInt("MATCHING_DEFAULT_LIMIT"),
			MaxLimit:     viper.GetInt("MATCHING_MAX_LIMIT"),
			Regions:      viper.GetString("MATCHING_REGIONS"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Matching.MaxLimit < 1 {
		return fmt.Errorf("matching max limit must be positive")
	}
	if c.Matching.DefaultLimit < 1 || c.Matching.DefaultLimit > c.Matching.MaxLimit {
		return fmt.Errorf("matching default limit must be between 1 and %d", c.Matching.MaxLimit)
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
