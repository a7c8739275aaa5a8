package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Firestore     FirestoreConfig
	Storage       StorageConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Typesense     TypesenseConfig
	Transcription TranscriptionConfig
	OpenAI        OpenAIConfig
	Processing    ProcessingConfig
	OTEL          OTELConfig
	Env           string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// FirestoreConfig holds document store configuration
type FirestoreConfig struct {
	ProjectID string
}

// StorageConfig holds audio blob storage configuration
type StorageConfig struct {
	Bucket          string
	UploadURLExpiry time.Duration
}

// DatabaseConfig holds the webhook journal database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// TranscriptionConfig holds transcription provider configuration
type TranscriptionConfig struct {
	APIKey      string
	BaseURL     string
	CallbackURL string
	Model       string
}

// OpenAIConfig holds summarization provider configuration
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// ProcessingConfig holds visit lifecycle policy configuration
type ProcessingConfig struct {
	// RetryThrottle is the minimum time between accepted retries on one visit.
	RetryThrottle time.Duration
	// RetentionDays is how long soft-deleted records stay queryable before purge.
	RetentionDays int
	// PurgePageSize bounds how many candidates one purge pass scans per collection.
	PurgePageSize int
	// PurgeCollections overrides the default set of soft-deletable collections.
	PurgeCollections []string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Firestore: FirestoreConfig{
			ProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		},
		Storage: StorageConfig{
			Bucket:          getEnv("AUDIO_BUCKET", ""),
			UploadURLExpiry: time.Duration(getEnvAsInt("UPLOAD_URL_EXPIRY_MINUTES", 15)) * time.Minute,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "scribe"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", ""),
		},
		Transcription: TranscriptionConfig{
			APIKey:      getEnv("TRANSCRIPTION_API_KEY", ""),
			BaseURL:     getEnv("TRANSCRIPTION_BASE_URL", "https://api.deepgram.com"),
			CallbackURL: getEnv("TRANSCRIPTION_CALLBACK_URL", ""),
			Model:       getEnv("TRANSCRIPTION_MODEL", "nova-2-medical"),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Processing: ProcessingConfig{
			RetryThrottle:    time.Duration(getEnvAsInt("RETRY_THROTTLE_SECONDS", 60)) * time.Second,
			RetentionDays:    getEnvAsInt("RETENTION_DAYS", 30),
			PurgePageSize:    getEnvAsInt("PURGE_PAGE_SIZE", 100),
			PurgeCollections: getEnvAsSlice("PURGE_COLLECTIONS", nil),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "scribe-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}

	if cfg.Firestore.ProjectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
