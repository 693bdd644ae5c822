package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	AI       AIConfig       `mapstructure:"ai"`
	Matching MatchingConfig `mapstructure:"matching" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// AIConfig contains settings for the semantic scoring integration.
// The API key is optional: when empty, semantic scoring is disabled and
// matching falls back to weight redistribution across the base sub-scores.
type AIConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	EmbeddingModel string `mapstructure:"embedding_model" validate:"required"`
	SummaryModel   string `mapstructure:"summary_model"   validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int    `mapstructure:"max_retries"     validate:"gte=0"`
}

// MatchingConfig contains tunables for the matching engine.
type MatchingConfig struct {
	MaxResults int     `mapstructure:"max_results" validate:"required,gt=0,lte=10"`
	MinScore   float64 `mapstructure:"min_score"   validate:"gte=0,lte=100"`
}

// TaskConfig contains settings for the background notification workers.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}
