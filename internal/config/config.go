package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Timeouts in seconds applied to the HTTP server.
	ReadTimeout  int `mapstructure:"read_timeout" validate:"required,gt=0"`
	WriteTimeout int `mapstructure:"write_timeout" validate:"required,gt=0"`
	IdleTimeout  int `mapstructure:"idle_timeout" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// Lifetimes in minutes for issued tokens.
	TokenLifetimeMinutes        int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost                  int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// LLMConfig contains all language model integration settings. Provider
// selects which backend the server talks to; only that provider's API key is
// required at startup.
type LLMConfig struct {
	Provider      string  `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	GeminiAPIKey  string  `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	GeminiModel   string  `mapstructure:"gemini_model" validate:"required_if=Provider gemini"`
	OpenAIAPIKey  string  `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	OpenAIModel   string  `mapstructure:"openai_model" validate:"required_if=Provider openai"`
	OpenAIBaseURL string  `mapstructure:"openai_base_url" validate:"omitempty,url"`
	Temperature   float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxRetries    int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	// RequestTimeoutSeconds bounds one provider call including retries.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// UploadConfig contains limits applied to document uploads.
type UploadConfig struct {
	MaxFileSizeMB int `mapstructure:"max_file_size_mb" validate:"required,gt=0,lte=100"`
}
