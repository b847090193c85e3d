package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	Responder ResponderConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ModelConfig holds vision model configuration
type ModelConfig struct {
	Provider             string        `mapstructure:"provider"` // "gemini" or "openai"
	APIKey               string        `mapstructure:"api_key"`
	BaseURL              string        `mapstructure:"base_url"`
	Name                 string        `mapstructure:"name"`
	Temperature          float64       `mapstructure:"temperature"`
	TopP                 float64       `mapstructure:"top_p"`
	MaxOutputTokens      int           `mapstructure:"max_output_tokens"`
	Timeout              time.Duration `mapstructure:"timeout"`
	RequestsPerSecond    float64       `mapstructure:"requests_per_second"`
	Burst                int           `mapstructure:"burst"`
	TruncationWarnLength int           `mapstructure:"truncation_warn_length"`
}

// ResponderConfig holds fashion responder configuration
type ResponderConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MinResponseLength   int     `mapstructure:"min_response_length"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylefinder/")

	// Environment variable settings
	v.SetEnvPrefix("STYLEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key has no default, so AutomaticEnv alone would not pick it up
	if err := v.BindEnv("model.api_key", "STYLEFINDER_MODEL_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding api key: %w", err)
	}

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if one exists.
// Variables already present in the environment are not overridden.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})
	v.SetDefault("server.request_timeout", "90s")

	// Model defaults
	v.SetDefault("model.provider", "gemini")
	v.SetDefault("model.base_url", "")
	v.SetDefault("model.name", "gemini-2.0-flash-exp")
	v.SetDefault("model.temperature", 0.2)
	v.SetDefault("model.top_p", 0.6)
	v.SetDefault("model.max_output_tokens", 2000)
	v.SetDefault("model.timeout", "60s")
	v.SetDefault("model.requests_per_second", 2)
	v.SetDefault("model.burst", 5)
	v.SetDefault("model.truncation_warn_length", 7900)

	// Responder defaults
	v.SetDefault("responder.similarity_threshold", 0.8)
	v.SetDefault("responder.min_response_length", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Model.APIKey == "" {
		return fmt.Errorf("model API key is required (set STYLEFINDER_MODEL_API_KEY or GOOGLE_API_KEY)")
	}

	if config.Model.Provider != "gemini" && config.Model.Provider != "openai" {
		return fmt.Errorf("model provider must be 'gemini' or 'openai', got: %s", config.Model.Provider)
	}

	if config.Model.Name == "" {
		return fmt.Errorf("model name is required")
	}

	if config.Model.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got: %d", config.Model.MaxOutputTokens)
	}

	if config.Responder.SimilarityThreshold < 0 || config.Responder.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be between 0 and 1, got: %v", config.Responder.SimilarityThreshold)
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
