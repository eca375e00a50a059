package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/sentiment-analyser/")
	v.AddConfigPath("$HOME/.sentiment-analyser")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SENTIMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Dataset defaults
	v.SetDefault("dataset.name", "emails")
	v.SetDefault("dataset.emails_path", "./datasets/emails.csv")
	v.SetDefault("dataset.reviews_path", "./datasets/train.ft.txt.bz2")
	v.SetDefault("dataset.max_records", 0)

	// Text cleaning defaults
	v.SetDefault("textproc.strict", false)

	// Embedding defaults
	v.SetDefault("embedding.model", "glove-wiki-gigaword-100")
	v.SetDefault("embedding.path", "./models/glove-wiki-gigaword-100.model")
	v.SetDefault("embedding.max_text_len", 800)

	// Labeler defaults
	v.SetDefault("labeler.provider", "vader")

	// OpenAI labeler defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 256)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("openai.max_body_size", 4096)

	// Gemini labeler defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 256)
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.max_body_size", 4096)

	// Bedrock labeler defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 256)
	v.SetDefault("bedrock.temperature", 0.0)
	v.SetDefault("bedrock.max_body_size", 4096)

	// Model backend defaults
	v.SetDefault("model.backend", "extproc")
	v.SetDefault("model.dir", "./models")
	v.SetDefault("model.worker_command", "python3")
	v.SetDefault("model.worker_script", "./scripts/model_worker.py")

	// Search defaults
	v.SetDefault("search.trial_budget", 25)
	v.SetDefault("search.store", "sqlite")
	v.SetDefault("search.sqlite_path", "./data/trials.db")
	v.SetDefault("search.mysql_dsn", "user:password@tcp(localhost:3306)/sentiment")

	// Training defaults
	v.SetDefault("training.validation_fraction", 0.05)
	v.SetDefault("training.seed", 0)
	v.SetDefault("training.patience", 3)

	// Graph sink defaults
	v.SetDefault("sink.type", "neo4j")
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.max_retries", 3)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
