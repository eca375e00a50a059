package config

// LabelerConfig represents the configuration for the labelling backend
type LabelerConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for the OpenAI labeler
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for the Gemini labeler
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for the Bedrock labeler
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	MaxBodySize int
}

// EmbeddingConfig represents the embedding vocabulary configuration
type EmbeddingConfig struct {
	Model      string
	Path       string
	MaxTextLen int
}

// ModelConfig represents the model backend configuration
type ModelConfig struct {
	Backend       string
	Dir           string
	WorkerCommand string
	WorkerScript  string
}

// SearchConfig represents the hyperparameter search configuration
type SearchConfig struct {
	TrialBudget int
	Store       string
	SQLitePath  string
	MySQLDSN    string
}

// TrainingConfig represents the trainer configuration
type TrainingConfig struct {
	ValidationFraction float64
	Seed               int64
	Patience           int
}

// Neo4jConfig represents the graph sink configuration
type Neo4jConfig struct {
	URI        string
	Username   string
	Password   string
	MaxRetries int
}

// GetLabeler returns the labeler configuration
func (c *Config) GetLabeler() LabelerConfig {
	return LabelerConfig{
		Provider: c.GetString("labeler.provider"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetEmbedding returns the embedding configuration
func (c *Config) GetEmbedding() EmbeddingConfig {
	return EmbeddingConfig{
		Model:      c.GetString("embedding.model"),
		Path:       c.GetString("embedding.path"),
		MaxTextLen: c.GetInt("embedding.max_text_len"),
	}
}

// GetModel returns the model backend configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Backend:       c.GetString("model.backend"),
		Dir:           c.GetString("model.dir"),
		WorkerCommand: c.GetString("model.worker_command"),
		WorkerScript:  c.GetString("model.worker_script"),
	}
}

// GetSearch returns the search configuration
func (c *Config) GetSearch() SearchConfig {
	return SearchConfig{
		TrialBudget: c.GetInt("search.trial_budget"),
		Store:       c.GetString("search.store"),
		SQLitePath:  c.GetString("search.sqlite_path"),
		MySQLDSN:    c.GetString("search.mysql_dsn"),
	}
}

// GetTraining returns the trainer configuration
func (c *Config) GetTraining() TrainingConfig {
	return TrainingConfig{
		ValidationFraction: c.GetFloat64("training.validation_fraction"),
		Seed:               c.GetInt64("training.seed"),
		Patience:           c.GetInt("training.patience"),
	}
}

// GetNeo4j returns the graph sink configuration
func (c *Config) GetNeo4j() Neo4jConfig {
	return Neo4jConfig{
		URI:        c.GetString("neo4j.uri"),
		Username:   c.GetString("neo4j.username"),
		Password:   c.GetString("neo4j.password"),
		MaxRetries: c.GetInt("neo4j.max_retries"),
	}
}
