package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string              `mapstructure:"port"`
	Department     string              `mapstructure:"department"`
	AIEndpoint     string              `mapstructure:"ai_endpoint"`
	Model          string              `mapstructure:"model"`
	EmbeddingModel string              `mapstructure:"embedding_model"`
	Generator      string              `mapstructure:"generator"` // "openai" or "gemini"
	GeminiModel    string              `mapstructure:"gemini_model"`
	OpenAIAPIKey   string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys  []string            `mapstructure:"GEMINI_API_KEYS"`
	MongoDBURI     string              `mapstructure:"MONGODB_URI"`
	UploadDir      string              `mapstructure:"upload_dir"`
	WeaviateStore  WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
	Timeouts       TimeoutConfig       `mapstructure:"timeouts"`
	Rerank         RerankConfig        `mapstructure:"rerank"`
	Chunking       ChunkingConfig      `mapstructure:"chunking"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

// TimeoutConfig bounds each external call in the pipeline. Generation gets
// the longest deadline since it is the most latency-heavy stage.
type TimeoutConfig struct {
	EmbedSeconds    int `mapstructure:"embed_seconds"`
	SearchSeconds   int `mapstructure:"search_seconds"`
	GenerateSeconds int `mapstructure:"generate_seconds"`
}

func (t TimeoutConfig) Embed() time.Duration    { return secondsOr(t.EmbedSeconds, 10) }
func (t TimeoutConfig) Search() time.Duration   { return secondsOr(t.SearchSeconds, 10) }
func (t TimeoutConfig) Generate() time.Duration { return secondsOr(t.GenerateSeconds, 120) }

func secondsOr(s, fallback int) time.Duration {
	if s <= 0 {
		s = fallback
	}
	return time.Duration(s) * time.Second
}

// RerankConfig holds the hybrid scoring weights and the target passage
// length (in words) the length component peaks at.
type RerankConfig struct {
	VectorWeight     float64 `mapstructure:"vector_weight"`
	KeywordWeight    float64 `mapstructure:"keyword_weight"`
	ExactMatchWeight float64 `mapstructure:"exact_match_weight"`
	LengthWeight     float64 `mapstructure:"length_weight"`
	PositionWeight   float64 `mapstructure:"position_weight"`
	TargetLength     int     `mapstructure:"target_length"`
}

type ChunkingConfig struct {
	MaxChunkSize int `mapstructure:"max_chunk_size"`
	OverlapSize  int `mapstructure:"overlap_size"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")
	v.BindEnv("MONGODB_URI")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
