package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port         int              `json:"port"`
	LogConfig    logger.LogConfig `json:"log_config"`
	AllowOrigins []string         `json:"allow_origins"`
	AI           AIConfig         `json:"ai"`
	Embedding    EmbeddingConfig  `json:"embedding"`
	RAG          RAGConfig        `json:"rag"`
}

type AIConfig struct {
	Provider       string           `json:"provider"`
	Model          string           `json:"model"`
	Data           interface{}      `json:"data"`
	Fallbacks      []FallbackConfig `json:"fallbacks"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	MaxInputChars  int              `json:"max_input_chars"`
}

type FallbackConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

type EmbeddingConfig struct {
	Provider        string      `json:"provider"`
	Model           string      `json:"model"`
	Dimensions      int         `json:"dimensions"`
	Data            interface{} `json:"data"`
	CacheSize       int         `json:"cache_size"`
	CacheTTLMinutes int         `json:"cache_ttl_minutes"`
}

type RAGConfig struct {
	TopK             int   `json:"top_k"`
	HistoryWindow    int   `json:"history_window"`
	MaxUploadBytes   int64 `json:"max_upload_bytes"`
	MaxQuestionChars int   `json:"max_question_chars"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	if c.AI.Provider == "" {
		return fmt.Errorf("ai.provider is required")
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	for i, fb := range c.AI.Fallbacks {
		if fb.Provider == "" || fb.Model == "" {
			return fmt.Errorf("ai.fallbacks[%d] provider/model are required", i)
		}
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = 60
	}
	if c.AI.MaxInputChars <= 0 {
		c.AI.MaxInputChars = 200000
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "local"
	}
	if c.Embedding.CacheSize <= 0 {
		c.Embedding.CacheSize = 2048
	}
	if c.Embedding.CacheTTLMinutes <= 0 {
		c.Embedding.CacheTTLMinutes = 60
	}
	if c.RAG.TopK <= 0 {
		c.RAG.TopK = 5
	}
	if c.RAG.TopK > 10 {
		c.RAG.TopK = 10
	}
	if c.RAG.HistoryWindow <= 0 {
		c.RAG.HistoryWindow = 6
	}
	if c.RAG.MaxUploadBytes <= 0 {
		c.RAG.MaxUploadBytes = 10 << 20
	}
	if c.RAG.MaxQuestionChars <= 0 {
		c.RAG.MaxQuestionChars = 2000
	}
	return nil
}
