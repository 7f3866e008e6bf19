// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, search and source settings

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Search contains orchestrator tuning
	Search SearchConfig

	// Relevance contains scoring configuration
	Relevance RelevanceConfig

	// Sources contains per-source credentials
	Sources SourcesConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// ResultTTL is how long cached search results stay valid, in seconds
	ResultTTL int
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SearchConfig holds orchestrator tuning
type SearchConfig struct {
	// DefaultLimit is the result count without a count directive
	DefaultLimit int

	// PerSourceTimeout bounds each source call, in seconds
	PerSourceTimeout int

	// GlobalTimeout is the fan-out ceiling, in seconds
	GlobalTimeout int
}

// RelevanceConfig holds scoring configuration
type RelevanceConfig struct {
	// SemanticWeight is the share of the semantic blend, 0 disables it
	SemanticWeight float64

	// EmbeddingBaseURL is an OpenAI-compatible embeddings endpoint;
	// empty disables semantic scoring entirely
	EmbeddingBaseURL string

	// EmbeddingAPIKey authenticates against the embeddings endpoint
	EmbeddingAPIKey string

	// EmbeddingModel names the embedding model
	EmbeddingModel string
}

// SourcesConfig holds per-source credentials
type SourcesConfig struct {
	// GitHubToken raises the GitHub search quota; optional
	GitHubToken string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			ResultTTL: getEnvAsIntOrDefault("SEARCH_CACHE_TTL", 86400),
		},
		Search: SearchConfig{
			DefaultLimit:     getEnvAsIntOrDefault("SEARCH_DEFAULT_LIMIT", 15),
			PerSourceTimeout: getEnvAsIntOrDefault("SEARCH_SOURCE_TIMEOUT", 10),
			GlobalTimeout:    getEnvAsIntOrDefault("SEARCH_GLOBAL_TIMEOUT", 25),
		},
		Relevance: RelevanceConfig{
			SemanticWeight:   getEnvAsFloatOrDefault("RELEVANCE_SEMANTIC_WEIGHT", 0.3),
			EmbeddingBaseURL: getEnvOrDefault("EMBEDDING_BASE_URL", ""),
			EmbeddingAPIKey:  getEnvOrDefault("EMBEDDING_API_KEY", ""),
			EmbeddingModel:   getEnvOrDefault("EMBEDDING_MODEL", "text-embedding-3-small"),
		},
		Sources: SourcesConfig{
			GitHubToken: getEnvOrDefault("GITHUB_TOKEN", ""),
		},
	}

	return cfg, nil
}

// ResultTTLDuration returns the cache TTL as a duration.
func (c *Config) ResultTTLDuration() time.Duration {
	return time.Duration(c.Cache.ResultTTL) * time.Second
}

// PerSourceTimeoutDuration returns the per-source timeout as a duration.
func (c *Config) PerSourceTimeoutDuration() time.Duration {
	return time.Duration(c.Search.PerSourceTimeout) * time.Second
}

// GlobalTimeoutDuration returns the fan-out ceiling as a duration.
func (c *Config) GlobalTimeoutDuration() time.Duration {
	return time.Duration(c.Search.GlobalTimeout) * time.Second
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.ResultTTL < 1 {
		return errors.New("search cache TTL must be at least 1 second")
	}

	if c.Search.DefaultLimit < 1 {
		return errors.New("default result limit must be at least 1")
	}

	if c.Search.PerSourceTimeout < 1 || c.Search.GlobalTimeout < 1 {
		return errors.New("search timeouts must be at least 1 second")
	}

	if c.Search.GlobalTimeout < c.Search.PerSourceTimeout {
		return errors.New("global timeout cannot be below the per-source timeout")
	}

	if c.Relevance.SemanticWeight < 0 || c.Relevance.SemanticWeight > 1 {
		return errors.New("semantic weight must be between 0 and 1")
	}

	return nil
}
