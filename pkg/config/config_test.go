package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name          string
		envVars       map[string]string
		expectedPort  string
		expectedLimit int
		expectedTTL   int
	}{
		{
			name:          "defaults when nothing set",
			envVars:       map[string]string{},
			expectedPort:  "8000",
			expectedLimit: 15,
			expectedTTL:   86400,
		},
		{
			name:          "uses PORT env var when set",
			envVars:       map[string]string{"PORT": "3000"},
			expectedPort:  "3000",
			expectedLimit: 15,
			expectedTTL:   86400,
		},
		{
			name:          "uses SEARCH_DEFAULT_LIMIT when set",
			envVars:       map[string]string{"SEARCH_DEFAULT_LIMIT": "25"},
			expectedPort:  "8000",
			expectedLimit: 25,
			expectedTTL:   86400,
		},
		{
			name:          "uses SEARCH_CACHE_TTL when set",
			envVars:       map[string]string{"SEARCH_CACHE_TTL": "3600"},
			expectedPort:  "8000",
			expectedLimit: 15,
			expectedTTL:   3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}

			if cfg.Server.Port != tt.expectedPort {
				t.Errorf("Port = %v, want %v", cfg.Server.Port, tt.expectedPort)
			}

			if cfg.Search.DefaultLimit != tt.expectedLimit {
				t.Errorf("DefaultLimit = %v, want %v", cfg.Search.DefaultLimit, tt.expectedLimit)
			}

			if cfg.Cache.ResultTTL != tt.expectedTTL {
				t.Errorf("ResultTTL = %v, want %v", cfg.Cache.ResultTTL, tt.expectedTTL)
			}
		})
	}
}

func TestLoadFromEnv_InvalidIntFallsBackToDefault(t *testing.T) {
	os.Clearenv()
	os.Setenv("SEARCH_SOURCE_TIMEOUT", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	// Should use default value when parsing fails
	if cfg.Search.PerSourceTimeout != 10 {
		t.Errorf("PerSourceTimeout = %v, want %v (default)", cfg.Search.PerSourceTimeout, 10)
	}
}

func TestLoadFromEnv_SemanticWeight(t *testing.T) {
	os.Clearenv()
	os.Setenv("RELEVANCE_SEMANTIC_WEIGHT", "0.5")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Relevance.SemanticWeight != 0.5 {
		t.Errorf("SemanticWeight = %v, want %v", cfg.Relevance.SemanticWeight, 0.5)
	}

	if cfg.Relevance.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %v, want default", cfg.Relevance.EmbeddingModel)
	}
}

func TestConfig_DurationHelpers(t *testing.T) {
	os.Clearenv()
	os.Setenv("SEARCH_CACHE_TTL", "7200")
	os.Setenv("SEARCH_SOURCE_TIMEOUT", "8")
	os.Setenv("SEARCH_GLOBAL_TIMEOUT", "20")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if got := cfg.ResultTTLDuration(); got != 2*time.Hour {
		t.Errorf("ResultTTLDuration() = %v, want %v", got, 2*time.Hour)
	}
	if got := cfg.PerSourceTimeoutDuration(); got != 8*time.Second {
		t.Errorf("PerSourceTimeoutDuration() = %v, want %v", got, 8*time.Second)
	}
	if got := cfg.GlobalTimeoutDuration(); got != 20*time.Second {
		t.Errorf("GlobalTimeoutDuration() = %v, want %v", got, 20*time.Second)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8000"},
		Cache: CacheConfig{
			Type:      "memory",
			ResultTTL: 86400,
		},
		Search: SearchConfig{
			DefaultLimit:     15,
			PerSourceTimeout: 10,
			GlobalTimeout:    25,
		},
		Relevance: RelevanceConfig{
			SemanticWeight: 0.3,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
			errMsg:  "port cannot be empty",
		},
		{
			name:    "invalid cache type",
			mutate:  func(c *Config) { c.Cache.Type = "invalid" },
			wantErr: true,
			errMsg:  "cache type must be 'redis' or 'memory'",
		},
		{
			name: "redis type with empty address",
			mutate: func(c *Config) {
				c.Cache.Type = "redis"
				c.Cache.Redis.Address = ""
			},
			wantErr: true,
			errMsg:  "redis address cannot be empty when using redis cache",
		},
		{
			name:    "zero cache TTL",
			mutate:  func(c *Config) { c.Cache.ResultTTL = 0 },
			wantErr: true,
			errMsg:  "search cache TTL must be at least 1 second",
		},
		{
			name:    "zero default limit",
			mutate:  func(c *Config) { c.Search.DefaultLimit = 0 },
			wantErr: true,
			errMsg:  "default result limit must be at least 1",
		},
		{
			name:    "zero per-source timeout",
			mutate:  func(c *Config) { c.Search.PerSourceTimeout = 0 },
			wantErr: true,
			errMsg:  "search timeouts must be at least 1 second",
		},
		{
			name: "global timeout below per-source timeout",
			mutate: func(c *Config) {
				c.Search.PerSourceTimeout = 30
				c.Search.GlobalTimeout = 20
			},
			wantErr: true,
			errMsg:  "global timeout cannot be below the per-source timeout",
		},
		{
			name:    "semantic weight above 1",
			mutate:  func(c *Config) { c.Relevance.SemanticWeight = 1.5 },
			wantErr: true,
			errMsg:  "semantic weight must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
