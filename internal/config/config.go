package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets YAML configs use human-readable values like "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Port string `yaml:"port"`

	LLM     LLMConfig     `yaml:"llm"`
	Search  SearchConfig  `yaml:"search"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Session SessionConfig `yaml:"session"`
}

type LLMConfig struct {
	// BaseURL points at any OpenAI-compatible endpoint; defaults to a local
	// Ollama server.
	BaseURL string   `yaml:"base_url"`
	Model   string   `yaml:"model"`
	APIKey  string   `yaml:"api_key"`
	UseMock bool     `yaml:"use_mock"`
	Timeout Duration `yaml:"timeout"`
}

type SearchConfig struct {
	SerpAPIKey string   `yaml:"serpapi_key"`
	Count      int      `yaml:"count"`
	Timeout    Duration `yaml:"timeout"`
}

type FetchConfig struct {
	Timeout     Duration `yaml:"timeout"`
	Concurrency int      `yaml:"concurrency"`
}

type SessionConfig struct {
	// TTL evicts sessions idle for longer than this. Zero disables eviction
	// (sessions then live until process exit).
	TTL Duration `yaml:"ttl"`
}

func defaults() *Config {
	return &Config{
		Port: "8080",
		LLM: LLMConfig{
			BaseURL: "http://127.0.0.1:11434/v1",
			Model:   "llama3.1:8b",
			Timeout: Duration(300 * time.Second),
		},
		Search: SearchConfig{
			Count:   6,
			Timeout: Duration(30 * time.Second),
		},
		Fetch: FetchConfig{
			Timeout:     Duration(60 * time.Second),
			Concurrency: 4,
		},
	}
}

// Load builds the config from defaults, an optional YAML file pointed at by
// SEARCHOBAR_CONFIG, and finally env var overrides (env wins).
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("SEARCHOBAR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)

	cfg.LLM.BaseURL = getEnv("SEARCHOBAR_LLM_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("SEARCHOBAR_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.APIKey = getEnv("SEARCHOBAR_LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.UseMock = getBoolEnv("SEARCHOBAR_USE_MOCK_LLM", cfg.LLM.UseMock)
	cfg.LLM.Timeout = getDurationEnv("SEARCHOBAR_LLM_TIMEOUT", cfg.LLM.Timeout)

	cfg.Search.SerpAPIKey = getEnv("SERPAPI_API_KEY", cfg.Search.SerpAPIKey)
	cfg.Search.Count = getIntEnv("SEARCHOBAR_SEARCH_COUNT", cfg.Search.Count)
	cfg.Search.Timeout = getDurationEnv("SEARCHOBAR_SEARCH_TIMEOUT", cfg.Search.Timeout)

	cfg.Fetch.Timeout = getDurationEnv("SEARCHOBAR_FETCH_TIMEOUT", cfg.Fetch.Timeout)
	cfg.Fetch.Concurrency = getIntEnv("SEARCHOBAR_FETCH_CONCURRENCY", cfg.Fetch.Concurrency)

	cfg.Session.TTL = getDurationEnv("SEARCHOBAR_SESSION_TTL", cfg.Session.TTL)

	if cfg.Search.Count < 1 {
		return nil, fmt.Errorf("search count must be >= 1, got %d", cfg.Search.Count)
	}
	if cfg.Fetch.Concurrency < 1 {
		return nil, fmt.Errorf("fetch concurrency must be >= 1, got %d", cfg.Fetch.Concurrency)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDurationEnv(key string, def Duration) Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return Duration(d)
}
