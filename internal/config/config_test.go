package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:11434/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama3.1:8b", cfg.LLM.Model)
	assert.Equal(t, 6, cfg.Search.Count)
	assert.Equal(t, 4, cfg.Fetch.Concurrency)
	assert.Equal(t, time.Duration(0), cfg.Session.TTL.Std(), "eviction is off by default")
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
llm:
  model: qwen3:1.7b
  timeout: 2m
search:
  count: 3
session:
  ttl: 1h
`), 0o644))

	t.Setenv("SEARCHOBAR_CONFIG", path)
	t.Setenv("SEARCHOBAR_LLM_MODEL", "llama3.1:70b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "llama3.1:70b", cfg.LLM.Model, "env wins over file")
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout.Std())
	assert.Equal(t, 3, cfg.Search.Count)
	assert.Equal(t, time.Hour, cfg.Session.TTL.Std())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SEARCHOBAR_SEARCH_COUNT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SEARCHOBAR_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
