package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "ANTHROPIC_API_KEY", "OLLAMA_HOST", "NATHTERM_BACKEND", "NATHTERM_MODEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.LLM.Backend)
	assert.Equal(t, "guest", cfg.Shell.User)
	assert.Equal(t, "US-CYBERCOM", cfg.Shell.Host)
	assert.Equal(t, "/home/guest", cfg.Shell.Home)
	assert.Equal(t, "split", cfg.Shell.ChainMode)
	assert.Equal(t, 1.0, cfg.Shell.TimeScale)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Shell, cfg.Shell)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Backend = "ollama"
	cfg.LLM.Model = "llama3.2"
	cfg.Shell.ChainMode = "last"
	cfg.Shell.Banner = []string{"hello"}
	cfg.LLM.GeminiAPIKey = "never-written"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never-written")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ollama", loaded.LLM.Backend)
	assert.Equal(t, "llama3.2", loaded.LLM.Model)
	assert.Equal(t, "last", loaded.Shell.ChainMode)
	assert.Equal(t, []string{"hello"}, loaded.Shell.Banner)
	assert.Empty(t, loaded.LLM.GeminiAPIKey)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shell:\n  time_scale: 0.5\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Shell.TimeScale)
	assert.Equal(t, "guest", cfg.Shell.User)
	assert.Equal(t, "gemini", cfg.LLM.Backend)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "fallback-key")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OLLAMA_HOST", "gpu-box:11434")
	t.Setenv("NATHTERM_BACKEND", "anthropic")
	t.Setenv("NATHTERM_MODEL", "claude-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "sk-ant", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, "http://gpu-box:11434", cfg.LLM.BaseURL)
	assert.Equal(t, "anthropic", cfg.LLM.Backend)
	assert.Equal(t, "claude-test", cfg.LLM.Model)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.LLM.GeminiAPIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.LLM.Backend = "openai" }},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.LLM.Temperature = -0.1 }},
		{"bad timeout", func(c *Config) { c.LLM.Timeout = "soon" }},
		{"unknown chain mode", func(c *Config) { c.Shell.ChainMode = "first" }},
		{"zero time scale", func(c *Config) { c.Shell.TimeScale = 0 }},
		{"relative home", func(c *Config) { c.Shell.Home = "home/guest" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLLMTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "5s"
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout())
	cfg.LLM.Timeout = ""
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout())
}
