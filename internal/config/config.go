// Package config loads nathterm's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all nathterm configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Shell   ShellConfig   `yaml:"shell"`
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig selects and tunes the text-generation backend.
type LLMConfig struct {
	Backend     string  `yaml:"backend"` // gemini, anthropic, ollama, offline
	Model       string  `yaml:"model"`
	ChatModel   string  `yaml:"chat_model"`
	Temperature float64 `yaml:"temperature"`
	BaseURL     string  `yaml:"base_url"`
	Timeout     string  `yaml:"timeout"`

	// Keys come from the environment only.
	GeminiAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
}

// ShellConfig configures the simulated shell.
type ShellConfig struct {
	User      string   `yaml:"user"`
	Host      string   `yaml:"host"`
	Home      string   `yaml:"home"`
	ChainMode string   `yaml:"chain_mode"` // split, last
	TimeScale float64  `yaml:"time_scale"`
	SeedFile  string   `yaml:"seed_file"`
	Banner    []string `yaml:"banner"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Backend:     "gemini",
			Temperature: 0.7,
			BaseURL:     "http://localhost:11434",
			Timeout:     "60s",
		},
		Shell: ShellConfig{
			User:      "guest",
			Host:      "US-CYBERCOM",
			Home:      "/home/guest",
			ChainMode: "split",
			TimeScale: 1.0,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "nathterm.log"),
		},
	}
}

// DefaultPath returns ~/.config/nathterm/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "nathterm", "config.yaml")
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.GeminiAPIKey = key
	} else if key := os.Getenv("API_KEY"); key != "" {
		c.LLM.GeminiAPIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.LLM.AnthropicAPIKey = key
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		c.LLM.BaseURL = host
	}
	if backend := os.Getenv("NATHTERM_BACKEND"); backend != "" {
		c.LLM.Backend = backend
	}
	if model := os.Getenv("NATHTERM_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// LLMTimeout returns the per-request timeout.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// ValidBackends lists the supported text-generation backends.
var ValidBackends = []string{"gemini", "anthropic", "ollama", "offline"}

// Validate checks the configuration for values nathterm cannot run with.
func (c *Config) Validate() error {
	valid := false
	for _, b := range ValidBackends {
		if c.LLM.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid llm backend: %s (valid: %v)", c.LLM.Backend, ValidBackends)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature %g out of range [0, 2]", c.LLM.Temperature)
	}
	if c.LLM.Timeout != "" {
		if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
			return fmt.Errorf("invalid llm timeout: %w", err)
		}
	}

	switch strings.ToLower(c.Shell.ChainMode) {
	case "", "split", "last":
	default:
		return fmt.Errorf("invalid chain mode: %s (valid: split, last)", c.Shell.ChainMode)
	}
	if c.Shell.TimeScale <= 0 {
		return fmt.Errorf("time scale must be positive, got %g", c.Shell.TimeScale)
	}
	if !strings.HasPrefix(c.Shell.Home, "/") {
		return fmt.Errorf("home must be an absolute path, got %q", c.Shell.Home)
	}
	return nil
}
