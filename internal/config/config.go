package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Directory string       `yaml:"directory"` // working tree the tools operate on
	Output    string       `yaml:"output"`    // bug analysis report path
	Analyzer  ToolConfig   `yaml:"analyzer"`
	Fixer     ToolConfig   `yaml:"fixer"`
	Gate      GateConfig   `yaml:"gate"`
	Repair    RepairConfig `yaml:"repair"`
	LLM       LLMConfig    `yaml:"llm"`
	Debug     bool         `yaml:"-"` // Set via CLI only
}

// ToolConfig describes how to invoke an external tool, either natively
// (Command) or through a docker image with a fixed entrypoint.
type ToolConfig struct {
	Command     string `yaml:"command"`
	DockerImage string `yaml:"docker_image"`
	Entrypoint  string `yaml:"entrypoint"`
	EnvFile     string `yaml:"env_file"`
}

// GateConfig holds the default build-breaking thresholds.
type GateConfig struct {
	SeverityThreshold   string `yaml:"severity_threshold"`
	ConfidenceThreshold string `yaml:"confidence_threshold"`
}

// RepairConfig holds repair loop settings.
type RepairConfig struct {
	// MaxAttempts bounds the number of model round trips per repair
	// invocation. The original pipeline allowed exactly one.
	MaxAttempts int    `yaml:"max_attempts"`
	SchemaPath  string `yaml:"schema_path"`
}

// LLMConfig holds remote model settings for the repair loop.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, googleai
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // Custom API endpoint (OpenRouter, etc.)
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Directory: ".",
		Output:    "bug_analysis_report.xml",
		Analyzer: ToolConfig{
			Command:     "bug-analyzer",
			DockerImage: "buglens/tools:latest",
			Entrypoint:  "bug-analyzer",
			EnvFile:     ".env",
		},
		Fixer: ToolConfig{
			Command:     "fix-bugs",
			DockerImage: "buglens/tools:latest",
			Entrypoint:  "fix-bugs",
			EnvFile:     ".env",
		},
		Gate: GateConfig{
			SeverityThreshold:   "high",
			ConfidenceThreshold: "high",
		},
		Repair: RepairConfig{
			MaxAttempts: 1,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			BaseURL:  "https://openrouter.ai/api/v1",
		},
	}
}

// Load reads configuration from file and merges with defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Determine config file path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Use defaults if can't find home
		}
		path = filepath.Join(homeDir, ".config", "buglens", "config.yaml")
	}

	// Expand ~ in path
	path = ExpandPath(path)

	// Read config file if it exists
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Expand paths
	cfg.Directory = ExpandPath(cfg.Directory)
	cfg.Repair.SchemaPath = ExpandPath(cfg.Repair.SchemaPath)

	return cfg, nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("directory is required")
	}

	if _, err := os.Stat(c.Directory); os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", c.Directory)
	}

	if c.Output == "" {
		return fmt.Errorf("output is required")
	}

	if c.Repair.MaxAttempts < 1 {
		return fmt.Errorf("repair.max_attempts must be at least 1")
	}

	if c.LLM.APIKey == "" {
		// Check environment variables
		if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
			c.LLM.APIKey = key
		} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	}

	return nil
}
