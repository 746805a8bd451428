package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quaderno-ai/quaderno-backend/internal/platform/envutil"
)

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-5-mini",
			RouterModel: "gpt-5-nano",
		},
		Agent: AgentConfig{
			MaxIterations:     3,
			MathMaxIterations: 5,
		},
		Search: SearchConfig{
			MaxResults: 5,
		},
	}
}

// Load reads QB_CONFIG_PATH (or ./config/config.yaml if present), then
// applies environment overrides and fills remaining defaults.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("QB_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		var loaded Config
		if err := yaml.Unmarshal(b, &loaded); err != nil {
			return nil, err
		}
		*cfg = loaded
	}

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_LLM_PROVIDER")); v != "" {
		cfg.LLM.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_LLM_MODEL")); v != "" {
		cfg.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("ROUTER_MODEL")); v != "" {
		cfg.LLM.RouterModel = v
	}
	cfg.Agent.MaxIterations = envutil.Int("AGENT_MAX_ITERATIONS", cfg.Agent.MaxIterations)
	cfg.Agent.MathMaxIterations = envutil.Int("MATH_MAX_ITERATIONS", cfg.Agent.MathMaxIterations)
	cfg.Search.MaxResults = envutil.Int("SEARCH_MAX_RESULTS", cfg.Search.MaxResults)

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-5-mini"
	}
	if cfg.LLM.RouterModel == "" {
		cfg.LLM.RouterModel = cfg.LLM.Model
	}
	if cfg.Agent.MaxIterations <= 0 {
		cfg.Agent.MaxIterations = 3
	}
	if cfg.Agent.MathMaxIterations <= 0 {
		cfg.Agent.MathMaxIterations = 5
	}
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = 5
	}
	return cfg, nil
}
