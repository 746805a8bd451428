package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QB_CONFIG_PATH", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-5-mini" {
		t.Fatalf("unexpected LLM defaults: %+v", cfg.LLM)
	}
	if cfg.Agent.MaxIterations != 3 || cfg.Agent.MathMaxIterations != 5 {
		t.Fatalf("unexpected iteration defaults: %+v", cfg.Agent)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
env: production
llm:
  provider: anthropic
  model: claude-sonnet-4-5
  router_model: claude-haiku-4
agent:
  max_iterations: 4
search:
  max_results: 8
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("QB_CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env from file, got %q", cfg.Env)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.RouterModel != "claude-haiku-4" {
		t.Fatalf("unexpected LLM config: %+v", cfg.LLM)
	}
	if cfg.Agent.MaxIterations != 4 {
		t.Fatalf("expected max_iterations 4, got %d", cfg.Agent.MaxIterations)
	}
	// Unset values still get defaults.
	if cfg.Agent.MathMaxIterations != 5 {
		t.Fatalf("expected default math iterations, got %d", cfg.Agent.MathMaxIterations)
	}
	if cfg.Search.MaxResults != 8 {
		t.Fatalf("unexpected search config: %+v", cfg.Search)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("QB_CONFIG_PATH", "")
	t.Setenv("DEFAULT_LLM_PROVIDER", "ollama")
	t.Setenv("DEFAULT_LLM_MODEL", "llama3.1")
	t.Setenv("AGENT_MAX_ITERATIONS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3.1" {
		t.Fatalf("env overrides not applied: %+v", cfg.LLM)
	}
	if cfg.Agent.MaxIterations != 7 {
		t.Fatalf("expected max iterations 7, got %d", cfg.Agent.MaxIterations)
	}
}
