package config

// Runtime configuration for the chat orchestrator. Values come from an
// optional YAML file, then environment overrides, then defaults.

type LLMConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	RouterModel string `yaml:"router_model"`
}

type AgentConfig struct {
	MaxIterations     int `yaml:"max_iterations"`
	MathMaxIterations int `yaml:"math_max_iterations"`
}

// SearchConfig covers the orchestration side of web search. Client-level
// knobs (timeouts, fetch fan-out, content cap) live on the search client's
// environment variables.
type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

type Config struct {
	Env    string       `yaml:"env"`
	LLM    LLMConfig    `yaml:"llm"`
	Agent  AgentConfig  `yaml:"agent"`
	Search SearchConfig `yaml:"search"`
}
