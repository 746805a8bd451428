package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/quaderno-ai/quaderno-backend/internal/platform/anthropic"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/envutil"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/ollama"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/openai"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Service is the generation backend used by the agent layer. Implementations
// must be safe for concurrent use.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Response, error)
	// SupportsTools reports whether the given provider can honor a tool
	// manifest. Callers bypass the agent loop when it returns false.
	SupportsTools(provider string) bool
}

type service struct {
	log *logger.Logger

	openai    *openai.Client
	anthropic *anthropic.Client
	ollama    *ollama.Client

	defaultProvider string
	defaultModel    string
}

// NewService wires whichever provider clients have credentials configured.
// Missing providers are logged and skipped; calls routed to them fail with an
// explicit error that the agent's fallback chain absorbs.
func NewService(log *logger.Logger) (Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &service{
		log:             log.With("service", "LLMService"),
		defaultProvider: envutil.String("DEFAULT_LLM_PROVIDER", ProviderOpenAI),
		defaultModel:    envutil.String("DEFAULT_LLM_MODEL", ""),
	}

	if c, err := openai.NewClient(log); err != nil {
		s.log.Warn("OpenAI client not configured", "error", err.Error())
	} else {
		s.openai = c
	}
	if c, err := anthropic.NewClient(log); err != nil {
		s.log.Warn("Anthropic client not configured", "error", err.Error())
	} else {
		s.anthropic = c
	}
	if c, err := ollama.NewClient(log); err != nil {
		s.log.Warn("Ollama client not configured", "error", err.Error())
	} else {
		s.ollama = c
	}

	if s.openai == nil && s.anthropic == nil && s.ollama == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	return s, nil
}

func (s *service) SupportsTools(provider string) bool {
	return normalizeProvider(provider, s.defaultProvider) == ProviderOpenAI && s.openai != nil
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (*Response, error) {
	provider := normalizeProvider(req.Provider, s.defaultProvider)
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.defaultModel
	}

	switch provider {
	case ProviderOpenAI:
		return s.generateOpenAI(ctx, req, model)
	case ProviderAnthropic:
		return s.generateAnthropic(ctx, req, model)
	case ProviderOllama:
		return s.generateOllama(ctx, req, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func (s *service) generateOpenAI(ctx context.Context, req GenerateRequest, model string) (*Response, error) {
	if s.openai == nil {
		return nil, fmt.Errorf("openai client not configured")
	}

	messages := make([]openai.Message, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, openai.Message{Role: RoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		om := openai.Message{Role: m.Role, Content: m.Content, ToolCallID: m.ToolCallID}
		for _, tc := range m.ToolCalls {
			om.ToolCalls = append(om.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: openai.ToolCallFunction{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		messages = append(messages, om)
	}

	var tools []openai.Tool
	for _, t := range req.Tools {
		tools = append(tools, openai.Tool{
			Type: "function",
			Function: openai.ToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	if model == "" {
		model = s.openai.Model()
	}
	res, err := s.openai.Chat(ctx, model, messages, openai.ChatOptions{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Tools:       tools,
	})
	if err != nil {
		return nil, err
	}

	out := &Response{
		Content:          res.Content,
		Provider:         ProviderOpenAI,
		Model:            model,
		PromptTokens:     res.PromptTokens,
		CompletionTokens: res.CompletionTokens,
	}
	for _, tc := range res.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func (s *service) generateAnthropic(ctx context.Context, req GenerateRequest, model string) (*Response, error) {
	if s.anthropic == nil {
		return nil, fmt.Errorf("anthropic client not configured")
	}

	messages := make([]anthropic.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		// Tool-role turns never reach this provider; flatten defensively.
		role := m.Role
		if role != RoleUser && role != RoleAssistant {
			role = RoleUser
		}
		messages = append(messages, anthropic.Message{Role: role, Content: m.Content})
	}

	if model == "" {
		model = s.anthropic.Model()
	}
	res, err := s.anthropic.Chat(ctx, model, messages, anthropic.ChatOptions{
		System:      req.SystemPrompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:          res.Content,
		Provider:         ProviderAnthropic,
		Model:            model,
		PromptTokens:     res.InputTokens,
		CompletionTokens: res.OutputTokens,
	}, nil
}

func (s *service) generateOllama(ctx context.Context, req GenerateRequest, model string) (*Response, error) {
	if s.ollama == nil {
		return nil, fmt.Errorf("ollama client not configured")
	}

	messages := make([]ollama.Message, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, ollama.Message{Role: RoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, ollama.Message{Role: m.Role, Content: m.Content})
	}

	if model == "" {
		model = s.ollama.Model()
	}
	res, err := s.ollama.Chat(ctx, model, messages, ollama.ChatOptions{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:          res.Content,
		Provider:         ProviderOllama,
		Model:            model,
		PromptTokens:     res.PromptTokens,
		CompletionTokens: res.CompletionTokens,
	}, nil
}

func normalizeProvider(provider, def string) string {
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" {
		p = strings.ToLower(strings.TrimSpace(def))
	}
	if p == "" {
		p = ProviderOpenAI
	}
	return p
}
