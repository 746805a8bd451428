package mathcoach

import (
	"context"

	"github.com/quaderno-ai/quaderno-backend/internal/agent"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

const apology = "Mi dispiace, non sono riuscito a completare il calcolo."

// Agent is the Socratic math coach: a tool-calling loop over the sandbox
// so the model can verify a student's claimed answer without revealing
// the solution.
type Agent struct {
	Log           *logger.Logger
	LLM           llm.Service
	MaxIterations int
}

// Run drives one coaching turn. The verification tools run at a lower
// temperature than content generation; without tool support the coach
// still answers, just without silent verification.
func (a *Agent) Run(ctx context.Context, messages []llm.Message, provider, model string) (string, error) {
	maxIter := a.MaxIterations
	if maxIter <= 0 {
		maxIter = 5
	}

	if !a.LLM.SupportsTools(provider) {
		resp, err := a.LLM.Generate(ctx, llm.GenerateRequest{
			Messages:     messages,
			SystemPrompt: systemPrompt,
			Provider:     provider,
			Model:        model,
			Temperature:  0.3,
			MaxTokens:    1024,
		})
		if err != nil {
			return "", err
		}
		return resp.Content, nil
	}

	loop := &agent.Loop{LLM: a.LLM, Log: a.Log}
	res, err := loop.Run(ctx, agent.RunParams{
		SystemPrompt:  systemPrompt,
		Messages:      messages,
		Tools:         mathTools,
		Executor:      &mathExecutor{log: a.Log},
		MaxIterations: maxIter,
		Provider:      provider,
		Model:         model,
		Temperature:   0.3,
		MaxTokens:     1024,
		Apology:       apology,
	})
	if err != nil {
		return "", err
	}
	return res.Content, nil
}
