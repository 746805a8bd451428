package agent

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

// ToolResult is what an Executor returns for one tool call.
type ToolResult struct {
	Output string
	Err    string
}

// Executor runs tool calls on behalf of the loop and keeps whatever
// validated artifact the calls produced.
type Executor interface {
	Execute(ctx context.Context, call llm.ToolCall) ToolResult
	// Artifact reports the fence tag and payload of the last validated
	// artifact, if any call produced one.
	Artifact() (tag string, payload []byte, ok bool)
}

// RunParams configures one bounded tool-calling conversation.
type RunParams struct {
	SystemPrompt  string
	Messages      []llm.Message
	Tools         []llm.ToolDefinition
	Executor      Executor
	MaxIterations int
	Provider      string
	Model         string
	Temperature   float64
	MaxTokens     int
	// CorrectiveText is injected as a user message when the model stops
	// calling tools before any artifact exists. Empty disables the nudge.
	CorrectiveText string
	// Apology is returned when the iteration budget runs out with
	// nothing usable to show.
	Apology string
}

// Result is the loop outcome.
type Result struct {
	Content    string
	Iterations int
	ToolCalls  int
}

// Loop drives the model/tool conversation until the model answers
// without tool calls or the iteration budget runs out.
type Loop struct {
	LLM llm.Service
	Log *logger.Logger
}

func (l *Loop) Run(ctx context.Context, p RunParams) (*Result, error) {
	if p.MaxIterations <= 0 {
		p.MaxIterations = 3
	}
	messages := append([]llm.Message(nil), p.Messages...)
	res := &Result{}

	for iter := 1; iter <= p.MaxIterations; iter++ {
		res.Iterations = iter
		resp, err := l.LLM.Generate(ctx, llm.GenerateRequest{
			Messages:     messages,
			SystemPrompt: p.SystemPrompt,
			Provider:     p.Provider,
			Model:        p.Model,
			Temperature:  p.Temperature,
			MaxTokens:    p.MaxTokens,
			Tools:        p.Tools,
		})
		if err != nil {
			return nil, err
		}

		if !resp.HasToolCalls() {
			if p.Executor != nil {
				if tag, payload, ok := p.Executor.Artifact(); ok {
					res.Content = ensureFenced(resp.Content, tag, payload)
					return res, nil
				}
				// The model answered in prose without producing the
				// artifact. Nudge it once per remaining iteration.
				if p.CorrectiveText != "" && iter < p.MaxIterations {
					l.Log.Warn("model stopped without artifact, nudging",
						"iteration", iter)
					messages = append(messages,
						llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
						llm.Message{Role: llm.RoleUser, Content: p.CorrectiveText},
					)
					continue
				}
			}
			res.Content = resp.Content
			return res, nil
		}

		assistant := llm.Message{Role: llm.RoleAssistant, Content: resp.Content}
		for _, call := range resp.ToolCalls {
			if call.ID == "" {
				call.ID = uuid.NewString()
			}
			assistant.ToolCalls = append(assistant.ToolCalls, call)
		}
		messages = append(messages, assistant)

		for _, call := range assistant.ToolCalls {
			res.ToolCalls++
			tr := p.Executor.Execute(ctx, call)
			text := tr.Output
			if tr.Err != "" {
				text = "Errore: " + tr.Err
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    text,
				ToolCallID: call.ID,
			})
		}
	}

	// Budget exhausted. A validated artifact still saves the response;
	// otherwise the caller's apology text goes out.
	if p.Executor != nil {
		if tag, payload, ok := p.Executor.Artifact(); ok {
			l.Log.Warn("iteration budget exhausted, returning artifact",
				"iterations", p.MaxIterations)
			res.Content = content.Fence(tag, payload)
			return res, nil
		}
	}
	l.Log.Warn("iteration budget exhausted with no artifact",
		"iterations", p.MaxIterations)
	res.Content = p.Apology
	return res, nil
}

// ensureFenced appends the fenced artifact when the model's final text
// dropped it.
func ensureFenced(text, tag string, payload []byte) string {
	if content.HasFence(text, tag) {
		return text
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return content.Fence(tag, payload)
	}
	return text + "\n\n" + content.Fence(tag, payload)
}
