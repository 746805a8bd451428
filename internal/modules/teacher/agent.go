package teacher

import (
	"context"
	"fmt"
	"strings"

	"github.com/quaderno-ai/quaderno-backend/internal/agent"
	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
	"github.com/quaderno-ai/quaderno-backend/internal/search"
)

const errorReply = "Mi dispiace, si è verificato un errore. Riprova più tardi."

// Agent is the teacher-chat orchestrator: it routes a message to the
// matching pipeline and degrades through the fallback chain so every
// invocation yields some textual answer.
type Agent struct {
	Log           *logger.Logger
	LLM           llm.Service
	Search        search.Service
	Router        *Router
	MaxIterations int
	// SearchMaxResults caps how many results the web-search pipeline
	// requests. Zero means 5.
	SearchMaxResults int
}

// Input is one stateless invocation: the conversation so far plus the
// caller's pre-rendered data context.
type Input struct {
	Messages []llm.Message
	Context  string
	Provider string
	Model    string
}

// Run classifies the latest message and drives the selected pipeline.
// Any unhandled fault resolves to the analytics path.
func (a *Agent) Run(ctx context.Context, in Input) string {
	lastMessage := ""
	var history []llm.Message
	if len(in.Messages) > 0 {
		lastMessage = in.Messages[len(in.Messages)-1].Content
		history = in.Messages[:len(in.Messages)-1]
	}

	res := a.Router.Route(ctx, lastMessage, history)
	a.Log.Info("teacher agent routing", "intent", string(res.Intent), "confidence", res.Confidence)

	text, err := a.dispatch(ctx, res.Intent, in)
	if err != nil {
		a.Log.Error("pipeline failed, falling back to analytics",
			"intent", string(res.Intent), "error", err)
		text, err = a.generateWithAnalytics(ctx, in)
		if err != nil {
			a.Log.Error("analytics fallback failed", "error", err)
			return errorReply
		}
	}
	return text
}

func (a *Agent) dispatch(ctx context.Context, intent Intent, in Input) (string, error) {
	switch intent {
	case IntentQuizGeneration:
		return a.generateContent(ctx, content.KindQuiz, in)
	case IntentLessonGeneration:
		return a.generateContent(ctx, content.KindLesson, in)
	case IntentExerciseGeneration:
		return a.generateContent(ctx, content.KindExercise, in)
	case IntentPresentationGeneration:
		return a.generateContent(ctx, content.KindPresentation, in)
	case IntentWebSearch:
		return a.generateWithWebSearch(ctx, in)
	case IntentTextEditor:
		return a.generateTextEditor(ctx, in)
	default:
		// document_help rides the analytics pipeline for now.
		return a.generateWithAnalytics(ctx, in)
	}
}

// generateContent prefers the tool-calling loop and falls back to the
// tool-free structured path when tools are unsupported or the loop
// itself fails.
func (a *Agent) generateContent(ctx context.Context, kind content.Kind, in Input) (string, error) {
	pl := pipelines[kind]
	if a.LLM.SupportsTools(in.Provider) {
		ex := newContentExecutor(a.Log, kind)
		loop := &agent.Loop{LLM: a.LLM, Log: a.Log}
		res, err := loop.Run(ctx, agent.RunParams{
			SystemPrompt:   pl.Prompt,
			Messages:       in.Messages,
			Tools:          pl.Tools,
			Executor:       ex,
			MaxIterations:  a.MaxIterations,
			Provider:       in.Provider,
			Model:          in.Model,
			Temperature:    0.7,
			MaxTokens:      4096,
			CorrectiveText: pl.Corrective,
			Apology:        pl.Apology,
		})
		if err == nil {
			return res.Content, nil
		}
		a.Log.Warn("tool loop failed, trying tool-free generation",
			"kind", string(kind), "error", err)
	}
	return a.generateWithoutTools(ctx, pl, in)
}

func (a *Agent) generateWithWebSearch(ctx context.Context, in Input) (string, error) {
	query := ""
	if len(in.Messages) > 0 {
		query = in.Messages[len(in.Messages)-1].Content
	}
	maxResults := a.SearchMaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	results, err := a.Search.Search(ctx, query, maxResults)
	if err != nil || len(results) == 0 {
		if err != nil {
			a.Log.Warn("web search failed, falling back to analytics", "error", err)
		} else {
			a.Log.Warn("web search returned no results, falling back to analytics")
		}
		return a.generateWithAnalytics(ctx, in)
	}

	var contextParts, sources []string
	for i, r := range results {
		part := fmt.Sprintf("**Fonte %d: %s**\nURL: %s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			part += fmt.Sprintf("Anteprima: %s\n", r.Snippet)
		}
		if r.Content != "" {
			preview := r.Content
			if len(preview) > 2000 {
				preview = preview[:2000]
			}
			part += fmt.Sprintf("Contenuto:\n%s\n", preview)
		}
		contextParts = append(contextParts, part)
		sources = append(sources, fmt.Sprintf("- [%s](%s)", r.Title, r.URL))
	}

	resp, err := a.LLM.Generate(ctx, llm.GenerateRequest{
		Messages:     in.Messages,
		SystemPrompt: webSearchPrompt(strings.Join(contextParts, "\n---\n")),
		Provider:     in.Provider,
		Model:        in.Model,
		Temperature:  0.7,
		MaxTokens:    4096,
	})
	if err != nil {
		return "", err
	}

	text := resp.Content
	if !strings.Contains(text, "Fonti:") && len(sources) > 0 {
		text += "\n\n📚 **Fonti:**\n" + strings.Join(sources, "\n")
	}
	return text, nil
}

// generateTextEditor is the verbatim passthrough: the caller's own
// system message travels inside Messages and nothing else is injected.
func (a *Agent) generateTextEditor(ctx context.Context, in Input) (string, error) {
	resp, err := a.LLM.Generate(ctx, llm.GenerateRequest{
		Messages:    in.Messages,
		Provider:    in.Provider,
		Model:       in.Model,
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (a *Agent) generateWithAnalytics(ctx context.Context, in Input) (string, error) {
	resp, err := a.LLM.Generate(ctx, llm.GenerateRequest{
		Messages:     in.Messages,
		SystemPrompt: analyticsPrompt(in.Context),
		Provider:     in.Provider,
		Model:        in.Model,
		Temperature:  0.7,
		MaxTokens:    4096,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
