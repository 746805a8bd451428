package teacher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

// confidenceFloor: any classification below this is overridden to
// analytics, the safest pipeline.
const confidenceFloor = 0.6

// forcedPrefix maps explicit mode markers to an intent. A marker match
// short-circuits classification entirely.
type forcedPrefix struct {
	markers []string
	intent  Intent
}

var forcedPrefixes = []forcedPrefix{
	{[]string{"RICERCA WEB:", "🌐"}, IntentWebSearch},
	{[]string{"CREA QUIZ:", "❓"}, IntentQuizGeneration},
	{[]string{"CREA LEZIONE:", "📚"}, IntentLessonGeneration},
	{[]string{"CREA ESERCIZIO:", "💪"}, IntentExerciseGeneration},
	{[]string{"CREA PRESENTAZIONE:", "🎞️"}, IntentPresentationGeneration},
	{[]string{"GENERA REPORT:", "📈"}, IntentAnalytics},
	{[]string{"EDITOR_AI:", "✍️"}, IntentTextEditor},
}

// Router classifies the latest message into an intent. At most one model
// round trip, no side effects.
type Router struct {
	Log      *logger.Logger
	LLM      llm.Service
	Provider string
	Model    string
}

// Route classifies and then applies the confidence floor: anything below
// 0.6 collapses to analytics regardless of the declared intent.
func (r *Router) Route(ctx context.Context, message string, history []llm.Message) IntentResult {
	res := r.classify(ctx, message, history)
	if res.Confidence < confidenceFloor && res.Intent != IntentAnalytics {
		r.Log.Info("low confidence, routing to analytics",
			"intent", string(res.Intent), "confidence", res.Confidence)
		res.Intent = IntentAnalytics
	}
	return res
}

func (r *Router) classify(ctx context.Context, message string, history []llm.Message) IntentResult {
	for _, fp := range forcedPrefixes {
		for _, marker := range fp.markers {
			if strings.Contains(message, marker) {
				r.Log.Info("intent forced by prefix", "intent", string(fp.intent))
				clean := message
				for _, m := range fp.markers {
					clean = strings.ReplaceAll(clean, m, "")
				}
				return IntentResult{
					Intent:     fp.intent,
					Confidence: 1.0,
					Topic:      strings.TrimSpace(clean),
				}
			}
		}
	}

	resp, err := r.LLM.Generate(ctx, llm.GenerateRequest{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: classifierMessage(message, history),
		}},
		SystemPrompt: intentClassifierPrompt,
		Provider:     r.Provider,
		Model:        r.Model,
		Temperature:  0.1,
		MaxTokens:    200,
	})
	if err != nil {
		r.Log.Warn("intent classification failed, falling back to analytics", "error", err)
		return IntentResult{Intent: IntentAnalytics, Confidence: 0.5}
	}

	var parsed struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
		Topic      string  `json:"topic"`
	}
	body := content.StripCodeFences(strings.TrimSpace(resp.Content))
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		r.Log.Warn("intent classification unparseable, falling back to analytics", "error", err)
		return IntentResult{Intent: IntentAnalytics, Confidence: 0.5}
	}

	intent := Intent(parsed.Intent)
	if !knownIntents[intent] {
		intent = IntentAnalytics
	}
	confidence := parsed.Confidence
	if confidence == 0 {
		confidence = 0.8
	}
	r.Log.Info("intent classified", "intent", string(intent), "confidence", confidence)
	return IntentResult{Intent: intent, Confidence: confidence, Topic: parsed.Topic}
}

// classifierMessage renders the last few history turns plus the message
// to classify. Turns are truncated to keep the call cheap.
func classifierMessage(message string, history []llm.Message) string {
	start := len(history) - 3
	if start < 0 {
		start = 0
	}
	var turns []string
	for _, m := range history[start:] {
		text := m.Content
		if len(text) > 100 {
			text = text[:100]
		}
		turns = append(turns, fmt.Sprintf("%s: %s", m.Role, text))
	}
	contextBlock := "Nessun contesto precedente"
	if len(turns) > 0 {
		contextBlock = strings.Join(turns, "\n")
	}
	return fmt.Sprintf(`Contesto conversazione recente:
%s

Messaggio corrente da classificare:
%s

Classifica l'intento e rispondi con JSON.`, contextBlock, message)
}
