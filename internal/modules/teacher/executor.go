package teacher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quaderno-ai/quaderno-backend/internal/agent"
	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

// contentExecutor validates create_* tool calls for one artifact kind and
// keeps the last accepted payload. A validation failure is returned as
// corrective text for the model, never as a session-fatal error.
type contentExecutor struct {
	log      *logger.Logger
	kind     content.Kind
	artifact []byte
}

var _ agent.Executor = (*contentExecutor)(nil)

func newContentExecutor(log *logger.Logger, kind content.Kind) *contentExecutor {
	return &contentExecutor{log: log, kind: kind}
}

func (e *contentExecutor) Execute(_ context.Context, call llm.ToolCall) agent.ToolResult {
	if call.Name != "create_"+string(e.kind) {
		e.log.Warn("unknown tool requested", "tool", call.Name)
		return agent.ToolResult{Err: fmt.Sprintf("Tool sconosciuto: %s", call.Name)}
	}

	raw := []byte(call.Arguments)
	if !json.Valid(raw) || len(raw) == 0 {
		// Tolerant parse: a garbled argument blob becomes an empty
		// object so validation names the missing fields.
		raw = []byte("{}")
	}

	payload, summary, err := e.validate(raw)
	if err != nil {
		e.log.Warn("artifact validation failed", "kind", e.kind, "error", err)
		return agent.ToolResult{Err: err.Error()}
	}
	e.artifact = payload
	return agent.ToolResult{Output: summary}
}

func (e *contentExecutor) Artifact() (string, []byte, bool) {
	if e.artifact == nil {
		return "", nil, false
	}
	return e.kind.FenceTag(), e.artifact, true
}

// validate runs the kind-specific parser and builds the tool output the
// model sees on success.
func (e *contentExecutor) validate(raw []byte) ([]byte, string, error) {
	switch e.kind {
	case content.KindQuiz:
		q, err := content.ParseQuiz(raw)
		if err != nil {
			return nil, "", fmt.Errorf("Errore nella creazione del quiz: %w", err)
		}
		payload, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return payload, fmt.Sprintf("Quiz creato con successo: %s con %d domande", q.Title, len(q.Questions)), nil
	case content.KindLesson:
		l, err := content.ParseLesson(raw)
		if err != nil {
			return nil, "", fmt.Errorf("Errore nella creazione della lezione: %w", err)
		}
		payload, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return payload, fmt.Sprintf("Lezione creata: %s con %d sezioni", l.Title, len(l.Sections)), nil
	case content.KindExercise:
		ex, err := content.ParseExercise(raw)
		if err != nil {
			return nil, "", fmt.Errorf("Errore nella creazione dell'esercizio: %w", err)
		}
		payload, err := json.MarshalIndent(ex, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return payload, fmt.Sprintf("Esercizio creato: %s", ex.Title), nil
	case content.KindPresentation:
		p, err := content.ParsePresentation(raw)
		if err != nil {
			return nil, "", fmt.Errorf("Errore nella creazione della presentazione: %w", err)
		}
		payload, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return payload, fmt.Sprintf("Presentazione creata: %s con %d slide", p.Title, len(p.Slides)), nil
	}
	return nil, "", fmt.Errorf("tipo di contenuto sconosciuto: %s", e.kind)
}
