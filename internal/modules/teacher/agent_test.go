package teacher

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/search"
)

const fiveQuestionQuizArgs = `{
	"title": "Quiz sulle Frazioni",
	"description": "Cinque domande sulle frazioni",
	"questions": [
		{"question": "Q1", "options": ["a","b","c","d"], "correctIndex": 0},
		{"question": "Q2", "options": ["a","b","c","d"], "correctIndex": 1},
		{"question": "Q3", "options": ["a","b","c","d"], "correctIndex": 2},
		{"question": "Q4", "options": ["a","b","c","d"], "correctIndex": 3},
		{"question": "Q5", "options": ["a","b","c","d"], "correctIndex": 0}
	]
}`

func TestGenerateContentQuizScenario(t *testing.T) {
	svc := &stubLLM{
		tools: true,
		responses: []*llm.Response{
			{ToolCalls: []llm.ToolCall{{ID: "call_1", Name: "create_quiz", Arguments: fiveQuestionQuizArgs}}},
			{Content: "Ecco il quiz sulle frazioni!"},
		},
	}
	a := &Agent{Log: testLogger(t), LLM: svc, MaxIterations: 3}

	out, err := a.generateContent(context.Background(), content.KindQuiz, Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "Crea un quiz di 5 domande sulle frazioni"}},
		Provider: "openai",
		Model:    "gpt-5-mini",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, ok := content.ExtractFence(out, "quiz_data")
	if !ok {
		t.Fatalf("expected fenced quiz block, got: %q", out)
	}
	var quiz content.Quiz
	if err := json.Unmarshal(body, &quiz); err != nil {
		t.Fatalf("fenced quiz must re-parse: %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	if strings.TrimSpace(quiz.Title) == "" {
		t.Fatal("expected non-empty quiz title")
	}
}

func TestGenerateContentValidationFeedback(t *testing.T) {
	badArgs := `{"title": "T", "description": "D", "questions": [{"question": "Q", "options": ["a","b"], "correctIndex": 5}]}`
	svc := &stubLLM{
		tools: true,
		responses: []*llm.Response{
			{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "create_quiz", Arguments: badArgs}}},
			{ToolCalls: []llm.ToolCall{{ID: "c2", Name: "create_quiz", Arguments: fiveQuestionQuizArgs}}},
			{Content: "Corretto e rigenerato."},
		},
	}
	a := &Agent{Log: testLogger(t), LLM: svc, MaxIterations: 3}

	out, err := a.generateContent(context.Background(), content.KindQuiz, Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "crea un quiz"}},
		Provider: "openai",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !content.HasFence(out, "quiz_data") {
		t.Fatalf("expected quiz fence after self-correction, got %q", out)
	}

	// The second backend call must carry the validation failure as a
	// tool message so the model can repair itself.
	var toolMsg string
	for _, m := range svc.requests[1].Messages {
		if m.Role == llm.RoleTool {
			toolMsg = m.Content
		}
	}
	if !strings.Contains(toolMsg, "correctIndex") {
		t.Fatalf("expected corrective feedback naming the violated field, got %q", toolMsg)
	}
}

func TestGenerateContentToolFreeRepair(t *testing.T) {
	// Provider without tool support: the reply embeds a JSON object but
	// no fence; the repair pass must reconstruct it.
	reply := "Ecco il tuo quiz:\n\n" + fiveQuestionQuizArgs + "\n\nBuon lavoro!"
	svc := &stubLLM{tools: false, responses: []*llm.Response{{Content: reply}}}
	a := &Agent{Log: testLogger(t), LLM: svc, MaxIterations: 3}

	out, err := a.generateContent(context.Background(), content.KindQuiz, Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "crea un quiz"}},
		Provider: "ollama",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !content.HasFence(out, "quiz_data") {
		t.Fatalf("expected reconstructed fence, got %q", out)
	}
	if !strings.HasPrefix(out, "Ecco il tuo quiz:") {
		t.Fatalf("expected original prose preserved, got %q", out)
	}
}

func TestGenerateContentToolFreeWarning(t *testing.T) {
	svc := &stubLLM{tools: false, responses: []*llm.Response{{Content: "Non sono riuscito a strutturare nulla."}}}
	a := &Agent{Log: testLogger(t), LLM: svc, MaxIterations: 3}

	out, err := a.generateContent(context.Background(), content.KindQuiz, Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "crea un quiz"}},
		Provider: "ollama",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "⚠️") {
		t.Fatalf("expected visible warning on extraction failure, got %q", out)
	}
}

func TestRepairArtifactKeepsExistingFence(t *testing.T) {
	a := &Agent{Log: testLogger(t)}
	fenced := "Fatto.\n\n" + content.Fence("quiz_data", []byte(`{"title": "T"}`))
	if got := a.repairArtifact(fenced, content.KindQuiz); got != fenced {
		t.Fatalf("expected passthrough when fence present, got %q", got)
	}
}

type stubSearch struct {
	results []search.SearchResult
	err     error
	queries []string
}

func (s *stubSearch) Search(_ context.Context, query string, _ int) ([]search.SearchResult, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func TestWebSearchAppendsSources(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{{Content: "La riforma prevede nuove linee guida."}}}
	srch := &stubSearch{results: []search.SearchResult{
		{Title: "Ministero", URL: "https://example.it/riforma", Snippet: "testo"},
	}}
	a := &Agent{Log: testLogger(t), LLM: svc, Search: srch}

	out, err := a.generateWithWebSearch(context.Background(), Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "cerca la riforma scolastica"}},
		Provider: "openai",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "📚 **Fonti:**") {
		t.Fatalf("expected sources appended when reply omits them, got %q", out)
	}
	if !strings.Contains(out, "https://example.it/riforma") {
		t.Fatalf("expected source link present, got %q", out)
	}
	if srch.queries[0] != "cerca la riforma scolastica" {
		t.Fatalf("expected last user message as query, got %q", srch.queries[0])
	}
}

func TestWebSearchEmptyResultsFallsBackToAnalytics(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{{Content: "Risposta basata sui dati di classe."}}}
	srch := &stubSearch{}
	a := &Agent{Log: testLogger(t), LLM: svc, Search: srch}

	out, err := a.generateWithWebSearch(context.Background(), Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "cerca qualcosa di introvabile"}},
		Context:  "CLASSE 2B: media 7.2",
		Provider: "openai",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Risposta basata sui dati di classe." {
		t.Fatalf("expected analytics fallback reply, got %q", out)
	}
	// The analytics path injects the caller's data context.
	if !strings.Contains(svc.requests[0].SystemPrompt, "CLASSE 2B") {
		t.Fatal("expected data context embedded in analytics prompt")
	}
}

func TestRunUnhandledFaultResolvesToAnalytics(t *testing.T) {
	// Classifier reply routes to quiz generation, but the pipeline and
	// the classifier share a stub that then fails; the outer safety net
	// must still produce text.
	svc := &failingThenAnalyticsLLM{}
	a := &Agent{
		Log:    testLogger(t),
		LLM:    svc,
		Router: &Router{Log: testLogger(t), LLM: svc, Provider: "openai", Model: "gpt-5-nano"},
	}
	out := a.Run(context.Background(), Input{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "crea un quiz sulle frazioni"}},
		Provider: "ollama",
	})
	if out != "Risposta di ripiego." {
		t.Fatalf("expected analytics safety net reply, got %q", out)
	}
}

// failingThenAnalyticsLLM classifies as quiz, fails the generation call,
// then succeeds for the analytics fallback.
type failingThenAnalyticsLLM struct{ calls int }

func (s *failingThenAnalyticsLLM) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.Response, error) {
	s.calls++
	switch s.calls {
	case 1:
		return &llm.Response{Content: `{"intent": "quiz_generation", "confidence": 0.95}`}, nil
	case 2:
		return nil, context.DeadlineExceeded
	default:
		return &llm.Response{Content: "Risposta di ripiego."}, nil
	}
}

func (s *failingThenAnalyticsLLM) SupportsTools(string) bool { return false }
