package teacher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
)

type stubLLM struct {
	responses []*llm.Response
	err       error
	requests  []llm.GenerateRequest
	tools     bool
}

func (s *stubLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	i := len(s.requests) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func (s *stubLLM) SupportsTools(string) bool { return s.tools }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func newTestRouter(t *testing.T, svc *stubLLM) *Router {
	t.Helper()
	return &Router{Log: testLogger(t), LLM: svc, Provider: "openai", Model: "gpt-5-nano"}
}

func TestRouteForcedPrefixSkipsClassifier(t *testing.T) {
	svc := &stubLLM{}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "CREA QUIZ: le frazioni", nil)
	if res.Intent != IntentQuizGeneration {
		t.Fatalf("expected quiz_generation, got %s", res.Intent)
	}
	if res.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", res.Confidence)
	}
	if res.Topic != "le frazioni" {
		t.Fatalf("expected prefix stripped from topic, got %q", res.Topic)
	}
	if len(svc.requests) != 0 {
		t.Fatalf("forced prefix must not call the backend, got %d calls", len(svc.requests))
	}
}

func TestRouteEmojiPrefix(t *testing.T) {
	svc := &stubLLM{}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "🌐 ultime notizie sulla riforma", nil)
	if res.Intent != IntentWebSearch {
		t.Fatalf("expected web_search, got %s", res.Intent)
	}
	if len(svc.requests) != 0 {
		t.Fatal("emoji prefix must not call the backend")
	}
}

func TestRouteLowConfidenceCollapsesToAnalytics(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{
		{Content: `{"intent": "web_search", "confidence": 0.4, "topic": "qualcosa"}`},
	}}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "dimmi qualcosa", nil)
	if res.Intent != IntentAnalytics {
		t.Fatalf("expected analytics for confidence 0.4, got %s", res.Intent)
	}
}

func TestRouteUnknownIntentFallsBack(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{
		{Content: `{"intent": "make_coffee", "confidence": 0.95}`},
	}}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "fammi un caffè", nil)
	if res.Intent != IntentAnalytics {
		t.Fatalf("expected analytics for invented intent, got %s", res.Intent)
	}
}

func TestRouteTolerantOfCodeFences(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{
		{Content: "```json\n{\"intent\": \"quiz_generation\", \"confidence\": 0.92, \"topic\": \"geometria\"}\n```"},
	}}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "vorrei una verifica di geometria", nil)
	if res.Intent != IntentQuizGeneration {
		t.Fatalf("expected quiz_generation, got %s", res.Intent)
	}
	if res.Topic != "geometria" {
		t.Fatalf("expected topic extracted, got %q", res.Topic)
	}
}

func TestRouteBackendErrorFallsBack(t *testing.T) {
	svc := &stubLLM{err: errors.New("rate limited")}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "come va la classe?", nil)
	if res.Intent != IntentAnalytics {
		t.Fatalf("expected analytics on backend error, got %s", res.Intent)
	}
	if res.Confidence != 0.5 {
		t.Fatalf("expected fallback confidence 0.5, got %v", res.Confidence)
	}
}

func TestRouteUnparseableReplyFallsBack(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{{Content: "volentieri! ecco cosa penso..."}}}
	r := newTestRouter(t, svc)

	res := r.Route(context.Background(), "boh", nil)
	if res.Intent != IntentAnalytics {
		t.Fatalf("expected analytics on parse failure, got %s", res.Intent)
	}
}

func TestRouteClassifierSeesOnlyRecentHistory(t *testing.T) {
	svc := &stubLLM{responses: []*llm.Response{
		{Content: `{"intent": "analytics", "confidence": 0.9}`},
	}}
	r := newTestRouter(t, svc)

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "uno"},
		{Role: llm.RoleAssistant, Content: "due"},
		{Role: llm.RoleUser, Content: "tre"},
		{Role: llm.RoleAssistant, Content: "quattro"},
	}
	r.Route(context.Background(), "statistiche della classe", history)

	if len(svc.requests) != 1 {
		t.Fatalf("expected one classification call, got %d", len(svc.requests))
	}
	prompt := svc.requests[0].Messages[0].Content
	if strings.Contains(prompt, "user: uno") {
		t.Fatalf("expected oldest turn dropped, prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "quattro") {
		t.Fatalf("expected recent turn included, prompt: %q", prompt)
	}
}
