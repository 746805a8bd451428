package content

import (
	"encoding/json"
	"strings"
	"testing"
)

func validQuizJSON() []byte {
	return []byte(`{
		"title": "Quiz: Frazioni",
		"description": "Verifica sulle frazioni equivalenti",
		"questions": [
			{"question": "Quanto fa 1/2 + 1/4?", "options": ["3/4", "2/6", "1/8", "2/4"], "correctIndex": 0, "explanation": "Denominatore comune 4."},
			{"question": "Qual è la frazione equivalente a 2/4?", "options": ["1/2", "2/3", "3/4", "4/2"], "correctIndex": 0, "points": 2}
		]
	}`)
}

func TestParseQuizNormalizesPoints(t *testing.T) {
	q, err := ParseQuiz(validQuizJSON())
	if err != nil {
		t.Fatalf("expected valid quiz, got: %v", err)
	}
	if q.Questions[0].Points != 1 {
		t.Fatalf("expected default points 1, got %d", q.Questions[0].Points)
	}
	if q.TotalPoints != 3 {
		t.Fatalf("expected derived total_points 3, got %d", q.TotalPoints)
	}
}

func TestParseQuizRejectsCorrectIndexOutOfRange(t *testing.T) {
	raw := []byte(`{
		"title": "T", "description": "D",
		"questions": [{"question": "Q", "options": ["a", "b"], "correctIndex": 2}]
	}`)
	if _, err := ParseQuiz(raw); err == nil {
		t.Fatal("expected rejection for out-of-range correctIndex")
	} else if !strings.Contains(err.Error(), "correctIndex") {
		t.Fatalf("expected the violated field named, got: %v", err)
	}
}

func TestParseQuizRejectsOptionCount(t *testing.T) {
	raw := []byte(`{
		"title": "T", "description": "D",
		"questions": [{"question": "Q", "options": ["solo una"], "correctIndex": 0}]
	}`)
	if _, err := ParseQuiz(raw); err == nil {
		t.Fatal("expected rejection for single option")
	}
	raw = []byte(`{
		"title": "T", "description": "D",
		"questions": [{"question": "Q", "options": ["a","b","c","d","e","f","g"], "correctIndex": 0}]
	}`)
	if _, err := ParseQuiz(raw); err == nil {
		t.Fatal("expected rejection for seven options")
	}
}

func TestParseQuizRejectsMissingTitle(t *testing.T) {
	raw := []byte(`{"description": "D", "questions": [{"question": "Q", "options": ["a","b"], "correctIndex": 0}]}`)
	if _, err := ParseQuiz(raw); err == nil {
		t.Fatal("expected rejection for missing title")
	}
}

func TestParseLessonRejectsEmptySection(t *testing.T) {
	raw := []byte(`{
		"title": "Lezione", "description": "D",
		"objectives": ["capire"],
		"sections": [{"title": "Intro", "content": ""}]
	}`)
	if _, err := ParseLesson(raw); err == nil {
		t.Fatal("expected rejection for empty section content")
	} else if !strings.Contains(err.Error(), "sections[0].content") {
		t.Fatalf("expected the violated field named, got: %v", err)
	}
}

func TestParseExerciseDefaultsDifficulty(t *testing.T) {
	raw := []byte(`{"title": "Es", "description": "D", "instructions": "Svolgi i passaggi"}`)
	ex, err := ParseExercise(raw)
	if err != nil {
		t.Fatalf("expected valid exercise, got: %v", err)
	}
	if ex.Difficulty != DifficultyMedium {
		t.Fatalf("expected default difficulty medium, got %q", ex.Difficulty)
	}
}

func TestParseExerciseRejectsBadDifficulty(t *testing.T) {
	raw := []byte(`{"title": "Es", "description": "D", "instructions": "I", "difficulty": "impossible"}`)
	if _, err := ParseExercise(raw); err == nil {
		t.Fatal("expected rejection for unknown difficulty")
	}
}

func TestParsePresentationValidatesSlides(t *testing.T) {
	raw := []byte(`{
		"title": "Slide deck",
		"slides": [{"order": -1, "title": "T", "content": "C"}]
	}`)
	if _, err := ParsePresentation(raw); err == nil {
		t.Fatal("expected rejection for negative slide order")
	}
}

// A fenced artifact must re-parse into the same structure the validator
// accepted.
func TestArtifactFenceRoundTrip(t *testing.T) {
	payload, err := ParseArtifact(KindQuiz, validQuizJSON())
	if err != nil {
		t.Fatalf("expected valid quiz, got: %v", err)
	}
	fenced := Fence(KindQuiz.FenceTag(), payload)
	body, ok := ExtractFence(fenced, KindQuiz.FenceTag())
	if !ok {
		t.Fatal("expected fenced block to extract")
	}
	var first, second Quiz
	if err := json.Unmarshal(payload, &first); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if err := json.Unmarshal(body, &second); err != nil {
		t.Fatalf("unmarshal fence body: %v", err)
	}
	if first.Title != second.Title || len(first.Questions) != len(second.Questions) || first.TotalPoints != second.TotalPoints {
		t.Fatalf("round trip mismatch: %+v vs %+v", first, second)
	}
}
