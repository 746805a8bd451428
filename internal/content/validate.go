package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validation is total: an artifact is either fully accepted (with defaults
// filled in) or rejected with the first violated constraint named. Partial
// acceptance is never allowed.

func ParseQuiz(raw []byte) (*Quiz, error) {
	var q Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("invalid quiz json: %w", err)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	q.Normalize()
	return &q, nil
}

func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("title: required")
	}
	if strings.TrimSpace(q.Description) == "" {
		return fmt.Errorf("description: required")
	}
	if len(q.Questions) < 1 {
		return fmt.Errorf("questions: at least 1 question required")
	}
	for i, question := range q.Questions {
		if strings.TrimSpace(question.Question) == "" {
			return fmt.Errorf("questions[%d].question: required", i)
		}
		if len(question.Options) < 2 || len(question.Options) > 6 {
			return fmt.Errorf("questions[%d].options: got %d options, want 2..6", i, len(question.Options))
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			return fmt.Errorf("questions[%d].correctIndex: %d out of range for %d options", i, question.CorrectIndex, len(question.Options))
		}
		if question.Points < 0 {
			return fmt.Errorf("questions[%d].points: must be >= 0", i)
		}
	}
	if q.TotalPoints < 0 {
		return fmt.Errorf("total_points: must be >= 0")
	}
	if q.TimeLimitMinutes != 0 && (q.TimeLimitMinutes < 1 || q.TimeLimitMinutes > 300) {
		return fmt.Errorf("time_limit_minutes: %d out of range 1..300", q.TimeLimitMinutes)
	}
	return nil
}

// Normalize fills defaults: per-question points default to 1 and total_points
// is derived as the sum when absent.
func (q *Quiz) Normalize() {
	for i := range q.Questions {
		if q.Questions[i].Points == 0 {
			q.Questions[i].Points = 1
		}
	}
	if q.TotalPoints == 0 {
		total := 0
		for _, question := range q.Questions {
			total += question.Points
		}
		q.TotalPoints = total
	}
}

func ParseLesson(raw []byte) (*Lesson, error) {
	var l Lesson
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("invalid lesson json: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("title: required")
	}
	if strings.TrimSpace(l.Description) == "" {
		return fmt.Errorf("description: required")
	}
	if len(l.Objectives) < 1 {
		return fmt.Errorf("objectives: at least 1 objective required")
	}
	if len(l.Sections) < 1 {
		return fmt.Errorf("sections: at least 1 section required")
	}
	for i, s := range l.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("sections[%d].title: required", i)
		}
		if strings.TrimSpace(s.Content) == "" {
			return fmt.Errorf("sections[%d].content: required", i)
		}
		if s.DurationMinutes != 0 && (s.DurationMinutes < 1 || s.DurationMinutes > 120) {
			return fmt.Errorf("sections[%d].duration_minutes: %d out of range 1..120", i, s.DurationMinutes)
		}
	}
	return nil
}

func ParseExercise(raw []byte) (*Exercise, error) {
	var e Exercise
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("invalid exercise json: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.Normalize()
	return &e, nil
}

func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title: required")
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("description: required")
	}
	if strings.TrimSpace(e.Instructions) == "" {
		return fmt.Errorf("instructions: required")
	}
	switch e.Difficulty {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("difficulty: %q not one of easy|medium|hard", e.Difficulty)
	}
	return nil
}

func (e *Exercise) Normalize() {
	if e.Difficulty == "" {
		e.Difficulty = DifficultyMedium
	}
}

func ParsePresentation(raw []byte) (*Presentation, error) {
	var p Presentation
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid presentation json: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

func (p *Presentation) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title: required")
	}
	if len(p.Slides) < 1 {
		return fmt.Errorf("slides: at least 1 slide required")
	}
	for i, s := range p.Slides {
		if s.Order < 0 {
			return fmt.Errorf("slides[%d].order: must be >= 0", i)
		}
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("slides[%d].title: required", i)
		}
		if strings.TrimSpace(s.Content) == "" {
			return fmt.Errorf("slides[%d].content: required", i)
		}
	}
	return nil
}

func (p *Presentation) Normalize() {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = "default"
	}
}

// ParseArtifact dispatches raw JSON to the validator for the given kind and
// returns the normalized artifact re-encoded as JSON.
func ParseArtifact(kind Kind, raw []byte) ([]byte, error) {
	switch kind {
	case KindQuiz:
		q, err := ParseQuiz(raw)
		if err != nil {
			return nil, err
		}
		return json.Marshal(q)
	case KindLesson:
		l, err := ParseLesson(raw)
		if err != nil {
			return nil, err
		}
		return json.Marshal(l)
	case KindExercise:
		e, err := ParseExercise(raw)
		if err != nil {
			return nil, err
		}
		return json.Marshal(e)
	case KindPresentation:
		p, err := ParsePresentation(raw)
		if err != nil {
			return nil, err
		}
		return json.Marshal(p)
	default:
		return nil, fmt.Errorf("unknown artifact kind: %s", kind)
	}
}
