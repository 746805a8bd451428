package content

// Kind identifies a structured artifact family and its fenced-block tag.
type Kind string

const (
	KindQuiz         Kind = "quiz"
	KindLesson       Kind = "lesson"
	KindExercise     Kind = "exercise"
	KindPresentation Kind = "presentation"
)

// FenceTag is the info string of the fenced code block that carries this
// artifact inside a chat reply (e.g. ```quiz_data ... ```).
func (k Kind) FenceTag() string {
	return string(k) + "_data"
}

// RequiredKeys are the top-level JSON keys used to recognize a bare artifact
// object inside free text when the model omits the fence.
func (k Kind) RequiredKeys() []string {
	switch k {
	case KindQuiz:
		return []string{"title", "questions"}
	case KindLesson:
		return []string{"title", "sections"}
	case KindExercise:
		return []string{"title", "instructions"}
	case KindPresentation:
		return []string{"title", "slides"}
	default:
		return nil
	}
}

type QuizQuestion struct {
	Question     string `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"explanation,omitempty"`
	Points       int    `json:"points,omitempty"`
}

type Quiz struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Questions        []QuizQuestion `json:"questions"`
	TotalPoints      int            `json:"total_points,omitempty"`
	TimeLimitMinutes int            `json:"time_limit_minutes,omitempty"`
}

type LessonSection struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type Lesson struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Objectives  []string        `json:"objectives"`
	Sections    []LessonSection `json:"sections"`
	Activities  []string        `json:"activities,omitempty"`
	Resources   []string        `json:"resources,omitempty"`
}

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Exercise struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Examples     []string `json:"examples,omitempty"`
	Solution     string   `json:"solution,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Hint         string   `json:"hint,omitempty"`
}

type PresentationSlide struct {
	Order        int    `json:"order"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	SpeakerNotes string `json:"speaker_notes,omitempty"`
}

type Presentation struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Slides      []PresentationSlide `json:"slides"`
	Theme       string              `json:"theme,omitempty"`
}
