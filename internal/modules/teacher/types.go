package teacher

// Intent is the classified purpose of a teacher's message. It selects the
// generation pipeline that handles the request.
type Intent string

const (
	IntentQuizGeneration         Intent = "quiz_generation"
	IntentLessonGeneration       Intent = "lesson_generation"
	IntentExerciseGeneration     Intent = "exercise_generation"
	IntentPresentationGeneration Intent = "presentation_generation"
	IntentWebSearch              Intent = "web_search"
	IntentDocumentHelp           Intent = "document_help"
	IntentAnalytics              Intent = "analytics"
	IntentTextEditor             Intent = "text_editor"
)

var knownIntents = map[Intent]bool{
	IntentQuizGeneration:         true,
	IntentLessonGeneration:       true,
	IntentExerciseGeneration:     true,
	IntentPresentationGeneration: true,
	IntentWebSearch:              true,
	IntentDocumentHelp:           true,
	IntentAnalytics:              true,
	IntentTextEditor:             true,
}

// IntentResult is the router's verdict for one message.
type IntentResult struct {
	Intent     Intent
	Confidence float64
	Topic      string
}
