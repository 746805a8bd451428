package teacher

import (
	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
)

// pipeline is the immutable per-kind configuration: prompt, tool manifest
// and the terminal strings. Resolved once, never mutated at runtime.
type pipeline struct {
	Kind       content.Kind
	Prompt     string
	Tools      []llm.ToolDefinition
	Corrective string
	Apology    string
}

var pipelines = map[content.Kind]pipeline{
	content.KindQuiz: {
		Kind:       content.KindQuiz,
		Prompt:     quizAgentPrompt,
		Tools:      quizTools,
		Corrective: "Non hai ancora creato il quiz. Usa lo strumento create_quiz per generarlo.",
		Apology:    "Mi dispiace, non sono riuscito a completare la generazione del quiz.",
	},
	content.KindLesson: {
		Kind:       content.KindLesson,
		Prompt:     lessonAgentPrompt,
		Tools:      lessonTools,
		Corrective: "Non hai ancora creato la lezione. Usa lo strumento create_lesson per generarla.",
		Apology:    "Mi dispiace, non sono riuscito a completare la generazione della lezione.",
	},
	content.KindExercise: {
		Kind:       content.KindExercise,
		Prompt:     exerciseAgentPrompt,
		Tools:      exerciseTools,
		Corrective: "Non hai ancora creato l'esercizio. Usa lo strumento create_exercise per generarlo.",
		Apology:    "Mi dispiace, non sono riuscito a completare la generazione dell'esercizio.",
	},
	content.KindPresentation: {
		Kind:       content.KindPresentation,
		Prompt:     presentationAgentPrompt,
		Tools:      presentationTools,
		Corrective: "Non hai ancora creato la presentazione. Usa lo strumento create_presentation per generarla.",
		Apology:    "Mi dispiace, non sono riuscito a completare la generazione della presentazione.",
	},
}

var quizTools = []llm.ToolDefinition{{
	Name:        "create_quiz",
	Description: "Genera un quiz strutturato con domande a risposta multipla. Usa questa funzione per creare quiz didattici con domande, opzioni di risposta, e spiegazioni.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Titolo del quiz (es: 'Quiz sulle Equazioni di Secondo Grado')",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Descrizione breve del quiz e cosa verifica",
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "Lista di domande del quiz",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "Il testo della domanda",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Lista di 4 opzioni di risposta",
							"items":       map[string]any{"type": "string"},
						},
						"correctIndex": map[string]any{
							"type":        "integer",
							"description": "Indice (0-based) della risposta corretta nell'array options",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Spiegazione della risposta corretta",
						},
						"points": map[string]any{
							"type":        "integer",
							"description": "Punti assegnati a questa domanda (default: 1)",
						},
					},
					"required": []string{"question", "options", "correctIndex"},
				},
			},
			"time_limit_minutes": map[string]any{
				"type":        "integer",
				"description": "Tempo limite in minuti (opzionale)",
			},
		},
		"required": []string{"title", "description", "questions"},
	},
}}

var exerciseTools = []llm.ToolDefinition{{
	Name:        "create_exercise",
	Description: "Genera esercizi pratici con istruzioni, esempi e soluzioni. Usa questa funzione per creare attività pratiche per gli studenti.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Titolo dell'esercizio",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Descrizione dell'esercizio",
			},
			"instructions": map[string]any{
				"type":        "string",
				"description": "Istruzioni dettagliate per svolgere l'esercizio",
			},
			"examples": map[string]any{
				"type":        "array",
				"description": "Esempi svolti per guidare lo studente",
				"items":       map[string]any{"type": "string"},
			},
			"solution": map[string]any{
				"type":        "string",
				"description": "Soluzione completa dell'esercizio (nascosta agli studenti)",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []string{"easy", "medium", "hard"},
				"description": "Livello di difficoltà",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "Suggerimento opzionale per aiutare gli studenti",
			},
		},
		"required": []string{"title", "description", "instructions"},
	},
}}

var lessonTools = []llm.ToolDefinition{{
	Name:        "create_lesson",
	Description: "Genera una lezione strutturata con obiettivi, sezioni ordinate, attività e risorse.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Titolo della lezione",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Descrizione breve della lezione",
			},
			"objectives": map[string]any{
				"type":        "array",
				"description": "Obiettivi di apprendimento",
				"items":       map[string]any{"type": "string"},
			},
			"sections": map[string]any{
				"type":        "array",
				"description": "Sezioni ordinate della lezione",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Titolo della sezione",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Contenuto della sezione in markdown",
						},
						"duration_minutes": map[string]any{
							"type":        "integer",
							"description": "Durata indicativa in minuti (opzionale)",
						},
					},
					"required": []string{"title", "content"},
				},
			},
			"activities": map[string]any{
				"type":        "array",
				"description": "Attività pratiche proposte",
				"items":       map[string]any{"type": "string"},
			},
			"resources": map[string]any{
				"type":        "array",
				"description": "Risorse di approfondimento",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required": []string{"title", "objectives", "sections"},
	},
}}

var presentationTools = []llm.ToolDefinition{{
	Name:        "create_presentation",
	Description: "Genera una presentazione didattica con slide ordinate e note per il relatore.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Titolo della presentazione",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Descrizione breve della presentazione",
			},
			"slides": map[string]any{
				"type":        "array",
				"description": "Slide ordinate della presentazione",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"order": map[string]any{
							"type":        "integer",
							"description": "Posizione della slide, 0-based",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Titolo della slide",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Contenuto della slide",
						},
						"speaker_notes": map[string]any{
							"type":        "string",
							"description": "Note per il relatore (opzionale)",
						},
					},
					"required": []string{"order", "title", "content"},
				},
			},
			"theme": map[string]any{
				"type":        "string",
				"description": "Tema grafico della presentazione (opzionale)",
			},
		},
		"required": []string{"title", "slides"},
	},
}}
