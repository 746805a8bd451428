package mathcoach

import "github.com/quaderno-ai/quaderno-backend/internal/llm"

var mathTools = []llm.ToolDefinition{
	{
		Name:        "calculator",
		Description: "Esegue calcoli matematici. Usa questa funzione per qualsiasi operazione aritmetica, potenze, radici, funzioni trigonometriche, logaritmi, etc. Restituisce il risultato numerico esatto.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "L'espressione matematica da calcolare. Esempi: '2+2', 'sqrt(16)', 'sin(pi/2)', '2^10', 'log(100, 10)'",
				},
			},
			"required": []string{"expression"},
		},
	},
	{
		Name:        "python_math",
		Description: "Esegue codice per calcoli matematici complessi come equazioni, sistemi, derivate numeriche, integrali numerici, statistiche, etc. Usa questa funzione quando il calcolo richiede più passaggi o algoritmi.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"code": map[string]any{
					"type":        "string",
					"description": "Il codice da eseguire. Deve stampare il risultato con print() o assegnarlo a una variabile 'result'. Hai accesso a math e funzioni base.",
				},
			},
			"required": []string{"code"},
		},
	},
}
