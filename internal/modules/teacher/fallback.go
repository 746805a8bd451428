package teacher

import (
	"context"

	"github.com/quaderno-ai/quaderno-backend/internal/content"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
)

const repairWarning = "⚠️ Non sono riuscito a generare il contenuto strutturato in formato valido. Riprova riformulando la richiesta."

// generateWithoutTools is the degraded structured path for providers
// without function calling: the model is asked to self-embed the fenced
// block, and a repair pass reconstructs it when missing.
func (a *Agent) generateWithoutTools(ctx context.Context, pl pipeline, in Input) (string, error) {
	resp, err := a.LLM.Generate(ctx, llm.GenerateRequest{
		Messages:     in.Messages,
		SystemPrompt: pl.Prompt,
		Provider:     in.Provider,
		Model:        in.Model,
		Temperature:  0.7,
		MaxTokens:    2048,
	})
	if err != nil {
		return "", err
	}
	return a.repairArtifact(resp.Content, pl.Kind), nil
}

// repairArtifact makes sure a structured reply carries its fenced block.
// If the fence is present the text passes through untouched. Otherwise a
// pattern scan looks for a JSON object with the kind's required top-level
// keys, revalidates it, and appends the reconstructed fence. When that
// also fails, a visible warning is appended instead of dropping content
// silently.
func (a *Agent) repairArtifact(text string, kind content.Kind) string {
	tag := kind.FenceTag()
	if content.HasFence(text, tag) {
		return text
	}
	if obj, ok := content.ExtractObjectWithKeys(text, kind.RequiredKeys()); ok {
		if payload, err := content.ParseArtifact(kind, obj); err == nil {
			a.Log.Info("reconstructed missing artifact fence", "kind", string(kind))
			return text + "\n\n" + content.Fence(tag, payload)
		} else {
			a.Log.Warn("embedded artifact failed validation", "kind", string(kind), "error", err)
		}
	}
	a.Log.Warn("no artifact found in tool-free reply", "kind", string(kind))
	return text + "\n\n" + repairWarning
}
