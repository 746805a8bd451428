package mathcoach

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quaderno-ai/quaderno-backend/internal/agent"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
	"github.com/quaderno-ai/quaderno-backend/internal/sandbox"
)

// mathExecutor dispatches calculator and python_math calls into the
// sandbox. It never produces an artifact; results exist only for the
// model's silent verification.
type mathExecutor struct {
	log *logger.Logger
}

var _ agent.Executor = (*mathExecutor)(nil)

func (e *mathExecutor) Execute(_ context.Context, call llm.ToolCall) agent.ToolResult {
	// Tolerant parse: a garbled argument blob leaves the fields empty and
	// the sandbox reports the problem back to the model.
	var args struct {
		Expression string `json:"expression"`
		Code       string `json:"code"`
	}
	_ = json.Unmarshal([]byte(call.Arguments), &args)

	var res sandbox.Result
	switch call.Name {
	case "calculator":
		res = sandbox.Calculator(args.Expression)
	case "python_math":
		res = sandbox.PythonMath(args.Code)
	default:
		e.log.Warn("unknown math tool requested", "tool", call.Name)
		return agent.ToolResult{Err: fmt.Sprintf("Tool sconosciuto: %s", call.Name)}
	}

	if !res.Success {
		e.log.Debug("sandbox call failed", "tool", res.Tool, "error", res.Err)
		return agent.ToolResult{Err: res.Err}
	}
	return agent.ToolResult{Output: "Risultato: " + res.Output}
}

func (e *mathExecutor) Artifact() (string, []byte, bool) { return "", nil, false }
