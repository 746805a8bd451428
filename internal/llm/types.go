package llm

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn of a conversation. Tool-call turns carry ToolCalls on
// the assistant side and ToolCallID on the tool side.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a tool invocation as requested by the model. Arguments is the
// raw JSON text from the wire and must be parsed and validated before use.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition declares a callable tool: name, human description, and a
// JSON-schema parameter object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type GenerateRequest struct {
	Messages     []Message
	SystemPrompt string
	Provider     string
	Model        string
	Temperature  float64
	MaxTokens    int
	Tools        []ToolDefinition
}

type Response struct {
	Content          string
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	ToolCalls        []ToolCall
}

// HasToolCalls reports whether the model asked for tool execution instead of
// (or before) producing final text.
func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}
