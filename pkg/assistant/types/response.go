package types

// GenerateResponse represents a single model turn: its text content, any
// tool calls it requested, and the tokens it consumed.
type GenerateResponse struct {
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	Usage        Usage      `json:"usage"`
	FinishReason string     `json:"finish_reason"`
	Model        string     `json:"model"`
}
