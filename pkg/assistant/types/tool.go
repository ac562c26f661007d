package types

// Tool represents a tool the model may call. Parameters is a complete
// JSON Schema object describing the arguments.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}
