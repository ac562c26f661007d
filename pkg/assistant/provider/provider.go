// Package provider defines the interface language-model backends
// implement.
package provider

import (
	"context"

	"github.com/mapassist/mapassist/pkg/assistant/types"
)

// LanguageModel defines the interface that all model providers must
// implement.
type LanguageModel interface {
	// Generate produces a complete response (blocking)
	Generate(ctx context.Context, req GenerateRequest) (*types.GenerateResponse, error)

	// ID returns the unique identifier for this model
	ID() string
}

// GenerateRequest contains all parameters for generating a model turn
type GenerateRequest struct {
	// Messages is the conversation history
	Messages []types.Message `json:"messages"`

	// System is an optional system prompt
	System string `json:"system,omitempty"`

	// Tools is a list of tools available to the model
	Tools []types.Tool `json:"tools,omitempty"`

	// MaxTokens is the maximum number of tokens to generate
	MaxTokens int `json:"max_tokens,omitempty"`
}
