package agent

import (
	"github.com/mapassist/mapassist/pkg/assistant/provider"
	"github.com/mapassist/mapassist/pkg/assistant/types"
)

type Option func(*Agent)

func WithModel(m provider.LanguageModel) Option {
	return func(a *Agent) {
		a.Model = m
	}
}

func WithExecutor(e ToolExecutor) Option {
	return func(a *Agent) {
		a.Executor = e
	}
}

func WithTools(tools ...types.Tool) Option {
	return func(a *Agent) {
		a.Tools = append(a.Tools, tools...)
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.SystemPrompt = prompt
	}
}

func WithMaxIterations(iterations int) Option {
	return func(a *Agent) {
		a.MaxIterations = iterations
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(a *Agent) {
		a.MaxTokens = maxTokens
	}
}
