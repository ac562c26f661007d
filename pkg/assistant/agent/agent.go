// Package agent runs the model/tool loop: it calls the model, forwards
// any tool calls it makes to an executor, feeds the results back, and
// repeats until the model answers in plain text or the round limit is
// hit.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mapassist/mapassist/pkg/assistant/provider"
	"github.com/mapassist/mapassist/pkg/assistant/types"
)

// DefaultMaxIterations bounds the tool loop when no limit is configured.
const DefaultMaxIterations = 10

// ToolExecutor runs a single tool call by name. Implementations decide
// where the call goes; errors become is_error tool results, they never
// abort the loop.
type ToolExecutor interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// Agent drives a conversation against a model, resolving tool calls
// through the executor between turns.
type Agent struct {
	Model         provider.LanguageModel
	Executor      ToolExecutor
	Tools         []types.Tool
	SystemPrompt  string
	MaxIterations int
	MaxTokens     int
}

// Result is the outcome of a completed run.
type Result struct {
	Reply      string
	Messages   []types.Message
	TotalUsage types.Usage
	Iterations int
}

// New creates an agent from the given options.
func New(opts ...Option) (*Agent, error) {
	agent := &Agent{}

	for _, opt := range opts {
		opt(agent)
	}

	if agent.Model == nil {
		return nil, errors.New("model is required")
	}
	if len(agent.Tools) > 0 && agent.Executor == nil {
		return nil, errors.New("executor is required when tools are configured")
	}
	if agent.MaxIterations <= 0 {
		agent.MaxIterations = DefaultMaxIterations
	}

	return agent, nil
}

// Run executes the loop over the given conversation. The returned result
// carries the full conversation including every intermediate tool-call
// and tool-result message, and the usage summed over all model turns.
func (a *Agent) Run(ctx context.Context, messages []types.Message) (*Result, error) {
	conversation := append([]types.Message{}, messages...)

	var totalUsage types.Usage

	for iteration := 1; iteration <= a.MaxIterations; iteration++ {
		resp, err := a.Model.Generate(ctx, provider.GenerateRequest{
			Messages:  conversation,
			System:    a.SystemPrompt,
			Tools:     a.Tools,
			MaxTokens: a.MaxTokens,
		})
		if err != nil {
			return nil, err
		}

		totalUsage = totalUsage.Add(resp.Usage)

		conversation = append(conversation, types.Message{
			Role:      types.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		if len(resp.ToolCalls) == 0 {
			return &Result{
				Reply:      resp.Content,
				Messages:   conversation,
				TotalUsage: totalUsage,
				Iterations: iteration,
			}, nil
		}

		toolResults := make([]types.ToolResult, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			toolResults = append(toolResults, a.runToolCall(ctx, call))
		}

		conversation = append(conversation, types.Message{
			Role:        types.RoleUser,
			ToolResults: toolResults,
		})
	}

	return nil, fmt.Errorf("maximum tool rounds exceeded (%d)", a.MaxIterations)
}

// runToolCall executes one tool call. Failures are folded into the result
// so the model can see what went wrong and react.
func (a *Agent) runToolCall(ctx context.Context, call types.ToolCall) types.ToolResult {
	content, err := a.Executor.CallTool(ctx, call.Name, call.Arguments)

	result := types.ToolResult{
		ToolCallID: call.ID,
		Content:    content,
		IsError:    err != nil,
	}

	if err != nil {
		log.Warn().
			Err(err).
			Str("tool", call.Name).
			Msg("tool call failed")

		result.Content = fmt.Sprintf("Error: %v", err)
	}

	return result
}
