package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapassist/mapassist/pkg/assistant/provider"
	"github.com/mapassist/mapassist/pkg/assistant/types"
)

// scriptedModel returns canned responses in order, recording every
// request it sees.
type scriptedModel struct {
	responses []*types.GenerateResponse
	requests  []provider.GenerateRequest
	err       error
}

func (m *scriptedModel) Generate(ctx context.Context, req provider.GenerateRequest) (*types.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}

	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *scriptedModel) ID() string { return "scripted:test" }

type recordingExecutor struct {
	calls []types.ToolCall
}

func (e *recordingExecutor) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	e.calls = append(e.calls, types.ToolCall{Name: name, Arguments: args})
	if name == "broken_tool" {
		return "", errors.New("boom")
	}
	return `{"success":true,"total":1}`, nil
}

func userMessage(content string) types.Message {
	return types.Message{Role: types.RoleUser, Content: content}
}

func TestRunWithoutToolCalls(t *testing.T) {
	model := &scriptedModel{
		responses: []*types.GenerateResponse{
			{
				Content: "Paris is the capital of France.",
				Usage:   types.Usage{InputTokens: 12, OutputTokens: 8},
			},
		},
	}

	a, err := New(WithModel(model), WithSystemPrompt("You are a helpful assistant."))
	require.NoError(t, err)

	result, err := a.Run(context.Background(), []types.Message{userMessage("What is the capital of France?")})
	require.NoError(t, err)

	assert.Equal(t, "Paris is the capital of France.", result.Reply)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, types.Usage{InputTokens: 12, OutputTokens: 8}, result.TotalUsage)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, types.RoleUser, result.Messages[0].Role)
	assert.Equal(t, types.RoleAssistant, result.Messages[1].Role)
	assert.Equal(t, "Paris is the capital of France.", result.Messages[1].Content)

	require.Len(t, model.requests, 1)
	assert.Equal(t, "You are a helpful assistant.", model.requests[0].System)
}

func TestRunResolvesToolCalls(t *testing.T) {
	model := &scriptedModel{
		responses: []*types.GenerateResponse{
			{
				Content: "Let me look that up.",
				ToolCalls: []types.ToolCall{
					{ID: "toolu_01", Name: "geocode_forward", Arguments: map[string]any{"query": "Eiffel Tower"}},
					{ID: "toolu_02", Name: "broken_tool", Arguments: map[string]any{}},
				},
				Usage: types.Usage{InputTokens: 20, OutputTokens: 15},
			},
			{
				Content: "The Eiffel Tower is in Paris.",
				Usage:   types.Usage{InputTokens: 40, OutputTokens: 10},
			},
		},
	}
	executor := &recordingExecutor{}

	a, err := New(
		WithModel(model),
		WithExecutor(executor),
		WithTools(types.Tool{Name: "geocode_forward", Parameters: map[string]any{"type": "object"}}),
	)
	require.NoError(t, err)

	result, err := a.Run(context.Background(), []types.Message{userMessage("Where is the Eiffel Tower?")})
	require.NoError(t, err)

	assert.Equal(t, "The Eiffel Tower is in Paris.", result.Reply)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, types.Usage{InputTokens: 60, OutputTokens: 25}, result.TotalUsage)

	require.Len(t, executor.calls, 2)
	assert.Equal(t, "geocode_forward", executor.calls[0].Name)
	assert.Equal(t, map[string]any{"query": "Eiffel Tower"}, executor.calls[0].Arguments)

	// user, assistant with tool calls, user with tool results, assistant
	require.Len(t, result.Messages, 4)

	toolCallMsg := result.Messages[1]
	assert.Equal(t, types.RoleAssistant, toolCallMsg.Role)
	require.Len(t, toolCallMsg.ToolCalls, 2)

	toolResultMsg := result.Messages[2]
	assert.Equal(t, types.RoleUser, toolResultMsg.Role)
	require.Len(t, toolResultMsg.ToolResults, 2)

	assert.Equal(t, "toolu_01", toolResultMsg.ToolResults[0].ToolCallID)
	assert.False(t, toolResultMsg.ToolResults[0].IsError)
	assert.Equal(t, `{"success":true,"total":1}`, toolResultMsg.ToolResults[0].Content)

	assert.Equal(t, "toolu_02", toolResultMsg.ToolResults[1].ToolCallID)
	assert.True(t, toolResultMsg.ToolResults[1].IsError)
	assert.Equal(t, "Error: boom", toolResultMsg.ToolResults[1].Content)
}

func TestRunStopsAtMaxIterations(t *testing.T) {
	model := &scriptedModel{
		responses: []*types.GenerateResponse{
			{
				ToolCalls: []types.ToolCall{{ID: "toolu_01", Name: "geocode_forward"}},
				Usage:     types.Usage{InputTokens: 5, OutputTokens: 5},
			},
		},
	}

	a, err := New(
		WithModel(model),
		WithExecutor(&recordingExecutor{}),
		WithMaxIterations(2),
	)
	require.NoError(t, err)

	_, err = a.Run(context.Background(), []types.Message{userMessage("loop forever")})
	require.Error(t, err)
	assert.Equal(t, "maximum tool rounds exceeded (2)", err.Error())
	assert.Len(t, model.requests, 2)
}

func TestRunPropagatesModelErrors(t *testing.T) {
	model := &scriptedModel{err: errors.New("anthropic api error: overloaded")}

	a, err := New(WithModel(model))
	require.NoError(t, err)

	_, err = a.Run(context.Background(), []types.Message{userMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestRunDoesNotMutateInput(t *testing.T) {
	model := &scriptedModel{
		responses: []*types.GenerateResponse{{Content: "done"}},
	}

	a, err := New(WithModel(model))
	require.NoError(t, err)

	input := []types.Message{userMessage("original")}
	result, err := a.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Len(t, input, 1)
	assert.Len(t, result.Messages, 2)
}

func TestNewValidation(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")

	_, err = New(
		WithModel(&scriptedModel{}),
		WithTools(types.Tool{Name: "geocode_forward"}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executor is required")

	a, err := New(WithModel(&scriptedModel{}))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxIterations, a.MaxIterations)
}

func TestRunSendsToolsToModel(t *testing.T) {
	model := &scriptedModel{
		responses: []*types.GenerateResponse{{Content: "ok"}},
	}
	tools := []types.Tool{
		{Name: "geocode_forward", Description: "forward geocoding"},
		{Name: "get_directions", Description: "directions"},
	}

	a, err := New(
		WithModel(model),
		WithExecutor(&recordingExecutor{}),
		WithTools(tools...),
		WithMaxTokens(2048),
	)
	require.NoError(t, err)

	_, err = a.Run(context.Background(), []types.Message{userMessage("hi")})
	require.NoError(t, err)

	require.Len(t, model.requests, 1)
	assert.Equal(t, tools, model.requests[0].Tools)
	assert.Equal(t, 2048, model.requests[0].MaxTokens)
}
