// Package anthropic implements the LanguageModel interface on top of the
// Claude Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mapassist/mapassist/pkg/assistant/provider"
	"github.com/mapassist/mapassist/pkg/assistant/types"
)

// DefaultMaxTokens is used when neither the request nor the config sets a
// limit. The Messages API requires max_tokens on every call.
const DefaultMaxTokens = 4096

// Provider implements the LanguageModel interface for Anthropic Claude
type Provider struct {
	client anthropic.Client
	model  string
	config Config
}

// Config holds Anthropic-specific configuration
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	MaxTokens      int
	RequestTimeout time.Duration
}

// New creates a new Anthropic provider
func New(apiKey, model string) *Provider {
	return NewWithConfig(Config{
		APIKey: apiKey,
		Model:  model,
	})
}

// NewWithConfig creates a new Anthropic provider with custom configuration
func NewWithConfig(config Config) *Provider {
	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if config.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(config.RequestTimeout))
	}

	return &Provider{
		client: anthropic.NewClient(opts...),
		model:  config.Model,
		config: config,
	}
}

// ID returns the model identifier
func (p *Provider) ID() string {
	return fmt.Sprintf("anthropic:%s", p.model)
}

// Generate implements the Generate method of the LanguageModel interface
func (p *Provider) Generate(ctx context.Context, req provider.GenerateRequest) (*types.GenerateResponse, error) {
	messages, systemPrompt := convertMessages(req.Messages, req.System)
	tools := convertTools(req.Tools)

	msgReq := anthropic.MessageNewParams{
		Model:    anthropic.Model(p.model),
		Messages: messages,
	}

	if len(systemPrompt) > 0 {
		msgReq.System = systemPrompt
	}

	if req.MaxTokens > 0 {
		msgReq.MaxTokens = int64(req.MaxTokens)
	} else if p.config.MaxTokens > 0 {
		msgReq.MaxTokens = int64(p.config.MaxTokens)
	} else {
		msgReq.MaxTokens = int64(DefaultMaxTokens)
	}

	if len(tools) > 0 {
		msgReq.Tools = tools
		msgReq.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	}

	resp, err := p.client.Messages.New(ctx, msgReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	response := &types.GenerateResponse{
		Model:        string(resp.Model),
		FinishReason: string(resp.StopReason),
		Usage: types.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}

	var textContent strings.Builder
	var toolCalls []types.ToolCall

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			textContent.WriteString(block.Text)
		case "tool_use":
			args := make(map[string]any)
			if len(block.Input) > 0 {
				json.Unmarshal(block.Input, &args)
			}
			toolCalls = append(toolCalls, types.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: args,
			})
		}
	}

	response.Content = textContent.String()
	response.ToolCalls = toolCalls

	return response, nil
}

// convertMessages maps conversation messages onto Anthropic content
// blocks. System messages are folded into the system prompt; tool results
// ride on user messages as tool_result blocks.
func convertMessages(messages []types.Message, systemPrompt string) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	result := make([]anthropic.MessageParam, 0, len(messages))

	var systemTexts []string
	if systemPrompt != "" {
		systemTexts = append(systemTexts, systemPrompt)
	}

	for _, msg := range messages {
		if msg.Role == types.RoleSystem {
			systemTexts = append(systemTexts, msg.Content)
			continue
		}

		var contentBlocks []anthropic.ContentBlockParamUnion

		if msg.Content != "" {
			contentBlocks = append(contentBlocks, anthropic.NewTextBlock(msg.Content))
		}

		if msg.Role == types.RoleAssistant {
			for _, tc := range msg.ToolCalls {
				input := tc.Arguments
				if input == nil {
					input = make(map[string]any)
				}
				contentBlocks = append(contentBlocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
			}
		}

		for _, tr := range msg.ToolResults {
			contentBlocks = append(contentBlocks, anthropic.NewToolResultBlock(tr.ToolCallID, tr.Content, tr.IsError))
		}

		if len(contentBlocks) == 0 {
			continue
		}

		result = append(result, anthropic.MessageParam{
			Role:    anthropic.MessageParamRole(msg.Role),
			Content: contentBlocks,
		})
	}

	var system []anthropic.TextBlockParam
	if len(systemTexts) > 0 {
		system = []anthropic.TextBlockParam{{
			Text: strings.Join(systemTexts, "\n\n"),
			Type: "text",
		}}
	}

	return result, system
}

// convertTools maps tool definitions onto the Anthropic tool format. The
// Parameters field is a complete JSON Schema object; properties and
// required are lifted out and everything else passes through untouched.
func convertTools(tools []types.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: "object",
		}

		if properties, ok := tool.Parameters["properties"]; ok {
			inputSchema.Properties = properties
		}

		if required, ok := tool.Parameters["required"].([]any); ok {
			reqStrings := make([]string, 0, len(required))
			for _, r := range required {
				if s, ok := r.(string); ok {
					reqStrings = append(reqStrings, s)
				}
			}
			inputSchema.Required = reqStrings
		} else if required, ok := tool.Parameters["required"].([]string); ok {
			inputSchema.Required = required
		}

		inputSchema.ExtraFields = make(map[string]any)
		for key, value := range tool.Parameters {
			if key != "type" && key != "properties" && key != "required" {
				inputSchema.ExtraFields[key] = value
			}
		}

		result[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: inputSchema,
			},
		}
	}
	return result
}
