package controllers

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mapassist/mapassist/internal/middlewares"
	"github.com/mapassist/mapassist/pkg/assistant/agent"
	"github.com/mapassist/mapassist/pkg/assistant/provider"
	"github.com/mapassist/mapassist/pkg/assistant/types"
	"github.com/mapassist/mapassist/pkg/clients/gateway"
)

// systemPrompt frames the assistant for map and location questions.
const systemPrompt = `You are a helpful map assistant. You can geocode addresses, look up ` +
	`directions and travel-time matrices, and produce static map images through your tools. ` +
	`When a tool returns an image_url, include it in your answer so the user can open the map. ` +
	`Keep answers concise and mention distances in both kilometers and miles when relevant.`

// ChatController bridges chat requests to the model, forwarding tool
// calls to the gateway service.
type ChatController struct {
	model     provider.LanguageModel
	gateway   *gateway.Client
	snapshot  *gateway.ToolSnapshot
	maxRounds int
	maxTokens int
}

type ChatControllerDependencies struct {
	Model         provider.LanguageModel
	GatewayClient *gateway.Client
	Snapshot      *gateway.ToolSnapshot
	MaxToolRounds int
	MaxTokens     int
}

func NewChatController(deps ChatControllerDependencies) *ChatController {
	return &ChatController{
		model:     deps.Model,
		gateway:   deps.GatewayClient,
		snapshot:  deps.Snapshot,
		maxRounds: deps.MaxToolRounds,
		maxTokens: deps.MaxTokens,
	}
}

// ChatRequest is the body of POST /api/chat. Message is typed as any so
// a non-string value can be told apart from a missing one.
type ChatRequest struct {
	Message             any             `json:"message"`
	ConversationHistory []types.Message `json:"conversationHistory"`
}

// Chat handles one conversational turn, running the tool loop until the
// model answers in plain text.
func (c *ChatController) Chat(ctx fiber.Ctx) error {
	var req ChatRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	message, ok := req.Message.(string)
	if !ok || message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Message is required and must be a string")
	}

	conversationID := uuid.NewString()

	tools := c.availableTools(ctx)

	a, err := agent.New(
		agent.WithModel(c.model),
		agent.WithExecutor(c.gateway),
		agent.WithTools(tools...),
		agent.WithSystemPrompt(systemPrompt),
		agent.WithMaxIterations(c.maxRounds),
		agent.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return err
	}

	history := append([]types.Message{}, req.ConversationHistory...)
	history = append(history, types.Message{Role: types.RoleUser, Content: message})

	result, err := a.Run(ctx.RequestCtx(), history)
	if err != nil {
		return mapModelError(err)
	}

	log.Info().
		Str("conversation_id", conversationID).
		Str("request_id", middlewares.GetRequestID(ctx)).
		Int("tool_rounds", result.Iterations-1).
		Int("input_tokens", result.TotalUsage.InputTokens).
		Int("output_tokens", result.TotalUsage.OutputTokens).
		Msg("chat turn completed")

	return ctx.JSON(fiber.Map{
		"response":            result.Reply,
		"conversationHistory": result.Messages,
		"usage":               result.TotalUsage,
	})
}

// ListTools returns the current catalog snapshot, fetching it once when
// still empty.
func (c *ChatController) ListTools(ctx fiber.Ctx) error {
	tools, err := c.snapshot.Get(ctx.RequestCtx())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(fiber.Map{
		"tools": tools,
		"count": len(tools),
	})
}

// RefreshTools refetches the catalog and replaces the snapshot.
func (c *ChatController) RefreshTools(ctx fiber.Ctx) error {
	tools, err := c.snapshot.Refresh(ctx.RequestCtx())
	if err != nil {
		log.Warn().Err(err).Msg("tool catalog refresh failed")
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	log.Info().Int("count", len(tools)).Msg("tool catalog refreshed")

	return ctx.JSON(fiber.Map{
		"tools": tools,
		"count": len(tools),
	})
}

// availableTools maps the catalog snapshot to model tool definitions. A
// failed fetch is logged and the chat proceeds without tools.
func (c *ChatController) availableTools(ctx fiber.Ctx) []types.Tool {
	descriptors, err := c.snapshot.Get(ctx.RequestCtx())
	if err != nil {
		log.Warn().Err(err).Msg("tool catalog unavailable, chatting without tools")
		return nil
	}

	tools := make([]types.Tool, len(descriptors))
	for i, d := range descriptors {
		tools[i] = types.Tool{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.InputSchema,
		}
	}
	return tools
}

// mapModelError translates Anthropic API failures into the status codes
// the chat client distinguishes.
func mapModelError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case fiber.StatusUnauthorized:
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid API key")
		case fiber.StatusTooManyRequests:
			return fiber.NewError(fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		}
	}
	return err
}
