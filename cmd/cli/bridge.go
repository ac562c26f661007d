package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mapassist/mapassist/internal/config"
	"github.com/mapassist/mapassist/internal/controllers"
	"github.com/mapassist/mapassist/internal/server"
	"github.com/mapassist/mapassist/internal/version"
	"github.com/mapassist/mapassist/pkg/assistant/provider/anthropic"
	"github.com/mapassist/mapassist/pkg/clients/gateway"
)

// modelCallTimeout bounds a single Claude Messages API call.
const modelCallTimeout = 60 * time.Second

func NewBridgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Start the assistant bridge service",
		Long:  `Start the bridge service exposing a chat endpoint backed by Claude, with the gateway's map tools available to the model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBridge()
		},
	}

	return cmd
}

func runBridge() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadBridgeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load bridge configuration")
	}

	model := anthropic.NewWithConfig(anthropic.Config{
		APIKey:         cfg.AnthropicAPIKey,
		Model:          cfg.AnthropicModel,
		MaxTokens:      cfg.AnthropicMaxTokens,
		RequestTimeout: modelCallTimeout,
	})

	gatewayClient := gateway.NewClient(gateway.WithBaseURL(cfg.GatewayURL))
	snapshot := gateway.NewToolSnapshot(gatewayClient)

	// Warm the catalog snapshot; the chat path retries on its own when
	// this fails.
	if tools, err := snapshot.Refresh(ctx); err != nil {
		log.Warn().Err(err).Str("gateway_url", cfg.GatewayURL).Msg("Tool catalog fetch failed, starting without tools")
	} else {
		log.Info().Int("count", len(tools)).Msg("Tool catalog loaded")
	}

	chatController := controllers.NewChatController(controllers.ChatControllerDependencies{
		Model:         model,
		GatewayClient: gatewayClient,
		Snapshot:      snapshot,
		MaxToolRounds: cfg.MaxToolRounds,
		MaxTokens:     cfg.AnthropicMaxTokens,
	})

	app := server.NewBridgeServer(server.BridgeDependencies{
		ChatController: chatController,
		CORSOrigin:     cfg.CORSOrigin,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("model", cfg.AnthropicModel).
		Str("gateway_url", cfg.GatewayURL).
		Str("version", version.GetVersion()).
		Msg("Starting bridge service")

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port), fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("Bridge service stopped")
	return nil
}
