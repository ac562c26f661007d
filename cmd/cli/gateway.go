package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mapassist/mapassist/internal/config"
	"github.com/mapassist/mapassist/internal/controllers"
	"github.com/mapassist/mapassist/internal/server"
	"github.com/mapassist/mapassist/internal/version"
	"github.com/mapassist/mapassist/pkg/mapbox"
)

func NewGatewayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Start the Mapbox gateway service",
		Long:  `Start the gateway service exposing Mapbox geocoding, directions, matrix and static map tools over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGateway()
		},
	}

	return cmd
}

func runGateway() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadGatewayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load gateway configuration")
	}

	mapboxClient := mapbox.NewClient(
		mapbox.WithAccessToken(cfg.MapboxAccessToken),
		mapbox.WithBaseURL(cfg.MapboxBaseURL),
		mapbox.WithRateLimit(cfg.MapboxRPS, int(cfg.MapboxRPS)),
	)

	gatewayController := controllers.NewGatewayController(controllers.GatewayControllerDependencies{
		MapboxClient: mapboxClient,
	})

	app := server.NewGatewayServer(server.GatewayDependencies{
		GatewayController: gatewayController,
		CORSOrigin:        cfg.CORSOrigin,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("version", version.GetVersion()).
		Msg("Starting gateway service")

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port), fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("Gateway service stopped")
	return nil
}
