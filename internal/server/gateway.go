// Package server builds the fiber applications for the gateway and the
// bridge.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mapassist/mapassist/internal/controllers"
	"github.com/mapassist/mapassist/internal/middlewares"
	"github.com/mapassist/mapassist/internal/version"
	"github.com/mapassist/mapassist/pkg/mapbox"
)

type GatewayDependencies struct {
	GatewayController *controllers.GatewayController
	CORSOrigin        string
}

// NewGatewayServer builds the gateway fiber app: health and catalog
// endpoints plus one POST route per tool.
func NewGatewayServer(deps GatewayDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "mapassist-gateway",
		ErrorHandler: gatewayErrorHandler,
	})

	router.Use(recoverer.New())
	router.Use(middlewares.RequestID())
	router.Use(logger.New())
	router.Use(cors.New(corsConfig(deps.CORSOrigin)))

	router.Get("/health", healthHandler("mapassist-gateway"))
	router.Get("/tools", deps.GatewayController.ListTools)

	router.Post("/geocode_forward", deps.GatewayController.GeocodeForward)
	router.Post("/geocode_reverse", deps.GatewayController.GeocodeReverse)
	router.Post("/get_directions", deps.GatewayController.GetDirections)
	router.Post("/get_static_image", deps.GatewayController.GetStaticImage)
	router.Post("/get_route_map", deps.GatewayController.GetRouteMap)
	router.Post("/get_matrix", deps.GatewayController.GetMatrix)

	router.Use(notFoundHandler)

	return router
}

// gatewayErrorHandler renders every handler error as the gateway's
// failure envelope. Upstream Mapbox errors keep the provider's message.
func gatewayErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	var mapboxErr *mapbox.Error

	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.As(err, &mapboxErr):
		message = mapboxErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// healthHandler returns the shared health payload for the named service.
func healthHandler(service string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "ok",
			"service":   service,
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// notFoundHandler sits after every route on both services.
func notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Route not found",
	})
}

func corsConfig(origin string) cors.Config {
	if origin == "" {
		origin = "*"
	}
	return cors.Config{
		AllowOrigins: []string{origin},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
	}
}
