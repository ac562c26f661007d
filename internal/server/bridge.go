package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mapassist/mapassist/internal/controllers"
	"github.com/mapassist/mapassist/internal/middlewares"
	"github.com/mapassist/mapassist/internal/web"
)

type BridgeDependencies struct {
	ChatController *controllers.ChatController
	CORSOrigin     string
}

// NewBridgeServer builds the bridge fiber app: the chat endpoint, the
// catalog snapshot endpoints, and the embedded chat page.
func NewBridgeServer(deps BridgeDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "mapassist-bridge",
		ErrorHandler: bridgeErrorHandler,
	})

	router.Use(recoverer.New())
	router.Use(middlewares.RequestID())
	router.Use(logger.New())
	router.Use(cors.New(corsConfig(deps.CORSOrigin)))

	router.Get("/", chatPageHandler)
	router.Get("/health", healthHandler("mapassist-bridge"))

	api := router.Group("/api")
	api.Post("/chat", deps.ChatController.Chat)
	api.Get("/tools", deps.ChatController.ListTools)
	api.Post("/tools/refresh", deps.ChatController.RefreshTools)

	router.Use(notFoundHandler)

	return router
}

// bridgeErrorHandler renders handler errors as the bridge's plain error
// envelope.
func bridgeErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

func chatPageHandler(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(web.ChatPage)
}
