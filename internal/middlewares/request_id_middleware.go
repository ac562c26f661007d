// Package middlewares holds the fiber middleware shared by both
// services.
package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/xid"
)

// RequestIDHeader is the header the request id is read from and echoed
// back on.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the locals key the request id is stored under.
const RequestIDKey = "request_id"

// RequestID assigns every request an id, keeping the caller's when one
// is supplied so ids can be traced across the bridge and the gateway.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = xid.New().String()
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		return c.Next()
	}
}

// GetRequestID returns the request id assigned by RequestID, or an empty
// string when the middleware did not run.
func GetRequestID(c fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
