package gateway

import (
	"net/http"
	"time"
)

// ClientOption represents an option for configuring the gateway client
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the gateway client
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// DefaultConfig returns a sensible default configuration. The 15 second
// timeout bounds every tool invocation.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "http://localhost:3002",
		Timeout:   15 * time.Second,
		UserAgent: "mapassist-bridge/1.0.0",
	}
}

// WithBaseURL sets the base URL of the gateway service
func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithUserAgent sets a custom user agent
func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}
