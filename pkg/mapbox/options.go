package mapbox

import (
	"net/http"
	"time"
)

// ClientOption represents an option for configuring the Mapbox client
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the Mapbox client
type ClientConfig struct {
	BaseURL           string
	AccessToken       string
	Timeout           time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	UserAgent         string
	HTTPClient        *http.Client
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://api.mapbox.com",
		Timeout:           30 * time.Second,
		RetryAttempts:     1,
		RetryDelay:        1 * time.Second,
		UserAgent:         "mapassist-go/1.0.0",
		RequestsPerSecond: 10,
		Burst:             10,
	}
}

// WithAccessToken sets the Mapbox access token
func WithAccessToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.AccessToken = token
	}
}

// WithBaseURL sets the base URL for the Mapbox API
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

// WithRetry sets the retry configuration
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.RetryAttempts = attempts
		c.RetryDelay = delay
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

// WithRateLimit sets the outbound request rate limit
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *ClientConfig) {
		c.RequestsPerSecond = requestsPerSecond
		c.Burst = burst
	}
}
