// Package mapbox provides a client for the Mapbox REST APIs used by the
// gateway: geocoding, directions, the travel-time matrix, and static map
// image URLs.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Client provides a high-level interface for the Mapbox APIs
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Mapbox client with the given options
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		}
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// doRequest performs a rate-limited GET against the Mapbox API. The access
// token is appended to the query on every call.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", c.config.AccessToken)

	requestURL := c.config.BaseURL + path + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		if c.config.UserAgent != "" {
			req.Header.Set("User-Agent", c.config.UserAgent)
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			log.Error().
				Int("status_code", resp.StatusCode).
				Str("path", path).
				Msg("mapbox server error")

			resp.Body.Close()
			lastErr = &Error{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("server error: %d", resp.StatusCode),
			}
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.config.RetryAttempts, lastErr)
}

// handleResponse processes the HTTP response and unmarshals JSON if successful
func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResponse struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}

		if json.Unmarshal(body, &errorResponse) == nil && errorResponse.Message != "" {
			return &Error{
				StatusCode: resp.StatusCode,
				Message:    errorResponse.Message,
				Body:       string(body),
			}
		}

		if json.Unmarshal(body, &errorResponse) == nil && errorResponse.Error != "" {
			return &Error{
				StatusCode: resp.StatusCode,
				Message:    errorResponse.Error,
				Body:       string(body),
			}
		}

		return &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			Body:       string(body),
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// get performs a request and decodes the response in one step
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	resp, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, result)
}
