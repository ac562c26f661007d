// Package gateway provides the HTTP client the bridge uses to talk to
// the gateway service: listing the tool catalog and invoking tools.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Tool is a tool descriptor as published by the gateway's catalog
// endpoint. InputSchema is carried untouched so the bridge can forward
// it to the model verbatim.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Client provides a high-level interface for the gateway service API.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new gateway client with the given options.
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// ListTools fetches the gateway's tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/tools", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.Tools, nil
}

// CallTool invokes a gateway tool and returns the response body as a
// string, ready to be used as tool-result content.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/"+name, map[string]any{
		"arguments": args,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call tool %s: %w", name, err)
	}

	body, err := c.readResponse(resp)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// doRequest performs an HTTP request against the gateway service.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	return c.httpClient.Do(req)
}

// readResponse reads the response body and converts error statuses into
// typed errors carrying the gateway's message.
func (c *Client) readResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResponse struct {
			Error string `json:"error"`
		}

		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if json.Unmarshal(body, &errorResponse) == nil && errorResponse.Error != "" {
			message = errorResponse.Error
		}

		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    message,
			Body:       string(body),
		}
	}

	return body, nil
}

// handleResponse reads the response and unmarshals the body if successful.
func (c *Client) handleResponse(resp *http.Response, result any) error {
	body, err := c.readResponse(resp)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// Error represents an error response from the gateway service.
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Body       string `json:"body,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s (status: %d)", e.Message, e.StatusCode)
}
