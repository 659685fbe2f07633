// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the analysis backend API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning = &ClientError{Type: ErrTypeNotRunning, Message: "backend is not running"}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotRunning checks if an error indicates the backend is unreachable.
func IsNotRunning(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeNotRunning || ce.Type == ErrTypeConnection
	}
	return false
}

// IsTimeout checks if an error indicates a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeTimeout
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the analysis backend API.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := backend.NewClient()
//	report := client.CheckHealth(ctx)
//	if report.Status == backend.StatusConnected {
//	    answer, err := client.Chat(ctx, "What moved the market today?")
//	}
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// healthResponse is the optional JSON body of the health endpoint.
type healthResponse struct {
	Status string      `json:"status"`
	Models []modelName `json:"models"`
}

// CheckHealth probes the health endpoint and maps the outcome to a Status.
// Any 2xx response counts as connected; no response at all is disconnected;
// a non-2xx response is an error. The body is decoded opportunistically for
// the advertised model list but no schema is required.
func (c *Client) CheckHealth(ctx context.Context) HealthReport {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return HealthReport{Status: StatusError, Detail: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthReport{Status: StatusDisconnected, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return HealthReport{Status: StatusError, Detail: resp.Status}
	}

	report := HealthReport{Status: StatusConnected}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		report.Models = modelNames(body.Models)
	}
	return report
}

// =============================================================================
// CHAT
// =============================================================================

// chatResponse is the chat endpoint's JSON body. Older backend builds used
// "message" instead of "response", so both keys are decoded and the primary
// wins when present.
type chatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

// Chat sends a prompt to the chat endpoint and returns the answer text.
// When neither response key is present the empty string is returned without
// error; the caller decides how to render an empty answer.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := c.postForm(ctx, "/chat", url.Values{"prompt": {prompt}})
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to decode chat response",
			Cause:   err,
		}
	}
	if parsed.Response != "" {
		return parsed.Response, nil
	}
	return parsed.Message, nil
}

// =============================================================================
// ANALYZE
// =============================================================================

// analyzeResponse is the analyze endpoint's JSON body.
type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

// Analyze submits a question plus JSON-encoded OHLC records for analysis.
func (c *Client) Analyze(ctx context.Context, question, ohlcJSON string) (string, error) {
	form := url.Values{
		"question":  {question},
		"ohlc_json": {ohlcJSON},
	}
	body, err := c.postForm(ctx, "/analyze", form)
	if err != nil {
		return "", err
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to decode analyze response",
			Cause:   err,
		}
	}
	return parsed.Analysis, nil
}

// =============================================================================
// MODELS
// =============================================================================

// modelName is one entry of a models list. The backend passes through
// Ollama's tag objects ({"name": ...}) in HTTP mode and bare name strings
// in CLI mode, so both shapes are accepted.
type modelName string

func (m *modelName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = modelName(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = modelName(obj.Name)
	return nil
}

// modelNames flattens a decoded models list to plain strings.
func modelNames(in []modelName) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, m := range in {
		out[i] = string(m)
	}
	return out
}

// modelsResponse is the models endpoint's JSON body.
type modelsResponse struct {
	Models []modelName `json:"models"`
}

// ListModels returns the model names available behind the backend.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/models", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(resp)
	}

	var parsed modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to decode models response",
			Cause:   err,
		}
	}
	return modelNames(parsed.Models), nil
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// postForm sends a form-encoded POST and returns the raw response body.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serverError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}
	return body, nil
}

// classifyTransportError maps a transport failure to a typed client error.
func (c *Client) classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	// http.Client wraps its own timeout in a url.Error with Timeout() true
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	if strings.Contains(err.Error(), "connection refused") {
		return &ClientError{Type: ErrTypeNotRunning, Message: "backend is not running", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "failed to reach backend", Cause: err}
}

// errorBody is the backend's error response shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// serverError builds a typed error from a non-200 response, using the
// backend's detail field when the body is decodable.
func (c *Client) serverError(resp *http.Response) error {
	message := "backend returned " + resp.Status

	var parsed errorBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.Detail != "" {
		message = parsed.Detail
	}

	return &ClientError{Type: ErrTypeServer, Message: message}
}
