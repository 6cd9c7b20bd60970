// internal/fallback/client.go

// Package fallback delegates unrecognized commands to a local generative text
// service speaking the Ollama generate API.
package fallback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const personaPreamble = "You are a mobile money assistant in Burkina Faso. " +
	"Answer in simple, friendly language."

// Typed failure results. The caller distinguishes an unreachable or failing
// service from a reachable service that produced no answer, and degrades each
// to its own apology reply instead of special-casing exceptions.
var (
	ErrUnavailable = errors.New("generative service unavailable")
	ErrNoAnswer    = errors.New("generative service returned no answer")
)

// Config holds fallback responder configuration.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls the generative text service with a bounded timeout so one
// unanswerable query cannot stall the whole request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a fallback responder client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		logger:     logger.With("component", "fallback"),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Respond sends the user text, prefixed with the fixed persona preamble, and
// returns the service's answer verbatim.
func (c *Client) Respond(ctx context.Context, text string) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf("%s\n\nQuestion: %s\n\nAnswer:", personaPreamble, text),
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("generative service returned non-success status", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	answer := strings.TrimSpace(decoded.Response)
	if answer == "" {
		return "", ErrNoAnswer
	}
	return answer, nil
}
