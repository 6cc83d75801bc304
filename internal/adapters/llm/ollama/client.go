package ollama

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

	"github.com/randomtoy/cropreport-go/internal/domain"
	"github.com/randomtoy/cropreport-go/internal/ports"
)

const (
	// DefaultBaseURL is where a local Ollama server listens.
	DefaultBaseURL = "http://localhost:11434"
	generatePath   = "/api/generate"

	// DefaultMaxResponseBytes bounds how much of a response body is read.
	DefaultMaxResponseBytes = 8 << 20

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Client implements ports.Generator via the Ollama generate API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	format     string
	maxBytes   int64
	logger     *slog.Logger
}

// Option configures optional request fields.
type Option func(*Client)

// WithMaxResponseBytes overrides DefaultMaxResponseBytes. Non-positive values are ignored.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithFormat sets Ollama's "format" field, e.g. "json" for constrained output.
func WithFormat(format string) Option {
	return func(c *Client) { c.format = format }
}

func NewClient(httpClient *http.Client, baseURL, model string, logger *slog.Logger, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	u := strings.TrimRight(baseURL, "/")
	if u == "" {
		u = DefaultBaseURL
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    u,
		model:      model,
		maxBytes:   DefaultMaxResponseBytes,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

// generateResponse mirrors the non-streamed /api/generate envelope.
// Response is a pointer so an absent field can be told apart from an empty one.
type generateResponse struct {
	Model         string  `json:"model"`
	Response      *string `json:"response"`
	Done          bool    `json:"done"`
	EvalCount     int     `json:"eval_count"`
	TotalDuration int64   `json:"total_duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (ports.Generation, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: c.format,
	})
	if err != nil {
		return ports.Generation{}, domain.NewTransportError(0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return ports.Generation{}, domain.NewTransportError(0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "inference call failed", "model", c.model, "error", err)
		return ports.Generation{}, domain.NewTransportError(0, fmt.Errorf("http call: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return ports.Generation{}, domain.NewTransportError(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}
	truncated := int64(len(respBody)) > c.maxBytes
	if truncated {
		respBody = respBody[:c.maxBytes]
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "inference endpoint returned non-2xx", "model", c.model, "status", resp.StatusCode)
		return ports.Generation{}, domain.NewTransportError(resp.StatusCode, errors.New(errorMessage(resp.Status, respBody)))
	}

	if truncated {
		c.logger.WarnContext(ctx, "inference response too large", "model", c.model, "limit_bytes", c.maxBytes)
		return ports.Generation{}, domain.NewEnvelopeError(fmt.Errorf("envelope exceeds %d bytes", c.maxBytes))
	}

	var env generateResponse
	if err := json.Unmarshal(respBody, &env); err != nil {
		return ports.Generation{}, domain.NewEnvelopeError(fmt.Errorf("decode envelope: %w", err))
	}
	if env.Response == nil {
		return ports.Generation{}, domain.NewEnvelopeError(errors.New(`envelope has no string "response" field`))
	}

	return ports.Generation{
		Text:          *env.Response,
		Model:         env.Model,
		Done:          env.Done,
		EvalCount:     env.EvalCount,
		TotalDuration: time.Duration(env.TotalDuration),
	}, nil
}

// errorMessage prefers Ollama's {"error": "..."} body and falls back to the raw text.
func errorMessage(status string, body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return fmt.Sprintf("upstream %s: %s", status, er.Error)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	if text == "" {
		return "upstream " + status
	}
	return fmt.Sprintf("upstream %s: %s", status, text)
}
