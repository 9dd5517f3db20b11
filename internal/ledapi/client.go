// Package ledapi is an HTTP client for the downstream LedAPI service.
package ledapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/smazurov/ledintent/internal/logging"
	"github.com/smazurov/ledintent/internal/pattern"
	"github.com/smazurov/ledintent/internal/version"
)

const (
	// DefaultBaseURL is where LedAPI listens by default.
	DefaultBaseURL = "http://localhost:5000"
	// DefaultTimeout bounds each request when no timeout is configured.
	DefaultTimeout = 5 * time.Second

	maxResponseBytes = 1 << 20
)

// Client talks to LedAPI. Each call is a single request with no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on a copy of the current
// http.Client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a LedAPI client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.GetLogger("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured LedAPI address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type setLedStatusRequest struct {
	Pattern string `json:"pattern"`
}

// ApplyPattern posts p to /setLedStatus and returns the acknowledgment body.
func (c *Client) ApplyPattern(ctx context.Context, p pattern.Pattern) (json.RawMessage, error) {
	if _, err := pattern.Parse(p.String()); err != nil {
		return nil, err
	}

	data, err := json.Marshal(setLedStatusRequest{Pattern: p.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pattern request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/setLedStatus", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, OpApply)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Applied LED pattern", "pattern", p.String())
	return body, nil
}

// GetStatus fetches /status and returns the body unchanged.
func (c *Client) GetStatus(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req, OpStatus)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched LED status", "bytes", len(body))
	return body, nil
}

// Ping reports whether LedAPI answers /status within ctx.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetStatus(ctx)
	return err
}

// do sends req and returns the JSON body, or a *BackendError.
func (c *Client) do(req *http.Request, op string) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("LedAPI request failed", "op", op, "url", req.URL.String(), "error", err)
		return nil, &BackendError{Op: op, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &BackendError{Op: op, URL: req.URL.String(), StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("LedAPI returned error status", "op", op, "status", resp.StatusCode)
		return nil, &BackendError{
			Op:         op,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if !json.Valid(body) {
		return nil, &BackendError{
			Op:         op,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Err:        errInvalidJSON,
		}
	}

	return json.RawMessage(body), nil
}
