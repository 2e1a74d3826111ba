package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tracefield-site/internal/domain"
)

// DefaultEndpoint is the Web3Forms submission URL.
const DefaultEndpoint = "https://api.web3forms.com/submit"

// PlaceholderAccessKey is used when no access key is configured. The relay
// rejects it, which surfaces as a transmission failure.
const PlaceholderAccessKey = "YOUR_WEB3FORMS_ACCESS_KEY_HERE"

// maxErrorBody caps how much of a failed response is kept for logs.
const maxErrorBody = 512

// Client posts contact payloads to the hosted form relay.
type Client struct {
	endpoint   string
	accessKey  string
	httpClient *http.Client
}

// Config holds the relay connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	// Timeout of zero keeps the http.Client default (no timeout).
	Timeout time.Duration
}

// NewClient creates a relay client. A nil httpClient gets a fresh one.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	accessKey := cfg.AccessKey
	if accessKey == "" {
		accessKey = PlaceholderAccessKey
	}
	return &Client{
		endpoint:   endpoint,
		accessKey:  accessKey,
		httpClient: httpClient,
	}
}

// AccessKey is the credential stamped on every payload.
func (c *Client) AccessKey() string {
	return c.accessKey
}

// IsConfigured reports whether a real access key was supplied.
func (c *Client) IsConfigured() bool {
	return c.accessKey != PlaceholderAccessKey
}

// Response is what the relay answered to an accepted submission.
type Response struct {
	StatusCode int
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

// StatusError is returned when the relay answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay responded with status %d", e.StatusCode)
}

// NetworkError wraps a failure to reach the relay at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("relay unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Send posts payload exactly once. The access key is filled in when the
// payload does not carry one.
func (c *Client) Send(ctx context.Context, payload domain.RelayPayload) (*Response, error) {
	if payload.AccessKey == "" {
		payload.AccessKey = c.accessKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	out := &Response{StatusCode: resp.StatusCode}
	// The relay answers JSON, but the status code alone decides success.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(out)
	out.StatusCode = resp.StatusCode
	return out, nil
}
