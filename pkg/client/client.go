package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the Research API video query endpoint.
const DefaultEndpoint = "https://open.tiktokapis.com/v2/research/video/query/"

// Doer executes an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Research API video query client.
// It holds only immutable configuration and is safe for concurrent use
// whenever its Doer is.
type Client struct {
	endpoint   string
	httpClient Doer
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithEndpoint overrides the query endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the transport used to send requests.
func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new Research API client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// postJSON sends body to the endpoint and returns the raw response body of a
// 200 reply. Any other status is returned as an *HTTPStatusError.
func (c *Client) postJSON(ctx context.Context, credential string, body []byte) ([]byte, error) {
	start := time.Now()

	req, err := c.newRequest(ctx, credential, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", http.MethodPost),
			slog.String("endpoint", c.endpoint),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		slog.Debug("HTTP request returned error",
			slog.String("method", http.MethodPost),
			slog.String("endpoint", c.endpoint),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: respBody}
	}

	slog.Debug("HTTP request completed",
		slog.String("method", http.MethodPost),
		slog.String("endpoint", c.endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(respBody)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return respBody, nil
}

// newRequest builds the POST envelope. The credential only ever lands in the
// Authorization header.
func (c *Client) newRequest(ctx context.Context, credential string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)
	return req, nil
}

// decodeResponse parses a 200 body into a QueryResponse. Numbers are kept as
// json.Number so 64-bit video IDs are not rounded through float64.
func decodeResponse(body []byte) (QueryResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out QueryResponse
	if err := dec.Decode(&out); err != nil {
		return nil, &ParseError{Body: body, Err: err}
	}
	if out == nil {
		return nil, &ParseError{Body: body, Err: errors.New("response is not a JSON object")}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Body: body, Err: errors.New("unexpected data after JSON value")}
	}
	return out, nil
}
