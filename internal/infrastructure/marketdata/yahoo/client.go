package yahoo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmanzanog/quote-session/internal/application"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// ErrMultipleLines is returned by FetchLine when the response has more than one line.
var ErrMultipleLines = errors.New("expected a single line")

// Client implements the line transport over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the default timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithTimeout creates a client whose requests give up after timeout.
func NewClientWithTimeout(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
	}
}

// FetchLine returns the only line of the response, or "" for an empty body.
func (c *Client) FetchLine(ctx context.Context, url string) (string, error) {
	lines, err := c.FetchLines(ctx, url)
	if err != nil {
		return "", err
	}
	switch len(lines) {
	case 0:
		return "", nil
	case 1:
		return lines[0], nil
	default:
		return "", fmt.Errorf("%s returned %d lines: %w", url, len(lines), ErrMultipleLines)
	}
}

// FetchLines returns every line of the response in order.
func (c *Client) FetchLines(ctx context.Context, url string) ([]string, error) {
	body, err := c.OpenLineStream(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr, "url", url)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return lines, nil
}

// OpenLineStream issues the request and hands the body to the caller, who
// must close it.
func (c *Client) OpenLineStream(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr, "url", url)
		}
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp.Body, nil
}

// Compile-time check that Client implements Transport.
var _ application.Transport = (*Client)(nil)
