// Package base provides the shared HTTP client used by every chemistry data backend.
//
// Each request is a single attempt. Timeouts and error classification are the
// caller's concern (see the guard package); the client only reports what the
// server said.
package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/metrics"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when no other agent is configured
	DefaultUserAgent = "chemdata-mcp-server/1.0"

	// MaxResponseSize caps how much of a response body is read
	MaxResponseSize = 32 << 20

	// maxErrorBody is how much of an error body is kept in HTTPStatusError
	maxErrorBody = 200
)

// Client provides common HTTP plumbing: base URL resolution, default headers,
// status checking and API metrics.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Service    string
	BaseURL    string
	UserAgent  string
	Headers    http.Header
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithBaseURL sets the URL that relative request paths are resolved against
func WithBaseURL(u string) ClientOption {
	return func(client *Client) {
		client.BaseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		client.UserAgent = ua
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) ClientOption {
	return func(client *Client) {
		client.Headers.Set(key, value)
	}
}

// WithTimeout sets the transport-level timeout of the default HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		if d > 0 {
			client.HTTPClient.Timeout = d
		}
	}
}

// NewClient creates a new base client for service with default settings
func NewClient(service string, opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
		Service:    service,
		UserAgent:  DefaultUserAgent,
		Headers:    http.Header{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RequestConfig configures a single HTTP request
type RequestConfig struct {
	Method      string // defaults to GET
	URL         string // absolute, or a path relative to BaseURL
	Params      url.Values
	Body        []byte
	ContentType string
	Accept      string // defaults to application/json
	Action      string // metrics label; defaults to "METHOD path"
}

// Resolve turns a path into an absolute URL under BaseURL. Absolute URLs
// are returned unchanged.
func (c *Client) Resolve(path string, params url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.BaseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + params.Encode()
	}
	return u
}

// DoRequest performs exactly one HTTP request. It returns the body and status
// on 2xx, and an *errors.HTTPStatusError for any other status.
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.Resolve(cfg.URL, cfg.Params)
	action := cfg.Action
	if action == "" {
		action = method + " " + actionPath(target)
	}

	var body io.Reader
	if cfg.Body != nil {
		body = bytes.NewReader(cfg.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range c.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	accept := cfg.Accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if cfg.ContentType != "" {
		req.Header.Set("Content-Type", cfg.ContentType)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(c.Service, action, time.Since(start).Seconds(), false, "network")
		c.Logger.Debug("API request failed",
			"service", c.Service,
			"url", target,
			"error", err)
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	data, err := readAndClose(resp)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordAPICall(c.Service, action, elapsed, false, "read")
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordAPICall(c.Service, action, elapsed, false, strconv.Itoa(resp.StatusCode))
		return nil, resp.StatusCode, &apierrors.HTTPStatusError{
			Service:    c.Service,
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	metrics.RecordAPICall(c.Service, action, elapsed, true, "")
	return data, resp.StatusCode, nil
}

// GetJSON issues a GET for path with query params and returns the raw JSON body.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values) ([]byte, error) {
	body, _, err := c.DoRequest(ctx, RequestConfig{URL: path, Params: params})
	return body, err
}

// PostJSON marshals payload and POSTs it to path.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	body, _, err := c.DoRequest(ctx, RequestConfig{
		Method:      http.MethodPost,
		URL:         path,
		Body:        data,
		ContentType: "application/json",
	})
	return body, err
}

// GetBytes issues a GET that accepts any content type and returns the raw body.
func (c *Client) GetBytes(ctx context.Context, path string, params url.Values) ([]byte, error) {
	body, _, err := c.DoRequest(ctx, RequestConfig{URL: path, Params: params, Accept: "*/*"})
	return body, err
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", MaxResponseSize)
	}
	return body, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// actionPath reduces a URL to its path for metric labels, dropping the query.
// Path segments after the second are collapsed so identifiers do not explode
// label cardinality.
func actionPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "unknown"
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 2 {
		parts = append(parts[:2], "*")
	}
	return "/" + strings.Join(parts, "/")
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
