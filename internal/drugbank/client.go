// Package drugbank provides a client and MCP tools for the DrugBank API.
// Every call needs an API key.
package drugbank

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/olgasafonova/chemdata-mcp-server/internal/base"
	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
)

const (
	// Service is the backend name used in logs, metrics and errors
	Service = "drugbank"

	BaseURL = "https://api.drugbank.com/v1"
)

// Query is a drug search. Text is passed through as the q parameter.
type Query struct {
	Text  string
	Limit int
}

// Client provides access to the DrugBank API
type Client struct {
	*base.Client

	guard  *guard.Guard
	hasKey bool

	// Timeout bounds each call; zero means the guard default.
	Timeout time.Duration
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithBaseURL overrides the API base URL
func WithBaseURL(u string) ClientOption {
	return base.WithBaseURL(u)
}

// NewClient creates a new DrugBank client. An empty apiKey leaves the client
// usable for registration, but every tool call fails before reaching the
// network.
func NewClient(g *guard.Guard, apiKey string, opts ...ClientOption) *Client {
	pre := []ClientOption{base.WithBaseURL(BaseURL)}
	if apiKey != "" {
		pre = append(pre, base.WithHeader("Authorization", "Bearer "+apiKey))
	}
	return &Client{
		Client: base.NewClient(Service, append(pre, opts...)...),
		guard:  g,
		hasKey: apiKey != "",
	}
}

// Name implements backend.Backend.
func (c *Client) Name() string {
	return Service
}

// Search lists drugs matching q.
func (c *Client) Search(ctx context.Context, q Query) ([]byte, error) {
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("limit", strconv.Itoa(q.Limit))
	return c.GetJSON(ctx, "drugs", params)
}

// GetByID fetches one drug.
func (c *Client) GetByID(ctx context.Context, drugID string) ([]byte, error) {
	return c.GetJSON(ctx, "drugs/"+url.PathEscape(drugID), nil)
}

// Interactions fetches the interactions of a drug.
func (c *Client) Interactions(ctx context.Context, drugID string) ([]byte, error) {
	return c.GetJSON(ctx, "drugs/"+url.PathEscape(drugID)+"/interactions", nil)
}
