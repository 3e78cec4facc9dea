// Package opentargets provides a client and MCP tools for the Open Targets
// Platform GraphQL API: target, disease and drug search and associations.
package opentargets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/olgasafonova/chemdata-mcp-server/internal/base"
	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
)

const (
	// Service is the backend name used in logs, metrics and errors
	Service = "opentargets"

	GraphQLURL = "https://api.platform.opentargets.org/api/v4/graphql"
)

// Request is a GraphQL document with its variables.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLError reports the errors array of a response that otherwise
// succeeded at the HTTP level.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("GraphQL errors: %s", strings.Join(e.Messages, "; "))
}

// Client provides access to the Open Targets GraphQL endpoint
type Client struct {
	*base.Client

	guard *guard.Guard

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

// WithEndpoint overrides the GraphQL endpoint URL
func WithEndpoint(u string) ClientOption {
	return base.WithBaseURL(u)
}

// NewClient creates a new Open Targets client. Every remote call runs under g.
func NewClient(g *guard.Guard, opts ...ClientOption) *Client {
	opts = append([]ClientOption{base.WithBaseURL(GraphQLURL)}, opts...)
	return &Client{
		Client: base.NewClient(Service, opts...),
		guard:  g,
	}
}

// Name implements backend.Backend.
func (c *Client) Name() string {
	return Service
}

// Search posts a GraphQL request and returns the data member of the
// response. A non-empty errors array is returned as a *GraphQLError.
func (c *Client) Search(ctx context.Context, req Request) ([]byte, error) {
	body, err := c.PostJSON(ctx, c.BaseURL, req)
	if err != nil {
		return nil, err
	}
	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range errs.Array() {
			msg := e.Get("message").String()
			if msg == "" {
				msg = e.Raw
			}
			gqlErr.Messages = append(gqlErr.Messages, msg)
		}
		return nil, gqlErr
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return []byte("{}"), nil
	}
	return []byte(data.Raw), nil
}

// GetByID fetches target details for an Ensembl gene ID.
func (c *Client) GetByID(ctx context.Context, ensemblID string) ([]byte, error) {
	return c.Search(ctx, Request{
		Query:     targetDetailsQuery,
		Variables: map[string]any{"ensemblId": ensemblID},
	})
}
