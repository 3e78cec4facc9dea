// Package surechembl provides a client and MCP tools for SureChEMBL patent
// chemistry: patent search, document contents, chemicals and annotation
// statistics.
package surechembl

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/chemdata-mcp-server/internal/base"
	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
)

const (
	// Service is the backend name used in logs, metrics and errors
	Service = "surechembl"

	BaseURL = "https://www.surechembl.org/api"

	// DefaultOffices is the patent office filter applied to searches
	DefaultOffices = "US OR EP OR WO OR JP OR CN"

	// MaxItemsPerPage caps the search page size
	MaxItemsPerPage = 1000
)

// Query is a patent content search.
type Query struct {
	Text    string
	Offices string
	Limit   int
	Offset  int
}

// FullQuery appends the patent office clause to the search text.
func (q Query) FullQuery() string {
	offices := q.Offices
	if offices == "" {
		offices = DefaultOffices
	}
	return q.Text + " AND ((pnctry:(" + offices + ")))"
}

// Page is the 1-based page the offset falls on.
func (q Query) Page() int {
	if q.Limit <= 0 {
		return 1
	}
	return q.Offset/q.Limit + 1
}

// ItemsPerPage is the limit capped at MaxItemsPerPage.
func (q Query) ItemsPerPage() int {
	return min(q.Limit, MaxItemsPerPage)
}

// Client provides access to the SureChEMBL API
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

// WithBaseURL overrides the API base URL
func WithBaseURL(u string) ClientOption {
	return base.WithBaseURL(u)
}

// NewClient creates a new SureChEMBL client. Every remote call runs under g.
func NewClient(g *guard.Guard, opts ...ClientOption) *Client {
	opts = append([]ClientOption{base.WithBaseURL(BaseURL)}, opts...)
	return &Client{
		Client: base.NewClient(Service, opts...),
		guard:  g,
	}
}

// Name implements backend.Backend.
func (c *Client) Name() string {
	return Service
}

// Search runs a patent content search.
func (c *Client) Search(ctx context.Context, q Query) ([]byte, error) {
	params := url.Values{}
	params.Set("query", q.FullQuery())
	params.Set("page", strconv.Itoa(q.Page()))
	params.Set("itemsPerPage", strconv.Itoa(q.ItemsPerPage()))
	return c.GetJSON(ctx, "search/content", params)
}

// GetByID fetches a patent document with its annotated contents.
func (c *Client) GetByID(ctx context.Context, documentID string) ([]byte, error) {
	return c.GetJSON(ctx, "document/"+url.PathEscape(documentID)+"/contents", nil)
}

// Family fetches the family members of a patent.
func (c *Client) Family(ctx context.Context, patentID string) ([]byte, error) {
	return c.GetJSON(ctx, "document/"+url.PathEscape(patentID)+"/family/members", nil)
}

// ChemicalByName searches chemicals by name or synonym.
func (c *Client) ChemicalByName(ctx context.Context, name string) ([]byte, error) {
	return c.GetJSON(ctx, "chemical/name/"+url.PathEscape(name), nil)
}

// ChemicalByID fetches a chemical by its SureChEMBL ID.
func (c *Client) ChemicalByID(ctx context.Context, chemicalID string) ([]byte, error) {
	return c.GetJSON(ctx, "chemical/id/"+url.PathEscape(chemicalID), nil)
}

// Image renders a structure as PNG.
func (c *Client) Image(ctx context.Context, structure string, height, width int) ([]byte, error) {
	params := url.Values{}
	params.Set("structure", structure)
	params.Set("height", strconv.Itoa(height))
	params.Set("width", strconv.Itoa(width))
	return c.GetBytes(ctx, "service/chemical/image", params)
}

// Export downloads chemical data for up to 100 IDs.
func (c *Client) Export(ctx context.Context, chemicalIDs []string, outputType, kind string) ([]byte, error) {
	params := url.Values{}
	params.Set("chemIDs", strings.Join(chemicalIDs, ","))
	params.Set("output_type", outputType)
	params.Set("kind", kind)
	return c.GetBytes(ctx, "export/chemistry", params)
}
