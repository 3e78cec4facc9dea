// Package pdb provides a client and MCP tools for the RCSB Protein Data Bank:
// structured search, entry data, coordinate files and ligand information.
package pdb

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olgasafonova/chemdata-mcp-server/internal/base"
	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
	"github.com/olgasafonova/chemdata-mcp-server/internal/query"
)

const (
	// Service is the backend name used in logs, metrics and errors
	Service = "pdb"

	DataURL   = "https://data.rcsb.org/rest/v1"
	SearchURL = "https://search.rcsb.org/rcsbsearch/v2"
	FilesURL  = "https://files.rcsb.org/download"

	// DefaultSequenceTimeout applies to sequence similarity searches
	DefaultSequenceTimeout = 60 * time.Second
)

// Client provides access to the RCSB data, search and file services
type Client struct {
	*base.Client

	guard     *guard.Guard
	searchURL string
	filesURL  string

	// Timeout bounds ordinary calls; zero means the guard default.
	Timeout time.Duration
	// SequenceTimeout bounds sequence similarity searches.
	SequenceTimeout time.Duration
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

// WithDataURL overrides the data API base URL
func WithDataURL(u string) ClientOption {
	return base.WithBaseURL(u)
}

// NewClient creates a new RCSB client. Every remote call runs under g.
func NewClient(g *guard.Guard, opts ...ClientOption) *Client {
	opts = append([]ClientOption{base.WithBaseURL(DataURL)}, opts...)
	return &Client{
		Client:          base.NewClient(Service, opts...),
		guard:           g,
		searchURL:       SearchURL,
		filesURL:        FilesURL,
		SequenceTimeout: DefaultSequenceTimeout,
	}
}

// SetSearchURL overrides the search API base URL.
func (c *Client) SetSearchURL(u string) {
	c.searchURL = strings.TrimRight(u, "/")
}

// SetFilesURL overrides the file download base URL.
func (c *Client) SetFilesURL(u string) {
	c.filesURL = strings.TrimRight(u, "/")
}

// Name implements backend.Backend.
func (c *Client) Name() string {
	return Service
}

// Search posts a structured query to the search service.
func (c *Client) Search(ctx context.Context, req query.SearchRequest) ([]byte, error) {
	return c.PostJSON(ctx, c.searchURL+"/query", req)
}

// GetByID fetches the core entry document for a PDB ID.
func (c *Client) GetByID(ctx context.Context, pdbID string) ([]byte, error) {
	return c.GetJSON(ctx, "core/entry/"+urlID(pdbID), nil)
}

// NonpolymerEntity fetches one non-polymer entity of an entry.
func (c *Client) NonpolymerEntity(ctx context.Context, pdbID, entityID string) ([]byte, error) {
	return c.GetJSON(ctx, "core/nonpolymer_entity/"+urlID(pdbID)+"/"+entityID, nil)
}

// ValidationSummary fetches the validation residual summary of an entry.
func (c *Client) ValidationSummary(ctx context.Context, pdbID string) ([]byte, error) {
	return c.GetJSON(ctx, "validation/residual_summary/"+urlID(pdbID), nil)
}

// File downloads a coordinate or metadata file from the files host.
func (c *Client) File(ctx context.Context, filename string) ([]byte, error) {
	return c.GetBytes(ctx, c.filesURL+"/"+filename, nil)
}

// urlID lowercases an ID for use in URLs.
func urlID(pdbID string) string {
	return strings.ToLower(strings.TrimSpace(pdbID))
}
