// Package chembl provides a client and MCP tools for the ChEMBL web services:
// molecules, targets, bioactivities, assays and documents.
package chembl

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
	"github.com/olgasafonova/chemdata-mcp-server/internal/query"
)

const (
	// Service is the backend name used in logs, metrics and errors
	Service = "chembl"

	BaseURL = "https://www.ebi.ac.uk/chembl/api/data"

	// DefaultLimit is the page size sent with every list request
	DefaultLimit = 20
	// MaxLimit is the largest page ChEMBL serves
	MaxLimit = 1000

	// DefaultShortTimeout applies to the InChIKey lookup and assay search
	DefaultShortTimeout = 20 * time.Second
)

// Resources
const (
	ResourceMolecule       = "molecule"
	ResourceTarget         = "target"
	ResourceActivity       = "activity"
	ResourceAssay          = "assay"
	ResourceDrugIndication = "drug_indication"
	ResourceDocument       = "document"
	ResourceSimilarity     = "similarity"
	ResourceSubstructure   = "substructure"
)

// collections maps a resource to the key its list responses use.
var collections = map[string]string{
	ResourceMolecule:       "molecules",
	ResourceTarget:         "targets",
	ResourceActivity:       "activities",
	ResourceAssay:          "assays",
	ResourceDrugIndication: "drug_indications",
	ResourceDocument:       "documents",
	ResourceSimilarity:     "molecules",
	ResourceSubstructure:   "molecules",
}

// Query is a list request against one resource. Path holds extra URL
// segments for resources addressed by path (similarity, substructure).
// Extra carries parameters that are not attribute filters, such as
// order_by or __isnull lookups.
type Query struct {
	Resource string
	Path     []string
	Filters  []query.Filter
	Extra    url.Values
	Limit    int
}

// Collection returns the response key holding the list items.
func (q Query) Collection() string {
	if c, ok := collections[q.Resource]; ok {
		return c
	}
	return q.Resource + "s"
}

// Values renders filters, extras and the page size as query parameters.
func (q Query) Values() url.Values {
	v := query.Values(q.Filters)
	for k, vs := range q.Extra {
		for _, s := range vs {
			v.Add(k, s)
		}
	}
	v.Set("limit", strconv.Itoa(ClampLimit(q.Limit)))
	return v
}

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Client provides access to the ChEMBL REST API
type Client struct {
	*base.Client

	guard *guard.Guard

	// Timeout bounds ordinary calls; zero means the guard default.
	Timeout time.Duration
	// ShortTimeout bounds the InChIKey lookup and assay search.
	ShortTimeout time.Duration
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

// WithBaseURL overrides the ChEMBL API base URL
func WithBaseURL(u string) ClientOption {
	return base.WithBaseURL(u)
}

// NewClient creates a new ChEMBL client. Every remote call runs under g.
func NewClient(g *guard.Guard, opts ...ClientOption) *Client {
	opts = append([]ClientOption{base.WithBaseURL(BaseURL)}, opts...)
	return &Client{
		Client:       base.NewClient(Service, opts...),
		guard:        g,
		ShortTimeout: DefaultShortTimeout,
	}
}

// Name implements backend.Backend.
func (c *Client) Name() string {
	return Service
}

// Search lists a resource.
func (c *Client) Search(ctx context.Context, q Query) ([]byte, error) {
	segments := make([]string, 0, len(q.Path)+1)
	segments = append(segments, q.Resource)
	for _, s := range q.Path {
		segments = append(segments, url.PathEscape(s))
	}
	return c.GetJSON(ctx, strings.Join(segments, "/")+".json", q.Values())
}

// GetByID fetches a single molecule.
func (c *Client) GetByID(ctx context.Context, chemblID string) ([]byte, error) {
	return c.GetJSON(ctx, ResourceMolecule+"/"+url.PathEscape(strings.ToUpper(chemblID))+".json", nil)
}

// Status fetches the web services status document.
func (c *Client) Status(ctx context.Context) ([]byte, error) {
	return c.GetJSON(ctx, "status.json", nil)
}
