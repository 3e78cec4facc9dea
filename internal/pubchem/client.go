// Package pubchem provides a client and MCP tools for the PubChem PUG REST API.
package pubchem

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
	Service = "pubchem"

	BaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
)

// Namespaces accepted by Lookup
const (
	NamespaceCID     = "cid"
	NamespaceName    = "name"
	NamespaceSMILES  = "smiles"
	NamespaceFormula = "fastformula"
)

// properties is the property list requested for every compound.
var properties = strings.Join([]string{
	"IUPACName", "MolecularFormula", "MolecularWeight",
	"CanonicalSMILES", "IsomericSMILES", "InChI", "InChIKey",
	"XLogP", "ExactMass", "MonoisotopicMass", "TPSA", "Complexity", "Charge",
	"HBondDonorCount", "HBondAcceptorCount", "RotatableBondCount", "HeavyAtomCount",
	"AtomStereoCount", "DefinedAtomStereoCount", "UndefinedAtomStereoCount",
	"BondStereoCount", "DefinedBondStereoCount", "UndefinedBondStereoCount",
	"CovalentUnitCount",
}, ",")

// Lookup is a compound query: an identifier in a namespace, capped at Max records.
type Lookup struct {
	Namespace  string
	Identifier string
	Max        int
}

// Client provides access to PUG REST
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

// WithBaseURL overrides the PUG REST base URL
func WithBaseURL(u string) ClientOption {
	return base.WithBaseURL(u)
}

// NewClient creates a new PubChem client. Every remote call runs under g.
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

// Search returns the property table for every compound matching l.
// SMILES are sent as a query parameter since they may contain slashes.
func (c *Client) Search(ctx context.Context, l Lookup) ([]byte, error) {
	params := url.Values{}
	if l.Max > 0 {
		params.Set("MaxRecords", strconv.Itoa(l.Max))
	}
	var path string
	if l.Namespace == NamespaceSMILES {
		params.Set("smiles", l.Identifier)
		path = "compound/smiles/property/" + properties + "/JSON"
	} else {
		path = "compound/" + l.Namespace + "/" + url.PathEscape(l.Identifier) + "/property/" + properties + "/JSON"
	}
	return c.GetJSON(ctx, path, params)
}

// GetByID returns the property table for a single CID.
func (c *Client) GetByID(ctx context.Context, cid string) ([]byte, error) {
	return c.GetJSON(ctx, "compound/cid/"+url.PathEscape(cid)+"/property/"+properties+"/JSON", nil)
}

// Synonyms returns the synonym list for a CID.
func (c *Client) Synonyms(ctx context.Context, cid string) ([]byte, error) {
	return c.GetJSON(ctx, "compound/cid/"+url.PathEscape(cid)+"/synonyms/JSON", nil)
}
