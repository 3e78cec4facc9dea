package pubchem

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
)

const defaultMaxResults = 5

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchByNameMCP searches compounds by name.
func (c *Client) SearchByNameMCP(ctx context.Context, args SearchByNameArgs) (SearchResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}
	return c.search(ctx, Lookup{Namespace: NamespaceName, Identifier: strings.TrimSpace(args.Name), Max: maxOr(args.MaxResults)})
}

// SearchBySMILESMCP searches compounds by SMILES.
func (c *Client) SearchBySMILESMCP(ctx context.Context, args SearchBySMILESArgs) (SearchResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}
	return c.search(ctx, Lookup{Namespace: NamespaceSMILES, Identifier: strings.TrimSpace(args.SMILES), Max: maxOr(args.MaxResults)})
}

// GetByCIDMCP fetches a compound's properties and synonyms concurrently.
func (c *Client) GetByCIDMCP(ctx context.Context, args GetByCIDArgs) (CompoundResult, error) {
	if err := validate.Struct(args); err != nil {
		return CompoundResult{}, err
	}
	return c.compound(ctx, args.CID)
}

// AdvancedSearchMCP picks the first populated criterion in the order
// cid, smiles, name, formula.
func (c *Client) AdvancedSearchMCP(ctx context.Context, args AdvancedSearchArgs) (SearchResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}
	limit := maxOr(args.MaxResults)
	switch {
	case args.CID > 0:
		res, err := c.compound(ctx, args.CID)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{
			Query:     strconv.Itoa(args.CID),
			Namespace: NamespaceCID,
			Count:     1,
			Compounds: []normalize.Record{res.Compound},
		}, nil
	case strings.TrimSpace(args.SMILES) != "":
		return c.search(ctx, Lookup{Namespace: NamespaceSMILES, Identifier: strings.TrimSpace(args.SMILES), Max: limit})
	case strings.TrimSpace(args.Name) != "":
		return c.search(ctx, Lookup{Namespace: NamespaceName, Identifier: strings.TrimSpace(args.Name), Max: limit})
	case strings.TrimSpace(args.Formula) != "":
		return c.search(ctx, Lookup{Namespace: NamespaceFormula, Identifier: strings.TrimSpace(args.Formula), Max: limit})
	}
	return SearchResult{}, apierrors.NewValidationError("", "",
		"at least one search parameter (name, smiles, formula, or cid) must be provided")
}

// search runs a lookup. PUG REST answers 404 when nothing matches, which is
// reported as an empty result.
func (c *Client) search(ctx context.Context, l Lookup) (SearchResult, error) {
	result := SearchResult{Query: l.Identifier, Namespace: l.Namespace, Compounds: []normalize.Record{}}

	out := backend.Search(ctx, c.guard, c, l, c.Timeout)
	if err := out.Err(); err != nil {
		if apierrors.StatusCode(err) == http.StatusNotFound {
			return result, nil
		}
		return SearchResult{}, err
	}

	compounds := normalize.List(out.Payload, "PropertyTable.Properties", CompoundFields)
	if l.Max > 0 && len(compounds) > l.Max {
		compounds = compounds[:l.Max]
	}
	result.Compounds = compounds
	result.Count = len(compounds)
	return result, nil
}

type compoundPayload struct {
	properties []byte
	synonyms   []byte
}

func (c *Client) compound(ctx context.Context, cid int) (CompoundResult, error) {
	id := strconv.Itoa(cid)

	out := backend.Call(ctx, c.guard, Service, "get_by_id", c.Timeout, func(ctx context.Context) (compoundPayload, error) {
		var p compoundPayload
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			body, err := c.GetByID(gctx, id)
			p.properties = body
			return err
		})
		g.Go(func() error {
			body, err := c.Synonyms(gctx, id)
			if err != nil {
				c.Logger.Debug("Synonyms unavailable", "cid", id, "error", err)
				return nil
			}
			p.synonyms = body
			return nil
		})
		return p, g.Wait()
	})
	if err := out.Err(); err != nil {
		if apierrors.StatusCode(err) == http.StatusNotFound {
			return CompoundResult{}, fmt.Errorf("%w: %w", apierrors.NewNotFoundError(Service, "compound", id), err)
		}
		return CompoundResult{}, err
	}

	items := normalize.Items(out.Payload.properties, "PropertyTable.Properties")
	if len(items) == 0 {
		return CompoundResult{}, apierrors.NewNotFoundError(Service, "compound", id)
	}
	return CompoundResult{
		Compound: normalize.Normalize(items[0], CompoundFields),
		Synonyms: normalize.Strings(out.Payload.synonyms, "InformationList.Information.0.Synonym"),
	}, nil
}

func maxOr(n int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	return n
}
