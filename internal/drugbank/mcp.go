package drugbank

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
)

const defaultMaxResults = 10

// ErrNoAPIKey is returned by every tool when the client has no API key.
var ErrNoAPIKey = apierrors.NewValidationError("api_key", "", "DrugBank API key not configured")

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchDrugsMCP searches drugs by name.
func (c *Client) SearchDrugsMCP(ctx context.Context, args SearchDrugsArgs) (DrugsResult, error) {
	if err := c.check(args); err != nil {
		return DrugsResult{}, err
	}
	q := strings.TrimSpace(args.Query)
	return c.search(ctx, q, Query{Text: q, Limit: maxOr(args.MaxResults)}, "No drugs found for your query")
}

// FindByIndicationMCP searches drugs used for a condition.
func (c *Client) FindByIndicationMCP(ctx context.Context, args IndicationArgs) (DrugsResult, error) {
	if err := c.check(args); err != nil {
		return DrugsResult{}, err
	}
	ind := strings.TrimSpace(args.Indication)
	return c.search(ctx, ind, Query{Text: "indication:" + ind, Limit: maxOr(args.MaxResults)},
		"No drugs found for indication: "+ind)
}

// FindByCategoryMCP searches drugs in a category.
func (c *Client) FindByCategoryMCP(ctx context.Context, args CategoryArgs) (DrugsResult, error) {
	if err := c.check(args); err != nil {
		return DrugsResult{}, err
	}
	cat := strings.TrimSpace(args.Category)
	return c.search(ctx, cat, Query{Text: "category:" + cat, Limit: maxOr(args.MaxResults)},
		"No drugs found for category: "+cat)
}

func (c *Client) search(ctx context.Context, label string, q Query, empty string) (DrugsResult, error) {
	out := backend.Search(ctx, c.guard, c, q, c.Timeout)
	if err := out.Err(); err != nil {
		return DrugsResult{}, err
	}
	drugs := normalize.List(out.Payload, "data", DrugBasicFields)
	result := DrugsResult{Query: label, Count: len(drugs), Drugs: drugs}
	if len(drugs) == 0 {
		result.Message = empty
	}
	return result, nil
}

// GetDrugDetailsMCP fetches a drug by DrugBank ID.
func (c *Client) GetDrugDetailsMCP(ctx context.Context, args DrugDetailsArgs) (DrugDetailsResult, error) {
	if err := c.check(args); err != nil {
		return DrugDetailsResult{}, err
	}
	id := strings.ToUpper(args.DrugID)

	out := backend.Fetch(ctx, c.guard, c, id, c.Timeout)
	if err := out.Err(); err != nil {
		return DrugDetailsResult{}, notFound(err, id)
	}
	data, ok := normalize.Lookup(out.Payload, "data", nil).(map[string]any)
	if !ok || len(data) == 0 {
		return DrugDetailsResult{}, apierrors.NewNotFoundError(Service, "drug", id)
	}

	drug := normalize.NormalizeValue(data, DrugDetailedFields)
	drug.Set("drug_id", id)
	return DrugDetailsResult{Drug: drug}, nil
}

// GetInteractionsMCP lists the interactions of a drug, truncated to
// max_results.
func (c *Client) GetInteractionsMCP(ctx context.Context, args InteractionsArgs) (InteractionsResult, error) {
	if err := c.check(args); err != nil {
		return InteractionsResult{}, err
	}
	id := strings.ToUpper(args.DrugID)

	out := backend.Call(ctx, c.guard, Service, "interactions", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.Interactions(ctx, id)
	})
	if err := out.Err(); err != nil {
		return InteractionsResult{}, notFound(err, id)
	}

	items := normalize.Items(out.Payload, "data")
	if limit := maxOr(args.MaxResults); len(items) > limit {
		items = items[:limit]
	}
	interactions := normalize.NormalizeList(items, InteractionFields)
	result := InteractionsResult{DrugID: id, Count: len(interactions), Interactions: interactions}
	if len(interactions) == 0 {
		result.Message = fmt.Sprintf("No interactions found for drug with ID: %s", id)
	}
	return result, nil
}

// check fails fast without an API key, then validates args.
func (c *Client) check(args any) error {
	if !c.hasKey {
		return ErrNoAPIKey
	}
	return validate.Struct(args)
}

func maxOr(n int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	return n
}

func notFound(err error, id string) error {
	if apierrors.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", apierrors.NewNotFoundError(Service, "drug", id), err)
	}
	return err
}
