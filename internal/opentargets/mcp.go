package opentargets

import (
	"context"
	"fmt"
	"strings"

	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/params"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
)

// Entity names accepted by the search endpoint
const (
	EntityTarget  = "target"
	EntityDisease = "disease"
	EntityDrug    = "drug"
)

const (
	keyMaxResults = "max_results"
	keyTargetID   = "target_id"
	keyDiseaseID  = "disease_id"

	defaultMaxResults = 10
)

// Aliases maps camelCase argument names to their canonical keys.
var Aliases = params.AliasMap{
	"maxResults": keyMaxResults,
	"targetId":   keyTargetID,
	"diseaseId":  keyDiseaseID,
}

var hitFields = map[string]normalize.FieldSpec{
	EntityTarget:  TargetHitFields,
	EntityDisease: DiseaseHitFields,
	EntityDrug:    DrugHitFields,
}

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchTargetsMCP searches gene targets.
func (c *Client) SearchTargetsMCP(ctx context.Context, args SearchArgs) (SearchResult, error) {
	return c.search(ctx, EntityTarget, args)
}

// SearchDiseasesMCP searches diseases and phenotypes.
func (c *Client) SearchDiseasesMCP(ctx context.Context, args SearchArgs) (SearchResult, error) {
	return c.search(ctx, EntityDisease, args)
}

// SearchDrugsMCP searches drugs.
func (c *Client) SearchDrugsMCP(ctx context.Context, args SearchArgs) (SearchResult, error) {
	return c.search(ctx, EntityDrug, args)
}

func (c *Client) search(ctx context.Context, entity string, args SearchArgs) (SearchResult, error) {
	p := params.Reconcile(
		map[string]any{keyMaxResults: args.MaxResults},
		Aliases,
		params.Collect(params.Param{Key: "maxResults", Value: args.MaxResultsAlias}),
	)
	args.MaxResults = params.Int(p, keyMaxResults, 0)
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}
	size := sizeOr(args.MaxResults)
	q := strings.TrimSpace(args.Query)

	out := backend.Search(ctx, c.guard, c, Request{
		Query: searchQuery,
		Variables: map[string]any{
			"queryString": q,
			"entityNames": []string{entity},
			"size":        size,
			"index":       0,
		},
	}, c.Timeout)
	if err := out.Err(); err != nil {
		return SearchResult{}, err
	}

	hits := normalize.List(out.Payload, "search.hits", hitFields[entity])
	result := SearchResult{
		Query:  q,
		Entity: entity,
		Total:  normalize.Int(out.Payload, "search.total", len(hits)),
		Count:  len(hits),
		Hits:   hits,
	}
	if len(hits) == 0 {
		result.Message = fmt.Sprintf("No %ss found for your query", entity)
	}
	return result, nil
}

// GetTargetDetailsMCP fetches one target by Ensembl gene ID.
func (c *Client) GetTargetDetailsMCP(ctx context.Context, args TargetDetailsArgs) (TargetDetailsResult, error) {
	p := params.Reconcile(
		map[string]any{keyTargetID: args.TargetID},
		Aliases,
		params.Collect(params.Param{Key: "targetId", Value: args.TargetIDAlias}),
	)
	id, err := targetID(p)
	if err != nil {
		return TargetDetailsResult{}, err
	}

	out := backend.Fetch(ctx, c.guard, c, id, c.Timeout)
	if err := out.Err(); err != nil {
		return TargetDetailsResult{}, err
	}
	target := normalize.Lookup(out.Payload, "target", nil)
	if target == nil {
		return TargetDetailsResult{}, apierrors.NewNotFoundError(Service, "target", id)
	}
	return TargetDetailsResult{Target: normalize.NormalizeValue(target, TargetFields)}, nil
}

// GetTargetAssociatedDiseasesMCP lists diseases associated with a target.
func (c *Client) GetTargetAssociatedDiseasesMCP(ctx context.Context, args TargetDiseasesArgs) (AssociationsResult, error) {
	p := params.Reconcile(
		map[string]any{keyTargetID: args.TargetID, keyMaxResults: args.MaxResults},
		Aliases,
		params.Collect(
			params.Param{Key: "targetId", Value: args.TargetIDAlias},
			params.Param{Key: "maxResults", Value: args.MaxResultsAlias},
		),
	)
	id, err := targetID(p)
	if err != nil {
		return AssociationsResult{}, err
	}
	args.MaxResults = params.Int(p, keyMaxResults, 0)
	if err := validate.Struct(args); err != nil {
		return AssociationsResult{}, err
	}

	return c.associations(ctx, "target", id, Request{
		Query:     targetDiseasesQuery,
		Variables: map[string]any{"ensemblId": id, "size": sizeOr(args.MaxResults), "index": 0},
	}, "target", "associatedDiseases", DiseaseAssociationFields)
}

// GetDiseaseAssociatedTargetsMCP lists targets associated with a disease.
func (c *Client) GetDiseaseAssociatedTargetsMCP(ctx context.Context, args DiseaseTargetsArgs) (AssociationsResult, error) {
	p := params.Reconcile(
		map[string]any{keyDiseaseID: args.DiseaseID, keyMaxResults: args.MaxResults},
		Aliases,
		params.Collect(
			params.Param{Key: "diseaseId", Value: args.DiseaseIDAlias},
			params.Param{Key: "maxResults", Value: args.MaxResultsAlias},
		),
	)
	id := strings.TrimSpace(params.String(p, keyDiseaseID))
	if id == "" {
		return AssociationsResult{}, apierrors.NewValidationError(keyDiseaseID, "", "is required")
	}
	args.MaxResults = params.Int(p, keyMaxResults, 0)
	if err := validate.Struct(args); err != nil {
		return AssociationsResult{}, err
	}

	return c.associations(ctx, "disease", id, Request{
		Query:     diseaseTargetsQuery,
		Variables: map[string]any{"efoId": id, "size": sizeOr(args.MaxResults), "index": 0},
	}, "disease", "associatedTargets", TargetAssociationFields)
}

// associations runs an association query. root is the top-level field of
// the data member and rows the association field beneath it.
func (c *Client) associations(ctx context.Context, entity, id string, req Request, root, rows string, spec normalize.FieldSpec) (AssociationsResult, error) {
	out := backend.Search(ctx, c.guard, c, req, c.Timeout)
	if err := out.Err(); err != nil {
		return AssociationsResult{}, err
	}
	if normalize.Lookup(out.Payload, root, nil) == nil {
		return AssociationsResult{}, apierrors.NewNotFoundError(Service, entity, id)
	}

	assocs := normalize.List(out.Payload, root+"."+rows+".rows", spec)
	name := normalize.Str(out.Payload, root+".approvedSymbol", "")
	if name == "" {
		name = normalize.Str(out.Payload, root+".name", "")
	}
	result := AssociationsResult{
		ID:           id,
		Name:         name,
		Total:        normalize.Int(out.Payload, root+"."+rows+".count", len(assocs)),
		Count:        len(assocs),
		Associations: assocs,
	}
	if len(assocs) == 0 {
		result.Message = fmt.Sprintf("No associations found for %s ID: %s", entity, id)
	}
	return result, nil
}

func targetID(p map[string]any) (string, error) {
	id := strings.TrimSpace(params.String(p, keyTargetID))
	if id == "" {
		return "", apierrors.NewValidationError(keyTargetID, "", "is required")
	}
	if err := validate.Var(keyTargetID, id, "ensembl"); err != nil {
		return "", err
	}
	return id, nil
}

func sizeOr(n int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	return n
}
