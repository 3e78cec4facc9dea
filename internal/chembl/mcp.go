package chembl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/query"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
)

// Filter fields
const (
	FieldPrefName       = "pref_name"
	FieldSynonym        = "molecule_synonyms__molecule_synonym"
	FieldInChIKey       = "molecule_structures__standard_inchi_key"
	FieldMaxPhase       = "max_phase"
	FieldMWFreebase     = "molecule_properties__mw_freebase"
	FieldALogP          = "molecule_properties__alogp"
	FieldRO5Violations  = "molecule_properties__num_ro5_violations"
	FieldTargetSynonym  = "target_synonym"
	FieldOrganism       = "organism"
	FieldTargetChEMBLID = "target_chembl_id"
	FieldMoleculeChEMBL = "molecule_chembl_id"
	FieldAssayType      = "assay_type"
	FieldStandardType   = "standard_type"
	FieldPChEMBL        = "pchembl_value"
	FieldDescription    = "description"
	FieldAssayOrganism  = "assay_organism"
	FieldEFOTerm        = "efo_term"
)

const (
	approvedPhase       = 4
	defaultSimilarity   = 70
	indicationPageLimit = MaxLimit
)

// page is one normalized list response.
type page struct {
	total int
	items []normalize.Record
}

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchByNameMCP runs the preferred-name and synonym queries concurrently
// and returns preferred-name matches first.
func (c *Client) SearchByNameMCP(ctx context.Context, args SearchByNameArgs) (MoleculesResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculesResult{}, err
	}
	name := strings.TrimSpace(args.Name)
	match := func(field string) query.Filter {
		if args.ExactMatch {
			return query.Filter{Field: field + "__iexact", Operator: query.ExactMatch, Value: name}
		}
		return query.Substring(field, name)
	}
	byName := Query{Resource: ResourceMolecule, Filters: []query.Filter{match(FieldPrefName)}, Limit: args.Limit}
	bySynonym := Query{Resource: ResourceMolecule, Filters: []query.Filter{match(FieldSynonym)}, Limit: args.Limit}

	out := backend.Call(ctx, c.guard, Service, "search_by_name", c.Timeout, func(ctx context.Context) ([2][]byte, error) {
		var bodies [2][]byte
		g, gctx := errgroup.WithContext(ctx)
		for i, q := range []Query{byName, bySynonym} {
			g.Go(func() error {
				body, err := c.Search(gctx, q)
				bodies[i] = body
				return err
			})
		}
		return bodies, g.Wait()
	})
	if err := out.Err(); err != nil {
		return MoleculesResult{}, err
	}

	first := toPage(out.Payload[0], byName, MoleculeBasicFields)
	second := toPage(out.Payload[1], bySynonym, MoleculeBasicFields)
	molecules := append(first.items, second.items...)
	return MoleculesResult{
		TotalCount: first.total + second.total,
		Returned:   len(molecules),
		Molecules:  molecules,
	}, nil
}

// SearchBySimilarityMCP finds molecules similar to a SMILES or ChEMBL ID.
func (c *Client) SearchBySimilarityMCP(ctx context.Context, args SearchBySimilarityArgs) (MoleculesResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculesResult{}, err
	}
	structure := strings.TrimSpace(args.SMILES)
	if structure == "" {
		structure = strings.ToUpper(strings.TrimSpace(args.ChEMBLID))
	}
	if structure == "" {
		return MoleculesResult{}, apierrors.NewValidationError("smiles", "", "either smiles or chembl_id must be provided")
	}
	similarity := args.Similarity
	if similarity == 0 {
		similarity = defaultSimilarity
	}
	q := Query{Resource: ResourceSimilarity, Path: []string{structure, strconv.Itoa(similarity)}, Limit: args.Limit}
	return c.molecules(ctx, q, SimilarityFields, c.Timeout)
}

// SearchBySubstructureMCP finds molecules containing a substructure.
func (c *Client) SearchBySubstructureMCP(ctx context.Context, args SearchBySubstructureArgs) (MoleculesResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculesResult{}, err
	}
	q := Query{Resource: ResourceSubstructure, Path: []string{strings.TrimSpace(args.SMILES)}, Limit: args.Limit}
	return c.molecules(ctx, q, MoleculeBasicFields, c.Timeout)
}

// SearchByInChIKeyMCP looks molecules up by standard InChIKey.
func (c *Client) SearchByInChIKeyMCP(ctx context.Context, args SearchByInChIKeyArgs) (MoleculesResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculesResult{}, err
	}
	q := Query{
		Resource: ResourceMolecule,
		Filters:  []query.Filter{query.Exact(FieldInChIKey, strings.ToUpper(strings.TrimSpace(args.InChIKey)))},
	}
	return c.molecules(ctx, q, MoleculeBasicFields, c.ShortTimeout)
}

// GetMoleculeMCP fetches one molecule.
func (c *Client) GetMoleculeMCP(ctx context.Context, args GetMoleculeArgs) (MoleculeResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculeResult{}, err
	}
	id := strings.ToUpper(strings.TrimSpace(args.ChEMBLID))
	out := backend.Fetch(ctx, c.guard, c, id, c.Timeout)
	if err := out.Err(); err != nil {
		return MoleculeResult{}, notFound(err, "molecule", id)
	}
	return MoleculeResult{Molecule: normalize.Normalize(out.Payload, MoleculeDetailedFields)}, nil
}

// SearchApprovedDrugsMCP lists max_phase 4 molecules. With an indication the
// molecule IDs are first resolved through drug_indication.
func (c *Client) SearchApprovedDrugsMCP(ctx context.Context, args SearchApprovedDrugsArgs) (MoleculesResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculesResult{}, err
	}
	extra := url.Values{}
	if args.SortByWeight {
		extra.Set("order_by", FieldMWFreebase)
	}
	indication := strings.TrimSpace(args.Indication)
	if indication == "" {
		q := Query{
			Resource: ResourceMolecule,
			Filters:  []query.Filter{query.Exact(FieldMaxPhase, approvedPhase)},
			Extra:    extra,
			Limit:    args.Limit,
		}
		return c.molecules(ctx, q, MoleculeBasicFields, c.Timeout)
	}

	out := backend.Call(ctx, c.guard, Service, "approved_drugs", c.Timeout, func(ctx context.Context) ([]byte, error) {
		indications, err := c.Search(ctx, Query{
			Resource: ResourceDrugIndication,
			Filters:  []query.Filter{query.Substring(FieldEFOTerm, indication)},
			Limit:    indicationPageLimit,
		})
		if err != nil {
			return nil, err
		}
		ids := uniqueStrings(normalize.Strings(indications, "drug_indications.#.molecule_chembl_id"))
		if len(ids) == 0 {
			return nil, nil
		}
		q := Query{Resource: ResourceMolecule, Extra: cloneValues(extra), Limit: args.Limit}
		q.Extra.Set(FieldMoleculeChEMBL+"__in", strings.Join(ids, ","))
		return c.Search(ctx, q)
	})
	if err := out.Err(); err != nil {
		return MoleculesResult{}, err
	}
	p := toPage(out.Payload, Query{Resource: ResourceMolecule}, MoleculeBasicFields)
	return MoleculesResult{TotalCount: p.total, Returned: len(p.items), Molecules: p.items}, nil
}

// SearchByPropertiesMCP filters molecules by weight, logP, Rule-of-Five
// compliance and name. Without any filter no request is made.
func (c *Client) SearchByPropertiesMCP(ctx context.Context, args SearchByPropertiesArgs) (MoleculesResult, error) {
	if err := validate.Struct(args); err != nil {
		return MoleculesResult{}, err
	}
	var filters []query.Filter
	if args.MaxWeight != nil {
		filters = append(filters, query.AtMost(FieldMWFreebase, *args.MaxWeight))
	}
	if args.MinWeight != nil {
		filters = append(filters, query.AtLeast(FieldMWFreebase, *args.MinWeight))
	}
	if args.MaxLogP != nil {
		filters = append(filters, query.AtMost(FieldALogP, *args.MaxLogP))
	}
	if args.MinLogP != nil {
		filters = append(filters, query.AtLeast(FieldALogP, *args.MinLogP))
	}
	if args.RO5Compliant {
		filters = append(filters, query.Exact(FieldRO5Violations, 0))
	}
	if p := strings.TrimSpace(args.NamePattern); p != "" {
		filters = append(filters, query.Substring(FieldPrefName, p))
	}
	if len(filters) == 0 {
		return MoleculesResult{Molecules: []normalize.Record{}}, nil
	}
	return c.molecules(ctx, Query{Resource: ResourceMolecule, Filters: filters, Limit: args.Limit}, MoleculeBasicFields, c.Timeout)
}

// SearchTargetByGeneMCP searches targets by gene name or synonym.
func (c *Client) SearchTargetByGeneMCP(ctx context.Context, args SearchTargetArgs) (TargetsResult, error) {
	if err := validate.Struct(args); err != nil {
		return TargetsResult{}, err
	}
	filters := []query.Filter{query.Substring(FieldTargetSynonym, strings.TrimSpace(args.GeneName))}
	if o := strings.TrimSpace(args.Organism); o != "" {
		filters = append(filters, query.Substring(FieldOrganism, o))
	}
	p, err := c.list(ctx, "search_targets", Query{Resource: ResourceTarget, Filters: filters, Limit: args.Limit}, TargetFields, c.Timeout)
	if err != nil {
		return TargetsResult{}, err
	}
	return TargetsResult{TotalCount: p.total, Returned: len(p.items), Targets: p.items}, nil
}

// SearchActivitiesByTargetMCP lists bioactivities measured against a target.
func (c *Client) SearchActivitiesByTargetMCP(ctx context.Context, args ActivitiesByTargetArgs) (ActivitiesResult, error) {
	if err := validate.Struct(args); err != nil {
		return ActivitiesResult{}, err
	}
	filters := []query.Filter{query.Exact(FieldTargetChEMBLID, strings.ToUpper(args.TargetChEMBLID))}
	if args.AssayType != "" {
		filters = append(filters, query.Exact(FieldAssayType, args.AssayType))
	}
	if args.StandardType != "" {
		filters = append(filters, query.Exact(FieldStandardType, args.StandardType))
	}
	if args.MinPChEMBL != nil {
		filters = append(filters, query.AtLeast(FieldPChEMBL, *args.MinPChEMBL))
	}
	return c.activities(ctx, Query{Resource: ResourceActivity, Filters: filters, Limit: args.Limit})
}

// SearchActivitiesByMoleculeMCP lists bioactivities of a molecule.
func (c *Client) SearchActivitiesByMoleculeMCP(ctx context.Context, args ActivitiesByMoleculeArgs) (ActivitiesResult, error) {
	if err := validate.Struct(args); err != nil {
		return ActivitiesResult{}, err
	}
	q := Query{
		Resource: ResourceActivity,
		Filters:  []query.Filter{query.Exact(FieldMoleculeChEMBL, strings.ToUpper(args.MoleculeChEMBLID))},
		Limit:    args.Limit,
	}
	if args.RequirePChEMBL {
		q.Extra = url.Values{FieldPChEMBL + "__isnull": {"false"}}
	}
	return c.activities(ctx, q)
}

// SearchAssaysMCP searches assays. Without any filter no request is made.
func (c *Client) SearchAssaysMCP(ctx context.Context, args SearchAssaysArgs) (AssaysResult, error) {
	if err := validate.Struct(args); err != nil {
		return AssaysResult{}, err
	}
	var filters []query.Filter
	if d := strings.TrimSpace(args.DescriptionContains); d != "" {
		filters = append(filters, query.Substring(FieldDescription, d))
	}
	if args.AssayType != "" {
		filters = append(filters, query.Exact(FieldAssayType, args.AssayType))
	}
	if o := strings.TrimSpace(args.Organism); o != "" {
		filters = append(filters, query.Substring(FieldAssayOrganism, o))
	}
	if len(filters) == 0 {
		return AssaysResult{Assays: []normalize.Record{}}, nil
	}
	p, err := c.list(ctx, "search_assays", Query{Resource: ResourceAssay, Filters: filters, Limit: args.Limit}, AssayFields, c.ShortTimeout)
	if err != nil {
		return AssaysResult{}, err
	}
	return AssaysResult{TotalCount: p.total, Returned: len(p.items), Assays: p.items}, nil
}

// SearchDocumentsByPubMedMCP looks documents up by PubMed ID.
func (c *Client) SearchDocumentsByPubMedMCP(ctx context.Context, args DocumentsByPubMedArgs) (DocumentsResult, error) {
	if err := validate.Struct(args); err != nil {
		return DocumentsResult{}, err
	}
	ids := make([]string, len(args.PubMedIDs))
	for i, id := range args.PubMedIDs {
		ids[i] = strconv.Itoa(id)
	}
	q := Query{
		Resource: ResourceDocument,
		Extra:    url.Values{"pubmed_id__in": {strings.Join(ids, ",")}},
		Limit:    len(ids),
	}
	p, err := c.list(ctx, "search_documents", q, DocumentFields, c.ShortTimeout)
	if err != nil {
		return DocumentsResult{}, err
	}
	return DocumentsResult{TotalCount: p.total, Returned: len(p.items), Documents: p.items}, nil
}

func (c *Client) molecules(ctx context.Context, q Query, spec normalize.FieldSpec, timeout time.Duration) (MoleculesResult, error) {
	out := backend.Search(ctx, c.guard, c, q, timeout)
	if err := out.Err(); err != nil {
		return MoleculesResult{}, err
	}
	p := toPage(out.Payload, q, spec)
	return MoleculesResult{TotalCount: p.total, Returned: len(p.items), Molecules: p.items}, nil
}

func (c *Client) activities(ctx context.Context, q Query) (ActivitiesResult, error) {
	p, err := c.list(ctx, "search_activities", q, ActivityFields, c.Timeout)
	if err != nil {
		return ActivitiesResult{}, err
	}
	return ActivitiesResult{TotalCount: p.total, Returned: len(p.items), Activities: p.items}, nil
}

func (c *Client) list(ctx context.Context, operation string, q Query, spec normalize.FieldSpec, timeout time.Duration) (page, error) {
	out := backend.Call(ctx, c.guard, Service, operation, timeout, func(ctx context.Context) ([]byte, error) {
		return c.Search(ctx, q)
	})
	if err := out.Err(); err != nil {
		return page{}, err
	}
	return toPage(out.Payload, q, spec), nil
}

// toPage extracts the collection and page_meta.total_count from a list
// response. A nil body is an empty page.
func toPage(body []byte, q Query, spec normalize.FieldSpec) page {
	items := normalize.List(body, q.Collection(), spec)
	return page{
		total: normalize.Int(body, "page_meta.total_count", len(items)),
		items: items,
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// notFound rewrites a 404 as a NotFoundError.
func notFound(err error, entity, id string) error {
	if apierrors.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", apierrors.NewNotFoundError(Service, entity, id), err)
	}
	return err
}
