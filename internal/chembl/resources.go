package chembl

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/query"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
)

// ResourceSpec describes a ChEMBL resource that can be listed by exact
// attribute filters. Every field in Filters must be supplied.
type ResourceSpec struct {
	Name        string
	Collection  string
	Filters     []string
	Description string
}

// Catalog lists the resources reachable through query_chembl_resource.
var Catalog = []ResourceSpec{
	{"activity", "activities", []string{"assay_chembl_id"}, "Bioactivity measurements of an assay"},
	{"activity_supplementary_data_by_activity", "activity_supplementary_data_by_activity", []string{"activity_chembl_id"}, "Supplementary data recorded for an activity"},
	{"assay", "assays", []string{"assay_type"}, "Assays of a type (B, F, A, T, P)"},
	{"assay_class", "assay_classes", []string{"assay_class_type"}, "Assay classifications"},
	{"atc_class", "atc", []string{"level1"}, "ATC classification by top-level code"},
	{"binding_site", "binding_sites", []string{"site_name"}, "Target binding sites"},
	{"biotherapeutic", "biotherapeutics", []string{"biotherapeutic_type"}, "Biotherapeutic molecules"},
	{"cell_line", "cell_lines", []string{"cell_line_name"}, "Cell lines"},
	{"chembl_id_lookup", "chembl_id_lookups", []string{"available_type", "q"}, "ChEMBL ID lookup by entity type and text"},
	{"chembl_release", "chembl_releases", nil, "ChEMBL release history"},
	{"compound_record", "compound_records", []string{"compound_name"}, "Compound records as named in source documents"},
	{"compound_structural_alert", "compound_structural_alerts", []string{"alert_name"}, "Structural alerts raised for compounds"},
	{"description", "descriptions", []string{"description_type"}, "Descriptions by type"},
	{"document", "documents", []string{"journal"}, "Source documents from a journal"},
	{"drug", "drugs", []string{"drug_type"}, "Drugs by type"},
	{"drug_indication", "drug_indications", []string{"mesh_heading"}, "Drug indications by MeSH heading"},
	{"drug_warning", "drug_warnings", []string{"meddra_term"}, "Drug warnings by MedDRA term"},
	{"go_slim", "go_slims", []string{"go_slim_term"}, "GO slim terms"},
	{"mechanism", "mechanisms", []string{"mechanism_of_action"}, "Drug mechanisms of action"},
	{"molecule", "molecules", []string{"molecule_type"}, "Molecules by type"},
	{"molecule_form", "molecule_forms", []string{"form_description"}, "Salt and parent molecule forms"},
	{"organism", "organisms", []string{"tax_id"}, "Organism classification by NCBI taxonomy ID"},
	{"protein_classification", "protein_classifications", []string{"protein_class_name"}, "Protein family classification"},
	{"source", "sources", []string{"source_description"}, "Data sources"},
	{"target", "targets", []string{"target_type"}, "Targets by type"},
	{"target_component", "target_components", []string{"component_type"}, "Target components"},
	{"target_relation", "target_relations", []string{"relationship_type"}, "Relations between targets"},
	{"tissue", "tissues", []string{"tissue_name"}, "Tissues"},
	{"xref_source", "xref_sources", []string{"xref_name"}, "Cross-reference sources"},
}

// LookupResource returns the catalog entry for name.
func LookupResource(name string) (ResourceSpec, bool) {
	for _, r := range Catalog {
		if r.Name == name {
			return r, true
		}
	}
	return ResourceSpec{}, false
}

// ResourceNames returns the catalog resource names in order.
func ResourceNames() []string {
	names := make([]string, len(Catalog))
	for i, r := range Catalog {
		names[i] = r.Name
	}
	return names
}

// Query builds the list request for filters. A filter outside the
// resource's fields, or a missing or blank one, is a ValidationError.
func (r ResourceSpec) Query(filters map[string]string, limit int) (Query, error) {
	for key := range filters {
		if !slices.Contains(r.Filters, key) {
			return Query{}, apierrors.NewValidationError("filters", key,
				fmt.Sprintf("not a filter of %s (expected %s)", r.Name, r.filterList()))
		}
	}
	q := Query{Resource: r.Name, Limit: limit}
	for _, field := range r.Filters {
		v := strings.TrimSpace(filters[field])
		if v == "" {
			return Query{}, apierrors.NewValidationError("filters", field, "is required for "+r.Name)
		}
		q.Filters = append(q.Filters, query.Exact(field, v))
	}
	return q, nil
}

func (r ResourceSpec) filterList() string {
	if len(r.Filters) == 0 {
		return "none"
	}
	return strings.Join(r.Filters, ", ")
}

// items reads the resource's collection from a list response. When the
// declared key is absent the first array at the top level is used.
func (r ResourceSpec) items(body []byte) []any {
	list := gjson.GetBytes(body, r.Collection)
	if !list.IsArray() {
		keys := make([]string, 0)
		gjson.ParseBytes(body).ForEach(func(k, v gjson.Result) bool {
			if v.IsArray() {
				keys = append(keys, k.String())
			}
			return true
		})
		sort.Strings(keys)
		if len(keys) > 0 {
			list = gjson.GetBytes(body, keys[0])
		}
	}
	out := make([]any, 0)
	for _, item := range list.Array() {
		var v any
		if err := json.Unmarshal([]byte(item.Raw), &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// QueryResourceMCP lists one catalog resource by exact filters. Items are
// returned as ChEMBL serves them.
func (c *Client) QueryResourceMCP(ctx context.Context, args QueryResourceArgs) (ResourceResult, error) {
	if err := validate.Struct(args); err != nil {
		return ResourceResult{}, err
	}
	spec, ok := LookupResource(strings.TrimSpace(args.Resource))
	if !ok {
		return ResourceResult{}, apierrors.NewValidationError("resource", args.Resource,
			"unknown resource (see the tool description for the catalog)")
	}
	q, err := spec.Query(args.Filters, args.Limit)
	if err != nil {
		return ResourceResult{}, err
	}

	out := backend.Call(ctx, c.guard, Service, "resource_"+spec.Name, c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.Search(ctx, q)
	})
	if err := out.Err(); err != nil {
		return ResourceResult{}, err
	}

	items := spec.items(out.Payload)
	return ResourceResult{
		Resource:   spec.Name,
		Filters:    appliedFilters(q.Filters),
		TotalCount: int(gjson.GetBytes(out.Payload, "page_meta.total_count").Int()),
		Returned:   len(items),
		Items:      items,
	}, nil
}

// GetStatusMCP reports the ChEMBL web services status and release.
func (c *Client) GetStatusMCP(ctx context.Context, _ StatusArgs) (StatusResult, error) {
	out := backend.Call(ctx, c.guard, Service, "status", c.ShortTimeout, func(ctx context.Context) ([]byte, error) {
		return c.Status(ctx)
	})
	if err := out.Err(); err != nil {
		return StatusResult{}, err
	}
	body := gjson.ParseBytes(out.Payload)
	return StatusResult{
		Status:      body.Get("status").String(),
		DBVersion:   body.Get("chembl_db_version").String(),
		ReleaseDate: body.Get("chembl_release_date").String(),
		Activities:  body.Get("activities").Int(),
		Compounds:   firstInt(body, "distinct_compounds", "disinct_compounds"),
		Targets:     body.Get("targets").Int(),
		Documents:   body.Get("publications").Int(),
	}, nil
}

func appliedFilters(filters []query.Filter) map[string]string {
	out := make(map[string]string, len(filters))
	for _, f := range filters {
		out[f.Field] = fmt.Sprint(f.Value)
	}
	return out
}

// firstInt returns the first of keys present in body. The status endpoint
// has served the compound count under a misspelled key.
func firstInt(body gjson.Result, keys ...string) int64 {
	for _, k := range keys {
		if v := body.Get(k); v.Exists() {
			return v.Int()
		}
	}
	return 0
}
