package chembl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/guard"
	"github.com/olgasafonova/chemdata-mcp-server/internal/query"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(guard.New(guard.WithLogger(logger)), WithBaseURL(srv.URL), WithLogger(logger))
	return c, &calls
}

// =============================================================================
// Query rendering
// =============================================================================

func TestQueryValues(t *testing.T) {
	q := Query{
		Resource: ResourceMolecule,
		Filters: []query.Filter{
			query.AtLeast(FieldMWFreebase, 200),
			query.AtMost(FieldMWFreebase, 500),
			query.Substring(FieldPrefName, "nib"),
			query.Exact(FieldRO5Violations, 0),
		},
	}
	v := q.Values()

	want := map[string]string{
		"molecule_properties__mw_freebase__gte":   "200",
		"molecule_properties__mw_freebase__lte":   "500",
		"pref_name__icontains":                    "nib",
		"molecule_properties__num_ro5_violations": "0",
		"limit":                                   "20",
	}
	for k, w := range want {
		if got := v.Get(k); got != w {
			t.Errorf("%s = %q, want %q", k, got, w)
		}
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{50, 50},
		{5000, MaxLimit},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQueryCollection(t *testing.T) {
	tests := map[string]string{
		ResourceMolecule:     "molecules",
		ResourceActivity:     "activities",
		ResourceSimilarity:   "molecules",
		ResourceSubstructure: "molecules",
		"mechanism":          "mechanisms",
	}
	for resource, want := range tests {
		if got := (Query{Resource: resource}).Collection(); got != want {
			t.Errorf("Collection(%q) = %q, want %q", resource, got, want)
		}
	}
}

// =============================================================================
// Molecules
// =============================================================================

func TestSearchByNameMCP_PrefNameFirst(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("pref_name__icontains") == "aspirin":
			_, _ = w.Write([]byte(`{"molecules":[{"molecule_chembl_id":"CHEMBL25","pref_name":"ASPIRIN"}],"page_meta":{"total_count":1}}`))
		case q.Get("molecule_synonyms__molecule_synonym__icontains") == "aspirin":
			_, _ = w.Write([]byte(`{"molecules":[{"molecule_chembl_id":"CHEMBL2260549"}],"page_meta":{"total_count":1}}`))
		default:
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
	})

	result, err := c.SearchByNameMCP(context.Background(), SearchByNameArgs{Name: "aspirin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(calls) != 2 {
		t.Errorf("expected 2 requests, got %d", atomic.LoadInt32(calls))
	}
	if result.Returned != 2 || result.TotalCount != 2 {
		t.Fatalf("returned/total = %d/%d", result.Returned, result.TotalCount)
	}
	if got := result.Molecules[0].String("molecule_chembl_id"); got != "CHEMBL25" {
		t.Errorf("first molecule = %q, want CHEMBL25", got)
	}
	if got, ok := result.Molecules[1].Get("pref_name"); !ok || got != nil {
		t.Errorf("missing pref_name should be null, got %v", got)
	}
}

func TestSearchByNameMCP_Exact(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("pref_name__iexact") == "" && q.Get("molecule_synonyms__molecule_synonym__iexact") == "" {
			t.Errorf("expected iexact lookups, got %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"molecules":[]}`))
	})

	if _, err := c.SearchByNameMCP(context.Background(), SearchByNameArgs{Name: "Aspirin", ExactMatch: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchBySimilarityMCP(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/similarity/CHEMBL25/80.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"molecules":[{"molecule_chembl_id":"CHEMBL25","similarity":"100"}]}`))
	})

	result, err := c.SearchBySimilarityMCP(context.Background(), SearchBySimilarityArgs{ChEMBLID: "chembl25", Similarity: 80})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Molecules[0].String("similarity"); got != "100" {
		t.Errorf("similarity = %q", got)
	}
}

func TestSearchBySimilarityMCP_NoStructure(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.SearchBySimilarityMCP(context.Background(), SearchBySimilarityArgs{})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("no request should be made")
	}
}

func TestSearchByInChIKeyMCP_Invalid(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.SearchByInChIKeyMCP(context.Background(), SearchByInChIKeyArgs{InChIKey: "not-a-key"})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("no request should be made")
	}
}

func TestGetMoleculeMCP(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/molecule/CHEMBL25.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"molecule_chembl_id":"CHEMBL25","pref_name":"ASPIRIN","molecule_properties":{"full_mwt":"180.16","hbd":1},"molecule_synonyms":[{"molecule_synonym":"Aspirin"},{"molecule_synonym":"Acetylsalicylic acid"}]}`))
	})

	result, err := c.GetMoleculeMCP(context.Background(), GetMoleculeArgs{ChEMBLID: "chembl25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Molecule.String("pref_name"); got != "ASPIRIN" {
		t.Errorf("pref_name = %q", got)
	}
	syn, _ := result.Molecule.Get("synonyms")
	if list, ok := syn.([]any); !ok || len(list) != 2 {
		t.Errorf("synonyms = %v", syn)
	}
	if got, _ := result.Molecule.Get("oral"); got != false {
		t.Errorf("missing oral should default to false, got %v", got)
	}
}

func TestGetMoleculeMCP_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetMoleculeMCP(context.Background(), GetMoleculeArgs{ChEMBLID: "CHEMBL999999999"})
	if !apierrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchApprovedDrugsMCP(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("max_phase") != "4" {
			t.Errorf("max_phase = %q", q.Get("max_phase"))
		}
		if q.Get("order_by") != FieldMWFreebase {
			t.Errorf("order_by = %q", q.Get("order_by"))
		}
		_, _ = w.Write([]byte(`{"molecules":[{"molecule_chembl_id":"CHEMBL25"}],"page_meta":{"total_count":3000}}`))
	})

	result, err := c.SearchApprovedDrugsMCP(context.Background(), SearchApprovedDrugsArgs{SortByWeight: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 3000 || result.Returned != 1 {
		t.Errorf("total/returned = %d/%d", result.TotalCount, result.Returned)
	}
}

func TestSearchApprovedDrugsMCP_Indication(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/drug_indication.json":
			if q.Get("efo_term__icontains") != "lung cancer" {
				t.Errorf("efo_term = %q", q.Get("efo_term__icontains"))
			}
			_, _ = w.Write([]byte(`{"drug_indications":[{"molecule_chembl_id":"CHEMBL939"},{"molecule_chembl_id":"CHEMBL553"},{"molecule_chembl_id":"CHEMBL939"}]}`))
		case "/molecule.json":
			if got := q.Get("molecule_chembl_id__in"); got != "CHEMBL939,CHEMBL553" {
				t.Errorf("molecule_chembl_id__in = %q", got)
			}
			_, _ = w.Write([]byte(`{"molecules":[{"molecule_chembl_id":"CHEMBL939"},{"molecule_chembl_id":"CHEMBL553"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	result, err := c.SearchApprovedDrugsMCP(context.Background(), SearchApprovedDrugsArgs{Indication: "lung cancer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Returned != 2 {
		t.Errorf("returned = %d, want 2", result.Returned)
	}
}

func TestSearchApprovedDrugsMCP_UnknownIndication(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"drug_indications":[]}`))
	})

	result, err := c.SearchApprovedDrugsMCP(context.Background(), SearchApprovedDrugsArgs{Indication: "nothing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Returned != 0 || result.Molecules == nil {
		t.Errorf("expected empty non-nil list, got %+v", result)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Errorf("only the indication lookup should run, got %d requests", atomic.LoadInt32(calls))
	}
}

func TestSearchByPropertiesMCP(t *testing.T) {
	minW, maxW := 200.0, 500.0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("molecule_properties__mw_freebase__gte") != "200" || q.Get("molecule_properties__mw_freebase__lte") != "500" {
			t.Errorf("weight range missing: %s", r.URL.RawQuery)
		}
		if q.Get("molecule_properties__num_ro5_violations") != "0" {
			t.Errorf("ro5 filter missing: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"molecules":[]}`))
	})

	_, err := c.SearchByPropertiesMCP(context.Background(), SearchByPropertiesArgs{
		MinWeight:    &minW,
		MaxWeight:    &maxW,
		RO5Compliant: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchByPropertiesMCP_NoFilters(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	result, err := c.SearchByPropertiesMCP(context.Background(), SearchByPropertiesArgs{NamePattern: "  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Molecules == nil || len(result.Molecules) != 0 {
		t.Errorf("expected empty list, got %v", result.Molecules)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("no request should be made")
	}
}

// =============================================================================
// Targets, activities, assays
// =============================================================================

func TestSearchTargetByGeneMCP(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("target_synonym__icontains") != "EGFR" || q.Get("organism__icontains") != "Homo sapiens" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"targets":[{"target_chembl_id":"CHEMBL203","pref_name":"Epidermal growth factor receptor erbB1","target_components":[{"accession":"P00533"}]}],"page_meta":{"total_count":1}}`))
	})

	result, err := c.SearchTargetByGeneMCP(context.Background(), SearchTargetArgs{GeneName: "EGFR", Organism: "Homo sapiens"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Returned != 1 {
		t.Fatalf("returned = %d", result.Returned)
	}
	acc, _ := result.Targets[0].Get("accessions")
	if list, ok := acc.([]any); !ok || len(list) != 1 || list[0] != "P00533" {
		t.Errorf("accessions = %v", acc)
	}
}

func TestSearchActivitiesByTargetMCP(t *testing.T) {
	pchembl := 7.0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("target_chembl_id") != "CHEMBL203" || q.Get("standard_type") != "IC50" || q.Get("pchembl_value__gte") != "7" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"activities":[{"activity_id":1,"molecule_chembl_id":"CHEMBL939","pchembl_value":"8.5"}],"page_meta":{"total_count":42}}`))
	})

	result, err := c.SearchActivitiesByTargetMCP(context.Background(), ActivitiesByTargetArgs{
		TargetChEMBLID: "CHEMBL203",
		StandardType:   "IC50",
		MinPChEMBL:     &pchembl,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 42 || result.Returned != 1 {
		t.Errorf("total/returned = %d/%d", result.TotalCount, result.Returned)
	}
}

func TestSearchActivitiesByMoleculeMCP_RequirePChEMBL(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pchembl_value__isnull"); got != "false" {
			t.Errorf("pchembl_value__isnull = %q", got)
		}
		_, _ = w.Write([]byte(`{"activities":[]}`))
	})

	_, err := c.SearchActivitiesByMoleculeMCP(context.Background(), ActivitiesByMoleculeArgs{MoleculeChEMBLID: "CHEMBL25", RequirePChEMBL: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchAssaysMCP_NoFilters(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	result, err := c.SearchAssaysMCP(context.Background(), SearchAssaysArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Assays == nil || result.Returned != 0 {
		t.Errorf("expected empty list, got %+v", result)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Error("no request should be made")
	}
}

func TestSearchAssaysMCP_ServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})

	_, err := c.SearchAssaysMCP(context.Background(), SearchAssaysArgs{AssayType: "B"})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected 500 error, got %v", err)
	}
}

func TestSearchDocumentsByPubMedMCP(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pubmed_id__in"); got != "123,456" {
			t.Errorf("pubmed_id__in = %q", got)
		}
		_, _ = w.Write([]byte(`{"documents":[{"document_chembl_id":"CHEMBL1","pubmed_id":123,"title":"T"}]}`))
	})

	result, err := c.SearchDocumentsByPubMedMCP(context.Background(), DocumentsByPubMedArgs{PubMedIDs: []int{123, 456}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Returned != 1 {
		t.Errorf("returned = %d", result.Returned)
	}
}
