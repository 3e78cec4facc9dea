package drugbank

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
)

const testKey = "secret"

func newTestClient(t *testing.T, apiKey string, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(guard.New(guard.WithLogger(logger)), apiKey, WithBaseURL(srv.URL), WithLogger(logger))
	return c, &calls
}

func TestNoAPIKey(t *testing.T) {
	c, calls := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.SearchDrugsMCP(context.Background(), SearchDrugsArgs{Query: "aspirin"})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "DrugBank API key not configured") {
		t.Errorf("unexpected message: %v", err)
	}
	if *calls != 0 {
		t.Errorf("made %d calls, want 0", *calls)
	}
}

func TestSearchDrugsMCP(t *testing.T) {
	c, _ := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testKey {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/drugs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query(); q.Get("q") != "aspirin" || q.Get("limit") != "10" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"DB00945","name":"Aspirin","cas_number":"50-78-2"},{"name":null}]}`))
	})

	result, err := c.SearchDrugsMCP(context.Background(), SearchDrugsArgs{Query: "aspirin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	if got := result.Drugs[0].String("drug_id"); got != "DB00945" {
		t.Errorf("drug_id = %q", got)
	}
	second := result.Drugs[1]
	if got := second.String("name"); got != "No name" {
		t.Errorf("null name should default, got %q", got)
	}
	if got := second.String("drug_id"); got != "Unknown ID" {
		t.Errorf("drug_id = %q, want Unknown ID", got)
	}
	if result.Message != "" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestFindByIndicationAndCategory(t *testing.T) {
	var lastQ string
	c, _ := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		lastQ = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	ctx := context.Background()

	result, err := c.FindByIndicationMCP(ctx, IndicationArgs{Indication: "migraine", MaxResults: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastQ != "indication:migraine" {
		t.Errorf("q = %q", lastQ)
	}
	if result.Message != "No drugs found for indication: migraine" || result.Drugs == nil {
		t.Errorf("unexpected empty result: %+v", result)
	}

	if _, err := c.FindByCategoryMCP(ctx, CategoryArgs{Category: "antibiotic"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastQ != "category:antibiotic" {
		t.Errorf("q = %q", lastQ)
	}
}

func TestGetDrugDetailsMCP(t *testing.T) {
	c, _ := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drugs/DB00945" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"name":"Aspirin","indication":"Pain"}}`))
	})

	result, err := c.GetDrugDetailsMCP(context.Background(), DrugDetailsArgs{DrugID: "DB00945"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := result.Drug
	if keys := d.Keys(); keys[0] != "drug_id" {
		t.Errorf("first key = %q, want drug_id", keys[0])
	}
	if got := d.String("drug_id"); got != "DB00945" {
		t.Errorf("drug_id = %q", got)
	}
	if got, ok := d.Get("mechanism_of_action"); !ok || got != nil {
		t.Errorf("mechanism_of_action = %v, want null", got)
	}
}

func TestGetDrugDetailsMCP_EmptyData(t *testing.T) {
	c, _ := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	_, err := c.GetDrugDetailsMCP(context.Background(), DrugDetailsArgs{DrugID: "DB99999"})
	if !apierrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestGetDrugDetailsMCP_InvalidID(t *testing.T) {
	c, calls := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {})

	for _, id := range []string{"DB1", "XX00001", "DB000011"} {
		_, err := c.GetDrugDetailsMCP(context.Background(), DrugDetailsArgs{DrugID: id})
		if !apierrors.IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", id, err)
		}
	}
	if *calls != 0 {
		t.Errorf("made %d calls, want 0", *calls)
	}
}

func TestGetInteractionsMCP_Truncates(t *testing.T) {
	c, _ := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drugs/DB00945/interactions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[
			{"interacting_drug":{"id":"DB00001","name":"Lepirudin"},"description":"Bleeding risk"},
			{"interacting_drug":{}},
			{"description":"x"}
		]}`))
	})

	result, err := c.GetInteractionsMCP(context.Background(), InteractionsArgs{DrugID: "DB00945", MaxResults: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	second := result.Interactions[1]
	if second.String("interacting_drug_name") != "Unknown drug" || second.String("description") != "No description available" {
		t.Errorf("defaults not applied: %v", second.Map())
	}
}

func TestGetInteractionsMCP_None(t *testing.T) {
	c, _ := newTestClient(t, testKey, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	result, err := c.GetInteractionsMCP(context.Background(), InteractionsArgs{DrugID: "DB00945"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "No interactions found for drug with ID: DB00945" {
		t.Errorf("message = %q", result.Message)
	}
}
