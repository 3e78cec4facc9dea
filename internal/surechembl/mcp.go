package surechembl

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/olgasafonova/chemdata-mcp-server/internal/analytics"
	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
	"github.com/olgasafonova/chemdata-mcp-server/metrics"
)

const (
	defaultLimit      = 25
	defaultImageSize  = 200
	defaultOutputType = "csv"
	defaultKind       = "cid"

	defaultSimilarityThreshold = 0.7
	topChemicals      = analytics.DefaultTopN

	categoryChemical = "chemical"
	notAvailable     = "N/A"
	statusOK         = "OK"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchPatentsMCP searches patent full text restricted to a set of offices.
func (c *Client) SearchPatentsMCP(ctx context.Context, args SearchPatentsArgs) (SearchPatentsResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchPatentsResult{}, err
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	q := Query{Text: strings.TrimSpace(args.Query), Offices: args.PatentOffices, Limit: limit, Offset: args.Offset}

	out := backend.Search(ctx, c.guard, c, q, c.Timeout)
	if err := out.Err(); err != nil {
		return SearchPatentsResult{}, err
	}
	if err := checkStatus(out.Payload); err != nil {
		return SearchPatentsResult{}, err
	}

	total := normalize.Int(out.Payload, "data.results.total_hits", 0)
	return SearchPatentsResult{
		Query:        q.Text,
		FullQuery:    q.FullQuery(),
		TotalHits:    total,
		Page:         q.Page(),
		ItemsPerPage: limit,
		Documents:    normalize.Lookup(out.Payload, "data.results.documents", []any{}),
		Message:      fmt.Sprintf("Found %d patents matching '%s'", total, q.Text),
	}, nil
}

// GetDocumentContentMCP returns a document with its annotated contents.
func (c *Client) GetDocumentContentMCP(ctx context.Context, args DocumentArgs) (DocumentResult, error) {
	if err := validate.Struct(args); err != nil {
		return DocumentResult{}, err
	}
	id := strings.TrimSpace(args.DocumentID)
	body, err := c.document(ctx, id)
	if err != nil {
		return DocumentResult{}, err
	}
	return DocumentResult{DocumentID: id, Document: normalize.Lookup(body, "data", nil)}, nil
}

// GetPatentFamilyMCP returns the family members of a patent.
func (c *Client) GetPatentFamilyMCP(ctx context.Context, args PatentFamilyArgs) (PatentFamilyResult, error) {
	if err := validate.Struct(args); err != nil {
		return PatentFamilyResult{}, err
	}
	id := strings.TrimSpace(args.PatentID)
	out := backend.Call(ctx, c.guard, Service, "family", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.Family(ctx, id)
	})
	if err := out.Err(); err != nil {
		return PatentFamilyResult{}, notFound(err, "patent", id)
	}
	return PatentFamilyResult{PatentID: id, Family: normalize.Lookup(out.Payload, "data", nil)}, nil
}

// SearchByPatentNumberMCP looks a document up by publication number.
func (c *Client) SearchByPatentNumberMCP(ctx context.Context, args PatentNumberArgs) (PatentNumberResult, error) {
	if err := validate.Struct(args); err != nil {
		return PatentNumberResult{}, err
	}
	number := strings.TrimSpace(args.PatentNumber)
	body, err := c.document(ctx, number)
	if err != nil {
		return PatentNumberResult{}, err
	}
	return PatentNumberResult{PatentNumber: number, Document: normalize.Lookup(body, "data", nil)}, nil
}

// SearchChemicalsByNameMCP searches chemicals by name or synonym.
func (c *Client) SearchChemicalsByNameMCP(ctx context.Context, args SearchChemicalsArgs) (ChemicalsResult, error) {
	if err := validate.Struct(args); err != nil {
		return ChemicalsResult{}, err
	}
	name := strings.TrimSpace(args.Name)
	limit := args.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	out := backend.Call(ctx, c.guard, Service, "chemical_by_name", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.ChemicalByName(ctx, name)
	})
	if err := out.Err(); err != nil {
		if apierrors.StatusCode(err) == http.StatusNotFound {
			return ChemicalsResult{Query: name, Chemicals: []normalize.Record{}}, nil
		}
		return ChemicalsResult{}, err
	}

	chemicals := normalize.List(out.Payload, "data", ChemicalFields)
	if len(chemicals) > limit {
		chemicals = chemicals[:limit]
	}
	return ChemicalsResult{Query: name, Count: len(chemicals), Chemicals: chemicals}, nil
}

// GetChemicalByIDMCP fetches a chemical.
func (c *Client) GetChemicalByIDMCP(ctx context.Context, args ChemicalArgs) (ChemicalResult, error) {
	if err := validate.Struct(args); err != nil {
		return ChemicalResult{}, err
	}
	raw, err := c.chemical(ctx, args.ChemicalID)
	if err != nil {
		return ChemicalResult{}, err
	}
	return ChemicalResult{ChemicalID: args.ChemicalID, Chemical: normalize.Normalize(raw, ChemicalFields)}, nil
}

// GetChemicalPropertiesMCP returns the molecular descriptors of a chemical.
func (c *Client) GetChemicalPropertiesMCP(ctx context.Context, args ChemicalArgs) (ChemicalPropertiesResult, error) {
	if err := validate.Struct(args); err != nil {
		return ChemicalPropertiesResult{}, err
	}
	raw, err := c.chemical(ctx, args.ChemicalID)
	if err != nil {
		return ChemicalPropertiesResult{}, err
	}
	return ChemicalPropertiesResult{
		ChemicalID: args.ChemicalID,
		Properties: normalize.Normalize(raw, ChemicalPropertiesFields),
	}, nil
}

// SearchBySMILESMCP reports that SMILES search is not offered.
func (c *Client) SearchBySMILESMCP(_ context.Context, args SearchBySMILESArgs) (UnsupportedResult, error) {
	if err := validate.Struct(args); err != nil {
		return UnsupportedResult{}, err
	}
	return UnsupportedResult{
		Query:   args.SMILES,
		Message: "SMILES search is not supported by the SureChEMBL API",
		Suggestions: []string{
			"Convert the SMILES to a chemical name and use search_chemicals_by_name",
			"Use search_molecule_by_substructure or search_molecule_by_similarity on ChEMBL",
		},
	}, nil
}

// SearchByInChIMCP reports that InChI search is not offered.
func (c *Client) SearchByInChIMCP(_ context.Context, args SearchByInChIArgs) (UnsupportedResult, error) {
	if err := validate.Struct(args); err != nil {
		return UnsupportedResult{}, err
	}
	return UnsupportedResult{
		Query:   args.InChI,
		Message: "InChI search is not supported by the SureChEMBL API",
		Suggestions: []string{
			"Convert the InChI to a chemical name and use search_chemicals_by_name",
			"Use search_molecule_by_inchi_key on ChEMBL for InChIKeys",
		},
	}, nil
}

// SearchSimilarStructuresMCP resolves the reference chemical and reports
// that similarity search itself is not offered. An unknown reference is a
// NotFoundError.
func (c *Client) SearchSimilarStructuresMCP(ctx context.Context, args SimilarStructuresArgs) (SimilarStructuresResult, error) {
	if err := validate.Struct(args); err != nil {
		return SimilarStructuresResult{}, err
	}
	id := strings.TrimSpace(args.ReferenceID)
	raw, err := c.chemical(ctx, id)
	if err != nil {
		return SimilarStructuresResult{}, err
	}

	threshold := defaultSimilarityThreshold
	if args.Threshold != nil {
		threshold = *args.Threshold
	}
	ref := normalize.Normalize(raw, ReferenceChemicalFields)
	ref.Set("id", id)
	weight, _ := ref.Get("molecular_weight")
	limit := args.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	return SimilarStructuresResult{
		ReferenceChemical: ref,
		SearchParameters:  SimilarityParameters{Threshold: threshold, Limit: limit},
		Message:           "Direct similarity search is not available in the SureChEMBL API",
		Suggestions: []string{
			"Use chemical name variations to find related compounds",
			"Use search_molecule_by_similarity on ChEMBL",
			"Search for compounds in the same chemical class",
		},
		AlternativeSearches: AlternativeSearches{
			ByNameFragments:   fmt.Sprintf("Try searching for fragments of %q", ref.String("name")),
			ByMolecularWeight: fmt.Sprintf("Search for compounds with molecular weight around %v", weight),
		},
	}, nil
}

// GetChemicalImageMCP renders a structure and returns it as a PNG data URL.
func (c *Client) GetChemicalImageMCP(ctx context.Context, args ChemicalImageArgs) (ChemicalImageResult, error) {
	if err := validate.Struct(args); err != nil {
		return ChemicalImageResult{}, err
	}
	height, width := args.Height, args.Width
	if height <= 0 {
		height = defaultImageSize
	}
	if width <= 0 {
		width = defaultImageSize
	}

	out := backend.Call(ctx, c.guard, Service, "image", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.Image(ctx, args.Structure, height, width)
	})
	if err := out.Err(); err != nil {
		return ChemicalImageResult{}, err
	}
	metrics.RecordBinaryPayload(Service, "image", len(out.Payload))

	return ChemicalImageResult{
		Structure: args.Structure,
		ImageData: "data:image/png;base64," + base64.StdEncoding.EncodeToString(out.Payload),
		Width:     width,
		Height:    height,
		Size:      len(out.Payload),
	}, nil
}

// ExportChemicalsMCP exports chemical data and returns it as a data URL.
func (c *Client) ExportChemicalsMCP(ctx context.Context, args ExportChemicalsArgs) (ExportChemicalsResult, error) {
	if err := validate.Struct(args); err != nil {
		return ExportChemicalsResult{}, err
	}
	outputType, kind := args.OutputType, args.Kind
	if outputType == "" {
		outputType = defaultOutputType
	}
	if kind == "" {
		kind = defaultKind
	}

	out := backend.Call(ctx, c.guard, Service, "export", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.Export(ctx, args.ChemicalIDs, outputType, kind)
	})
	if err := out.Err(); err != nil {
		return ExportChemicalsResult{}, err
	}
	metrics.RecordBinaryPayload(Service, "export", len(out.Payload))

	return ExportChemicalsResult{
		ChemicalIDs: args.ChemicalIDs,
		OutputType:  outputType,
		Kind:        kind,
		ExportData:  "data:application/zip;base64," + base64.StdEncoding.EncodeToString(out.Payload),
		Size:        len(out.Payload),
		Message:     fmt.Sprintf("Exported %d chemicals in %s format", len(args.ChemicalIDs), outputType),
	}, nil
}

// AnalyzePatentChemistryMCP extracts and summarizes the annotations of a
// patent document.
func (c *Client) AnalyzePatentChemistryMCP(ctx context.Context, args DocumentArgs) (AnalysisResult, error) {
	if err := validate.Struct(args); err != nil {
		return AnalysisResult{}, err
	}
	id := strings.TrimSpace(args.DocumentID)
	doc, err := c.patentDocument(ctx, id)
	if err != nil {
		return AnalysisResult{}, err
	}

	annotations := analytics.ExtractAnnotations(doc)
	summary := analytics.Aggregate(annotations, topChemicals)
	return AnalysisResult{
		DocumentID:          id,
		TotalAnnotations:    summary.Total,
		UniqueChemicals:     summary.UniqueNames,
		Categories:          summary.Categories,
		Frequency:           summary.Frequency,
		TopChemicals:        summary.Top,
		ChemicalAnnotations: annotations,
		Summary: AnalysisSummary{
			HasChemicalContent: summary.Total > 0,
			Languages:          summary.Languages,
			Sources:            summary.Sources,
		},
	}, nil
}

// GetChemicalFrequencyMCP classifies a chemical's global patent frequency.
func (c *Client) GetChemicalFrequencyMCP(ctx context.Context, args ChemicalArgs) (FrequencyResult, error) {
	if err := validate.Struct(args); err != nil {
		return FrequencyResult{}, err
	}
	raw, err := c.chemical(ctx, args.ChemicalID)
	if err != nil {
		return FrequencyResult{}, err
	}
	freq := int(gjson.GetBytes(raw, "global_frequency").Int())
	return FrequencyResult{
		ChemicalID:        args.ChemicalID,
		Name:              normalize.Lookup(raw, "name", nil),
		GlobalFrequency:   freq,
		FrequencyAnalysis: analytics.ComputeFrequencyStats(freq),
		ChemicalInfo:      normalize.Normalize(raw, ChemicalInfoFields),
	}, nil
}

// GetPatentStatisticsMCP reports bibliographic data, section counts and
// chemical annotation statistics for a patent document.
func (c *Client) GetPatentStatisticsMCP(ctx context.Context, args PatentStatisticsArgs) (PatentStatisticsResult, error) {
	if err := validate.Struct(args); err != nil {
		return PatentStatisticsResult{}, err
	}
	id := strings.TrimSpace(args.DocumentID)
	doc, err := c.patentDocument(ctx, id)
	if err != nil {
		return PatentStatisticsResult{}, err
	}

	all := analytics.ExtractAnnotations(doc)
	chemical := analytics.FilterCategory(all, categoryChemical)
	summary := analytics.Aggregate(chemical, topChemicals)

	result := PatentStatisticsResult{
		DocumentID:        id,
		DocumentInfo:      documentInfo(doc),
		ContentStatistics: analytics.CountSections(doc),
		ChemicalStatistics: ChemicalStatistics{
			TotalAnnotations:      summary.Total,
			UniqueChemicalsCount:  len(summary.UniqueNames),
			MostFrequentChemicals: summary.Top,
			AnnotationSources: map[string]int{
				string(analytics.SourceAbstract):    summary.BySource[string(analytics.SourceAbstract)],
				string(analytics.SourceDescription): summary.BySource[string(analytics.SourceDescription)],
			},
		},
		AnnotationCategories: CategoryCounts{
			Chemical: len(chemical),
			Other:    len(all) - len(chemical),
			Total:    len(all),
		},
	}
	if args.IncludeAnnotations == nil || *args.IncludeAnnotations {
		result.DetailedAnnotations = &DetailedAnnotations{
			ChemicalAnnotations: chemical,
			UniqueChemicals:     summary.UniqueNames,
			ChemicalFrequencies: summary.Frequency,
		}
	}
	return result, nil
}

// document fetches a document's contents, mapping 404 to NotFoundError.
func (c *Client) document(ctx context.Context, id string) ([]byte, error) {
	out := backend.Fetch(ctx, c.guard, c, id, c.Timeout)
	if err := out.Err(); err != nil {
		return nil, notFound(err, "document", id)
	}
	if err := checkStatus(out.Payload); err != nil {
		return nil, err
	}
	return out.Payload, nil
}

// patentDocument returns the patentDocument subtree of a document.
func (c *Client) patentDocument(ctx context.Context, id string) ([]byte, error) {
	body, err := c.document(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := gjson.GetBytes(body, "data.contents.patentDocument")
	if !doc.IsObject() {
		return nil, apierrors.NewNotFoundError(Service, "document", id)
	}
	return []byte(doc.Raw), nil
}

// chemical returns the first record of a chemical lookup.
func (c *Client) chemical(ctx context.Context, id string) ([]byte, error) {
	out := backend.Call(ctx, c.guard, Service, "chemical_by_id", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.ChemicalByID(ctx, id)
	})
	if err := out.Err(); err != nil {
		return nil, notFound(err, "chemical", id)
	}
	items := normalize.Items(out.Payload, "data")
	if len(items) == 0 {
		return nil, apierrors.NewNotFoundError(Service, "chemical", id)
	}
	return items[0], nil
}

// documentInfo reads the English title and the first publication reference.
func documentInfo(doc []byte) DocumentInfo {
	biblio := gjson.GetBytes(doc, "bibliographicData")
	info := DocumentInfo{Title: notAvailable, PublicationNumber: notAvailable, PublicationDate: notAvailable}
	if t := biblio.Get(`inventionTitles.#(lang=="EN").title`); t.Exists() {
		info.Title = t.String()
	}
	if u := biblio.Get("publicationReference.0.ucid"); u.Exists() {
		info.PublicationNumber = u.String()
	}
	if d := biblio.Get("publicationReference.0.documentId.0.date"); d.Exists() {
		info.PublicationDate = d.String()
	}
	return info
}

// checkStatus rejects envelopes whose status is present and not OK.
func checkStatus(body []byte) error {
	status := gjson.GetBytes(body, "status")
	if !status.Exists() || status.String() == statusOK {
		return nil
	}
	msg := gjson.GetBytes(body, "error_message").String()
	if msg == "" {
		msg = "unexpected status " + status.String()
	}
	return fmt.Errorf("%s: %s", Service, msg)
}

// notFound rewrites a 404 as a NotFoundError.
func notFound(err error, entity, id string) error {
	if apierrors.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", apierrors.NewNotFoundError(Service, entity, id), err)
	}
	return err
}
