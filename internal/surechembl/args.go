package surechembl

import (
	"github.com/olgasafonova/chemdata-mcp-server/internal/analytics"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
)

// SearchPatentsArgs contains parameters for a patent search
type SearchPatentsArgs struct {
	Query         string `json:"query" jsonschema:"Keywords, patent numbers or text, e.g. KRAS inhibitor" validate:"required"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Results per page (1-1000, default 25)" validate:"omitempty,min=1,max=1000"`
	Offset        int    `json:"offset,omitempty" jsonschema:"Results to skip (default 0)" validate:"omitempty,min=0"`
	PatentOffices string `json:"patent_offices,omitempty" jsonschema:"Patent office filter (default US OR EP OR WO OR JP OR CN)"`
}

// SearchPatentsResult is one page of patent search hits
type SearchPatentsResult struct {
	Query        string `json:"query"`
	FullQuery    string `json:"full_query"`
	TotalHits    int    `json:"total_hits"`
	Page         int    `json:"page"`
	ItemsPerPage int    `json:"items_per_page"`
	Documents    any    `json:"documents"`
	Message      string `json:"message"`
}

// DocumentArgs identifies a patent document
type DocumentArgs struct {
	DocumentID string `json:"document_id" jsonschema:"Patent document ID, e.g. WO-2020096695-A1" validate:"required"`
}

// DocumentResult is a patent document with its annotated contents
type DocumentResult struct {
	DocumentID string `json:"document_id"`
	Document   any    `json:"document"`
}

// PatentFamilyArgs identifies a patent for a family lookup
type PatentFamilyArgs struct {
	PatentID string `json:"patent_id" jsonschema:"Patent ID, e.g. US-9000000-B2" validate:"required"`
}

// PatentFamilyResult lists patent family members
type PatentFamilyResult struct {
	PatentID string `json:"patent_id"`
	Family   any    `json:"family"`
}

// PatentNumberArgs identifies a patent by publication number
type PatentNumberArgs struct {
	PatentNumber string `json:"patent_number" jsonschema:"Patent or publication number" validate:"required"`
}

// PatentNumberResult is the document found for a publication number
type PatentNumberResult struct {
	PatentNumber string `json:"patent_number"`
	Document     any    `json:"document"`
}

// SearchChemicalsArgs contains parameters for a chemical name search
type SearchChemicalsArgs struct {
	Name  string `json:"name" jsonschema:"Chemical name or synonym" validate:"required"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of chemicals (1-1000, default 25)" validate:"omitempty,min=1,max=1000"`
}

// ChemicalsResult lists chemicals
type ChemicalsResult struct {
	Query     string             `json:"query"`
	Count     int                `json:"count"`
	Chemicals []normalize.Record `json:"chemicals"`
}

// ChemicalArgs identifies a chemical
type ChemicalArgs struct {
	ChemicalID string `json:"chemical_id" jsonschema:"SureChEMBL chemical ID (numeric)" validate:"required,numeric"`
}

// ChemicalResult is a single chemical
type ChemicalResult struct {
	ChemicalID string           `json:"chemical_id"`
	Chemical   normalize.Record `json:"chemical"`
}

// ChemicalPropertiesResult holds descriptors of a chemical
type ChemicalPropertiesResult struct {
	ChemicalID string           `json:"chemical_id"`
	Properties normalize.Record `json:"properties"`
}

// SearchBySMILESArgs contains parameters for a SMILES search
type SearchBySMILESArgs struct {
	SMILES string `json:"smiles" jsonschema:"SMILES string" validate:"required"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

// SearchByInChIArgs contains parameters for an InChI search
type SearchByInChIArgs struct {
	InChI string `json:"inchi" jsonschema:"InChI string or InChIKey" validate:"required"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

// SimilarStructuresArgs contains parameters for a similarity search
type SimilarStructuresArgs struct {
	ReferenceID string   `json:"reference_id" jsonschema:"Reference SureChEMBL chemical ID" validate:"required"`
	Threshold   *float64 `json:"threshold,omitempty" jsonschema:"Similarity threshold 0.0-1.0 (default 0.7)" validate:"omitempty,min=0,max=1"`
	Limit       int      `json:"limit,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

// UnsupportedResult explains a search the public API does not offer
type UnsupportedResult struct {
	Query       string   `json:"query"`
	Supported   bool     `json:"supported"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// SimilarityParameters echoes the requested similarity search
type SimilarityParameters struct {
	Threshold float64 `json:"threshold"`
	Limit     int     `json:"limit"`
}

// AlternativeSearches suggests searches built from the reference chemical
type AlternativeSearches struct {
	ByNameFragments   string `json:"by_name_fragments"`
	ByMolecularWeight string `json:"by_molecular_weight"`
}

// SimilarStructuresResult describes the reference chemical of a similarity
// request the public API cannot run
type SimilarStructuresResult struct {
	ReferenceChemical   normalize.Record     `json:"reference_chemical"`
	SearchParameters    SimilarityParameters `json:"search_parameters"`
	Supported           bool                 `json:"supported"`
	Message             string               `json:"message"`
	Suggestions         []string             `json:"suggestions"`
	AlternativeSearches AlternativeSearches  `json:"alternative_searches"`
}

// ChemicalImageArgs contains parameters for structure rendering
type ChemicalImageArgs struct {
	Structure string `json:"structure" jsonschema:"SMILES or other structure notation" validate:"required"`
	Height    int    `json:"height,omitempty" jsonschema:"Image height in pixels (default 200)" validate:"omitempty,min=50,max=2000"`
	Width     int    `json:"width,omitempty" jsonschema:"Image width in pixels (default 200)" validate:"omitempty,min=50,max=2000"`
}

// ChemicalImageResult carries a PNG as a base64 data URL
type ChemicalImageResult struct {
	Structure string `json:"structure"`
	ImageData string `json:"image_data"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int    `json:"size"`
}

// ExportChemicalsArgs contains parameters for a bulk export
type ExportChemicalsArgs struct {
	ChemicalIDs []string `json:"chemical_ids" jsonschema:"SureChEMBL chemical IDs (1-100)" validate:"required,min=1,max=100,dive,required"`
	OutputType  string   `json:"output_type,omitempty" jsonschema:"csv (default) or xml" validate:"omitempty,oneof=csv xml"`
	Kind        string   `json:"kind,omitempty" jsonschema:"cid (default) or smiles" validate:"omitempty,oneof=cid smiles"`
}

// ExportChemicalsResult carries the export archive as a base64 data URL
type ExportChemicalsResult struct {
	ChemicalIDs []string `json:"chemical_ids"`
	OutputType  string   `json:"output_type"`
	Kind        string   `json:"kind"`
	ExportData  string   `json:"export_data"`
	Size        int      `json:"size"`
	Message     string   `json:"message"`
}

// AnalysisResult summarizes the annotations of a patent document
type AnalysisResult struct {
	DocumentID          string                 `json:"document_id"`
	TotalAnnotations    int                    `json:"total_chemical_annotations"`
	UniqueChemicals     []string               `json:"unique_chemicals"`
	Categories          []string               `json:"annotation_categories"`
	Frequency           map[string]int         `json:"chemical_frequency"`
	TopChemicals        []analytics.NameCount  `json:"top_chemicals"`
	ChemicalAnnotations []analytics.Annotation `json:"chemical_annotations"`
	Summary             AnalysisSummary        `json:"summary"`
}

// AnalysisSummary is the short form of an annotation analysis
type AnalysisSummary struct {
	HasChemicalContent bool     `json:"has_chemical_content"`
	Languages          []string `json:"languages"`
	Sources            []string `json:"sources"`
}

// FrequencyResult classifies how often a chemical occurs across patents
type FrequencyResult struct {
	ChemicalID        string                  `json:"chemical_id"`
	Name              any                     `json:"name"`
	GlobalFrequency   int                     `json:"global_frequency"`
	FrequencyAnalysis analytics.FrequencyStat `json:"frequency_analysis"`
	ChemicalInfo      normalize.Record        `json:"chemical_info"`
}

// PatentStatisticsArgs contains parameters for document statistics
type PatentStatisticsArgs struct {
	DocumentID         string `json:"document_id" jsonschema:"Patent document ID" validate:"required"`
	IncludeAnnotations *bool  `json:"include_annotations,omitempty" jsonschema:"Include the annotation detail (default true)"`
}

// PatentStatisticsResult is a statistical overview of a patent document
type PatentStatisticsResult struct {
	DocumentID           string                 `json:"document_id"`
	DocumentInfo         DocumentInfo           `json:"document_info"`
	ContentStatistics    analytics.SectionStats `json:"content_statistics"`
	ChemicalStatistics   ChemicalStatistics     `json:"chemical_statistics"`
	AnnotationCategories CategoryCounts         `json:"annotation_categories"`
	DetailedAnnotations  *DetailedAnnotations   `json:"detailed_annotations,omitempty"`
}

// DocumentInfo is the bibliographic summary of a patent
type DocumentInfo struct {
	Title             string `json:"title"`
	PublicationNumber string `json:"publication_number"`
	PublicationDate   string `json:"publication_date"`
}

// ChemicalStatistics counts chemical annotations
type ChemicalStatistics struct {
	TotalAnnotations      int                   `json:"total_chemical_annotations"`
	UniqueChemicalsCount  int                   `json:"unique_chemicals_count"`
	MostFrequentChemicals []analytics.NameCount `json:"most_frequent_chemicals"`
	AnnotationSources     map[string]int        `json:"annotation_sources"`
}

// CategoryCounts splits annotations into chemical and other
type CategoryCounts struct {
	Chemical int `json:"chemical"`
	Other    int `json:"other"`
	Total    int `json:"total"`
}

// DetailedAnnotations is the optional annotation detail of a statistics result
type DetailedAnnotations struct {
	ChemicalAnnotations []analytics.Annotation `json:"chemical_annotations"`
	UniqueChemicals     []string               `json:"unique_chemicals"`
	ChemicalFrequencies map[string]int         `json:"chemical_frequencies"`
}
