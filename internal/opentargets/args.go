package opentargets

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// Alias fields are declared so strict schema validation accepts the
// camelCase spellings some clients send. They override the snake_case field.

// SearchArgs contains parameters for target, disease and drug search
type SearchArgs struct {
	Query           string `json:"query" jsonschema:"Search text, e.g. BRAF, asthma or imatinib" validate:"required"`
	MaxResults      int    `json:"max_results,omitempty" jsonschema:"Maximum number of hits (default 10)" validate:"omitempty,min=1,max=500"`
	MaxResultsAlias *int   `json:"maxResults,omitempty" jsonschema:"Alias of max_results"`
}

// SearchResult lists search hits of one entity type
type SearchResult struct {
	Query   string             `json:"query"`
	Entity  string             `json:"entity"`
	Total   int                `json:"total"`
	Count   int                `json:"count"`
	Hits    []normalize.Record `json:"hits"`
	Message string             `json:"message,omitempty"`
}

// TargetDetailsArgs contains parameters for a target lookup
type TargetDetailsArgs struct {
	TargetID      string  `json:"target_id,omitempty" jsonschema:"Ensembl gene ID, e.g. ENSG00000157764"`
	TargetIDAlias *string `json:"targetId,omitempty" jsonschema:"Alias of target_id"`
}

// TargetDetailsResult is a single target
type TargetDetailsResult struct {
	Target normalize.Record `json:"target"`
}

// TargetDiseasesArgs contains parameters for a target's associated diseases
type TargetDiseasesArgs struct {
	TargetID        string  `json:"target_id,omitempty" jsonschema:"Ensembl gene ID, e.g. ENSG00000112164"`
	MaxResults      int     `json:"max_results,omitempty" jsonschema:"Maximum number of associations (default 10)" validate:"omitempty,min=1,max=500"`
	TargetIDAlias   *string `json:"targetId,omitempty" jsonschema:"Alias of target_id"`
	MaxResultsAlias *int    `json:"maxResults,omitempty" jsonschema:"Alias of max_results"`
}

// DiseaseTargetsArgs contains parameters for a disease's associated targets
type DiseaseTargetsArgs struct {
	DiseaseID       string  `json:"disease_id,omitempty" jsonschema:"Disease ID, e.g. MONDO_0005148 or EFO_0000305"`
	MaxResults      int     `json:"max_results,omitempty" jsonschema:"Maximum number of associations (default 10)" validate:"omitempty,min=1,max=500"`
	DiseaseIDAlias  *string `json:"diseaseId,omitempty" jsonschema:"Alias of disease_id"`
	MaxResultsAlias *int    `json:"maxResults,omitempty" jsonschema:"Alias of max_results"`
}

// AssociationsResult lists scored associations of one entity
type AssociationsResult struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Total        int                `json:"total"`
	Count        int                `json:"count"`
	Associations []normalize.Record `json:"associations"`
	Message      string             `json:"message,omitempty"`
}
