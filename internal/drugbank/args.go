package drugbank

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// SearchDrugsArgs contains parameters for a drug name search
type SearchDrugsArgs struct {
	Query      string `json:"query" jsonschema:"Drug name or keyword" validate:"required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of drugs (default 10)" validate:"omitempty,min=1,max=500"`
}

// IndicationArgs contains parameters for a search by indication
type IndicationArgs struct {
	Indication string `json:"indication" jsonschema:"Medical condition or disease" validate:"required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of drugs (default 10)" validate:"omitempty,min=1,max=500"`
}

// CategoryArgs contains parameters for a search by drug category
type CategoryArgs struct {
	Category   string `json:"category" jsonschema:"Drug category, e.g. antibiotic or antidepressant" validate:"required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of drugs (default 10)" validate:"omitempty,min=1,max=500"`
}

// DrugsResult lists drugs
type DrugsResult struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Drugs   []normalize.Record `json:"drugs"`
	Message string             `json:"message,omitempty"`
}

// DrugDetailsArgs identifies a drug
type DrugDetailsArgs struct {
	DrugID string `json:"drug_id" jsonschema:"DrugBank ID, e.g. DB00945" validate:"required,drugbankid"`
}

// DrugDetailsResult is a single drug
type DrugDetailsResult struct {
	Drug normalize.Record `json:"drug"`
}

// InteractionsArgs contains parameters for an interaction lookup
type InteractionsArgs struct {
	DrugID     string `json:"drug_id" jsonschema:"DrugBank ID, e.g. DB00945" validate:"required,drugbankid"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of interactions (default 10)" validate:"omitempty,min=1,max=500"`
}

// InteractionsResult lists the interactions of a drug
type InteractionsResult struct {
	DrugID       string             `json:"drug_id"`
	Count        int                `json:"count"`
	Interactions []normalize.Record `json:"interactions"`
	Message      string             `json:"message,omitempty"`
}
