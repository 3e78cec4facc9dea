package pubchem

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// SearchByNameArgs contains parameters for a name search
type SearchByNameArgs struct {
	Name       string `json:"name" jsonschema:"Compound name, e.g. aspirin" validate:"required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of compounds (default 5)" validate:"omitempty,min=1,max=100"`
}

// SearchBySMILESArgs contains parameters for a SMILES search
type SearchBySMILESArgs struct {
	SMILES     string `json:"smiles" jsonschema:"SMILES string, e.g. CC(=O)OC1=CC=CC=C1C(=O)O" validate:"required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of compounds (default 5)" validate:"omitempty,min=1,max=100"`
}

// GetByCIDArgs contains parameters for a CID lookup
type GetByCIDArgs struct {
	CID int `json:"cid" jsonschema:"PubChem Compound ID, e.g. 2244" validate:"required,gt=0"`
}

// AdvancedSearchArgs selects one search mode by priority: cid, smiles, name, formula
type AdvancedSearchArgs struct {
	Name       string `json:"name,omitempty" jsonschema:"Compound name"`
	SMILES     string `json:"smiles,omitempty" jsonschema:"SMILES string"`
	Formula    string `json:"formula,omitempty" jsonschema:"Molecular formula, e.g. C9H8O4"`
	CID        int    `json:"cid,omitempty" jsonschema:"PubChem Compound ID" validate:"omitempty,gt=0"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of compounds (default 5)" validate:"omitempty,min=1,max=100"`
}

// SearchResult lists compounds matching a query
type SearchResult struct {
	Query     string             `json:"query"`
	Namespace string             `json:"namespace"`
	Count     int                `json:"count"`
	Compounds []normalize.Record `json:"compounds"`
}

// CompoundResult is a single compound with its synonyms
type CompoundResult struct {
	Compound normalize.Record `json:"compound"`
	Synonyms []string         `json:"synonyms"`
}
