package opentargets

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// Search hit shapes, one per entity type.
var (
	TargetHitFields = normalize.FieldSpec{
		{Key: "target_id", Path: "id", Default: "Unknown ID"},
		{Key: "name", Path: "name", Default: "No name"},
		{Key: "entity", Path: "entity", Default: "Unknown entity"},
	}
	DiseaseHitFields = normalize.FieldSpec{
		{Key: "disease_id", Path: "id", Default: "Unknown ID"},
		{Key: "name", Path: "name", Default: "No name"},
		{Key: "entity", Path: "entity", Default: "Unknown entity"},
	}
	DrugHitFields = normalize.FieldSpec{
		{Key: "drug_id", Path: "id", Default: "Unknown ID"},
		{Key: "name", Path: "name", Default: "No name"},
		{Key: "entity", Path: "entity", Default: "Unknown entity"},
	}
)

// TargetFields shapes a target document.
var TargetFields = normalize.FieldSpec{
	{Key: "target_id", Path: "id", Default: "Unknown ID"},
	{Key: "name", Path: "approvedName", Default: "No name"},
	{Key: "symbol", Path: "approvedSymbol", Default: "Unknown symbol"},
	{Key: "biotype", Path: "biotype", Default: nil},
	{Key: "chromosome", Path: "genomicLocation.chromosome", Default: nil},
	{Key: "start", Path: "genomicLocation.start", Default: nil},
	{Key: "end", Path: "genomicLocation.end", Default: nil},
	{Key: "gene_functions", Path: "functionDescriptions", Default: []any{}},
}

// DiseaseAssociationFields shapes a target's associated disease row.
var DiseaseAssociationFields = normalize.FieldSpec{
	{Key: "disease_id", Path: "disease.id", Default: "Unknown ID"},
	{Key: "disease_name", Path: "disease.name", Default: "No name"},
	{Key: "association_score", Path: "score", Default: 0},
}

// TargetAssociationFields shapes a disease's associated target row.
var TargetAssociationFields = normalize.FieldSpec{
	{Key: "target_id", Path: "target.id", Default: "Unknown ID"},
	{Key: "target_symbol", Path: "target.approvedSymbol", Default: "Unknown symbol"},
	{Key: "target_name", Path: "target.approvedName", Default: "No name"},
	{Key: "association_score", Path: "score", Default: 0},
}
