package drugbank

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// DrugBasicFields shapes a drug in search results.
var DrugBasicFields = normalize.FieldSpec{
	{Key: "drug_id", Path: "id", Default: "Unknown ID"},
	{Key: "name", Path: "name", Default: "No name"},
	{Key: "cas_number", Path: "cas_number", Default: nil},
	{Key: "synonyms", Path: "synonyms", Default: []any{}},
	{Key: "groups", Path: "groups", Default: []any{}},
}

// DrugDetailedFields shapes a single drug. drug_id is overwritten with the
// requested ID.
var DrugDetailedFields = normalize.FieldSpec{
	{Key: "drug_id", Path: "id", Default: ""},
	{Key: "name", Path: "name", Default: "No name"},
	{Key: "description", Path: "description", Default: nil},
	{Key: "cas_number", Path: "cas_number", Default: nil},
	{Key: "groups", Path: "groups", Default: []any{}},
	{Key: "indication", Path: "indication", Default: nil},
	{Key: "mechanism_of_action", Path: "mechanism_of_action", Default: nil},
	{Key: "pharmacodynamics", Path: "pharmacodynamics", Default: nil},
	{Key: "synonyms", Path: "synonyms", Default: []any{}},
}

// InteractionFields shapes a drug-drug interaction.
var InteractionFields = normalize.FieldSpec{
	{Key: "interacting_drug_name", Path: "interacting_drug.name", Default: "Unknown drug"},
	{Key: "interacting_drug_id", Path: "interacting_drug.id", Default: "Unknown ID"},
	{Key: "description", Path: "description", Default: "No description available"},
}
