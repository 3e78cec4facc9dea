package surechembl

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// flag reads the "1"/"0" strings SureChEMBL uses for booleans.
func flag(v any) any {
	switch x := v.(type) {
	case string:
		return x == "1"
	case float64:
		return x == 1
	case bool:
		return x
	}
	return false
}

// ChemicalFields shapes a chemical in search and lookup results.
var ChemicalFields = normalize.FieldSpec{
	{Key: "chemical_id", Path: "chemical_id", Default: nil},
	{Key: "name", Path: "name", Default: nil},
	{Key: "smiles", Path: "smiles", Default: nil},
	{Key: "inchi_key", Path: "inchi_key", Default: nil},
	{Key: "molecular_weight", Path: "mol_weight", Default: nil},
	{Key: "global_frequency", Path: "global_frequency", Default: 0},
}

// ReferenceChemicalFields shapes the reference of a similarity request.
var ReferenceChemicalFields = normalize.FieldSpec{
	{Key: "id", Path: "chemical_id", Default: nil},
	{Key: "name", Path: "name", Default: nil},
	{Key: "smiles", Path: "smiles", Default: nil},
	{Key: "molecular_weight", Path: "mol_weight", Default: nil},
}

// ChemicalPropertiesFields shapes the descriptors of a chemical.
var ChemicalPropertiesFields = normalize.FieldSpec{
	{Key: "chemical_id", Path: "chemical_id", Default: nil},
	{Key: "name", Path: "name", Default: nil},
	{Key: "molecular_weight", Path: "mol_weight", Default: nil},
	{Key: "smiles", Path: "smiles", Default: nil},
	{Key: "inchi", Path: "inchi", Default: nil},
	{Key: "inchi_key", Path: "inchi_key", Default: nil},
	{Key: "is_element", Path: "is_element", Default: false, Convert: flag},
	{Key: "global_frequency", Path: "global_frequency", Default: nil},
	{Key: "structural_alerts", Path: "mchem_struct_alert", Default: false, Convert: flag},
	{Key: "log_p", Path: "log_p", Default: nil},
	{Key: "donor_count", Path: "donor_count", Default: nil},
	{Key: "acceptor_count", Path: "accept_count", Default: nil},
	{Key: "ring_count", Path: "ring_count", Default: nil},
	{Key: "rotatable_bonds", Path: "rotatable_bond_count", Default: nil},
}

// ChemicalInfoFields is the short structure summary attached to frequency results.
var ChemicalInfoFields = normalize.FieldSpec{
	{Key: "smiles", Path: "smiles", Default: nil},
	{Key: "molecular_weight", Path: "mol_weight", Default: nil},
	{Key: "inchi_key", Path: "inchi_key", Default: nil},
}
