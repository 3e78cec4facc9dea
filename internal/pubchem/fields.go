package pubchem

import (
	"strconv"

	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
)

// toFloat converts the numeric strings PUG REST uses for masses.
func toFloat(v any) any {
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return v
}

// CompoundFields shapes one PropertyTable entry.
var CompoundFields = normalize.FieldSpec{
	{Key: "cid", Path: "CID", Default: nil},
	{Key: "iupac_name", Path: "IUPACName", Default: nil},
	{Key: "molecular_formula", Path: "MolecularFormula", Default: nil},
	{Key: "molecular_weight", Path: "MolecularWeight", Default: nil, Convert: toFloat},
	{Key: "canonical_smiles", Path: "CanonicalSMILES", Default: nil},
	{Key: "isomeric_smiles", Path: "IsomericSMILES", Default: nil},
	{Key: "inchi", Path: "InChI", Default: nil},
	{Key: "inchikey", Path: "InChIKey", Default: nil},
	{Key: "xlogp", Path: "XLogP", Default: nil},
	{Key: "exact_mass", Path: "ExactMass", Default: nil, Convert: toFloat},
	{Key: "monoisotopic_mass", Path: "MonoisotopicMass", Default: nil, Convert: toFloat},
	{Key: "tpsa", Path: "TPSA", Default: nil},
	{Key: "complexity", Path: "Complexity", Default: nil},
	{Key: "charge", Path: "Charge", Default: nil},
	{Key: "h_bond_donor_count", Path: "HBondDonorCount", Default: nil},
	{Key: "h_bond_acceptor_count", Path: "HBondAcceptorCount", Default: nil},
	{Key: "rotatable_bond_count", Path: "RotatableBondCount", Default: nil},
	{Key: "heavy_atom_count", Path: "HeavyAtomCount", Default: nil},
	{Key: "atom_stereo_count", Path: "AtomStereoCount", Default: nil},
	{Key: "defined_atom_stereo_count", Path: "DefinedAtomStereoCount", Default: nil},
	{Key: "undefined_atom_stereo_count", Path: "UndefinedAtomStereoCount", Default: nil},
	{Key: "bond_stereo_count", Path: "BondStereoCount", Default: nil},
	{Key: "defined_bond_stereo_count", Path: "DefinedBondStereoCount", Default: nil},
	{Key: "undefined_bond_stereo_count", Path: "UndefinedBondStereoCount", Default: nil},
	{Key: "covalent_unit_count", Path: "CovalentUnitCount", Default: nil},
}
