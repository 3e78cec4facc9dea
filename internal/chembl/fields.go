package chembl

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// MoleculeBasicFields shapes a molecule in list results.
var MoleculeBasicFields = normalize.FieldSpec{
	{Key: "molecule_chembl_id", Path: "molecule_chembl_id", Default: ""},
	{Key: "pref_name", Path: "pref_name", Default: nil},
	{Key: "max_phase", Path: "max_phase", Default: nil},
	{Key: "molecule_type", Path: "molecule_type", Default: nil},
	{Key: "canonical_smiles", Path: "molecule_structures.canonical_smiles", Default: nil},
	{Key: "standard_inchi_key", Path: "molecule_structures.standard_inchi_key", Default: nil},
	{Key: "molecular_weight", Path: "molecule_properties.full_mwt", Default: nil},
	{Key: "alogp", Path: "molecule_properties.alogp", Default: nil},
}

// SimilarityFields adds the similarity score to the basic molecule shape.
var SimilarityFields = append(append(normalize.FieldSpec{}, MoleculeBasicFields...),
	normalize.Field{Key: "similarity", Path: "similarity", Default: nil})

// MoleculeDetailedFields shapes a single molecule document.
var MoleculeDetailedFields = normalize.FieldSpec{
	{Key: "molecule_chembl_id", Path: "molecule_chembl_id", Default: ""},
	{Key: "pref_name", Path: "pref_name", Default: nil},
	{Key: "molecule_type", Path: "molecule_type", Default: nil},
	{Key: "max_phase", Path: "max_phase", Default: nil},
	{Key: "first_approval", Path: "first_approval", Default: nil},
	{Key: "oral", Path: "oral", Default: false},
	{Key: "therapeutic_flag", Path: "therapeutic_flag", Default: false},
	{Key: "natural_product", Path: "natural_product", Default: nil},
	{Key: "canonical_smiles", Path: "molecule_structures.canonical_smiles", Default: nil},
	{Key: "standard_inchi", Path: "molecule_structures.standard_inchi", Default: nil},
	{Key: "standard_inchi_key", Path: "molecule_structures.standard_inchi_key", Default: nil},
	{Key: "molecular_formula", Path: "molecule_properties.full_molformula", Default: nil},
	{Key: "molecular_weight", Path: "molecule_properties.full_mwt", Default: nil},
	{Key: "mw_freebase", Path: "molecule_properties.mw_freebase", Default: nil},
	{Key: "alogp", Path: "molecule_properties.alogp", Default: nil},
	{Key: "hba", Path: "molecule_properties.hba", Default: nil},
	{Key: "hbd", Path: "molecule_properties.hbd", Default: nil},
	{Key: "psa", Path: "molecule_properties.psa", Default: nil},
	{Key: "rtb", Path: "molecule_properties.rtb", Default: nil},
	{Key: "num_ro5_violations", Path: "molecule_properties.num_ro5_violations", Default: nil},
	{Key: "qed_weighted", Path: "molecule_properties.qed_weighted", Default: nil},
	{Key: "atc_classifications", Path: "atc_classifications", Default: []any{}},
	{Key: "synonyms", Path: "molecule_synonyms.#.molecule_synonym", Default: []any{}},
}

// TargetFields shapes a target.
var TargetFields = normalize.FieldSpec{
	{Key: "target_chembl_id", Path: "target_chembl_id", Default: ""},
	{Key: "pref_name", Path: "pref_name", Default: nil},
	{Key: "target_type", Path: "target_type", Default: nil},
	{Key: "organism", Path: "organism", Default: nil},
	{Key: "tax_id", Path: "tax_id", Default: nil},
	{Key: "accessions", Path: "target_components.#.accession", Default: []any{}},
}

// ActivityFields shapes a bioactivity measurement.
var ActivityFields = normalize.FieldSpec{
	{Key: "activity_id", Path: "activity_id", Default: nil},
	{Key: "molecule_chembl_id", Path: "molecule_chembl_id", Default: ""},
	{Key: "molecule_pref_name", Path: "molecule_pref_name", Default: nil},
	{Key: "target_chembl_id", Path: "target_chembl_id", Default: ""},
	{Key: "target_pref_name", Path: "target_pref_name", Default: nil},
	{Key: "assay_chembl_id", Path: "assay_chembl_id", Default: ""},
	{Key: "assay_type", Path: "assay_type", Default: nil},
	{Key: "standard_type", Path: "standard_type", Default: nil},
	{Key: "standard_relation", Path: "standard_relation", Default: nil},
	{Key: "standard_value", Path: "standard_value", Default: nil},
	{Key: "standard_units", Path: "standard_units", Default: nil},
	{Key: "pchembl_value", Path: "pchembl_value", Default: nil},
	{Key: "document_chembl_id", Path: "document_chembl_id", Default: nil},
}

// AssayFields shapes an assay.
var AssayFields = normalize.FieldSpec{
	{Key: "assay_chembl_id", Path: "assay_chembl_id", Default: ""},
	{Key: "description", Path: "description", Default: nil},
	{Key: "assay_type", Path: "assay_type", Default: nil},
	{Key: "assay_type_description", Path: "assay_type_description", Default: nil},
	{Key: "assay_organism", Path: "assay_organism", Default: nil},
	{Key: "target_chembl_id", Path: "target_chembl_id", Default: nil},
	{Key: "confidence_score", Path: "confidence_score", Default: nil},
	{Key: "document_chembl_id", Path: "document_chembl_id", Default: nil},
}

// DocumentFields shapes a literature document.
var DocumentFields = normalize.FieldSpec{
	{Key: "document_chembl_id", Path: "document_chembl_id", Default: ""},
	{Key: "pubmed_id", Path: "pubmed_id", Default: nil},
	{Key: "title", Path: "title", Default: nil},
	{Key: "journal", Path: "journal", Default: nil},
	{Key: "year", Path: "year", Default: nil},
	{Key: "doi", Path: "doi", Default: nil},
}
