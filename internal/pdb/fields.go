package pdb

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// SearchHitFields shapes one search result_set entry.
var SearchHitFields = normalize.FieldSpec{
	{Key: "pdb_id", Path: "identifier", Default: ""},
	{Key: "score", Path: "score", Default: 0.0},
}

// EntryFields shapes a core entry document.
var EntryFields = normalize.FieldSpec{
	{Key: "pdb_id", Path: "rcsb_id", Default: ""},
	{Key: "title", Path: "struct.title", Default: "No title"},
	{Key: "keywords", Path: "struct_keywords.pdbx_keywords", Default: ""},
	{Key: "experimental_method", Path: "exptl.0.method", Default: "Unknown"},
	{Key: "resolution", Path: "rcsb_entry_info.resolution_combined.0", Default: nil},
	{Key: "deposit_date", Path: "rcsb_accession_info.deposit_date", Default: ""},
	{Key: "release_date", Path: "rcsb_accession_info.initial_release_date", Default: ""},
	{Key: "molecular_weight", Path: "rcsb_entry_info.molecular_weight", Default: nil},
	{Key: "polymer_entity_count", Path: "rcsb_entry_info.polymer_entity_count", Default: 0},
	{Key: "nonpolymer_entity_count", Path: "rcsb_entry_info.nonpolymer_entity_count", Default: 0},
	{Key: "deposited_atom_count", Path: "rcsb_entry_info.deposited_atom_count", Default: 0},
	{Key: "citation_title", Path: "rcsb_primary_citation.title", Default: ""},
	{Key: "doi", Path: "rcsb_primary_citation.pdbx_database_id_doi", Default: ""},
}

// QualityFields shapes the quality metrics carried by an entry document.
var QualityFields = normalize.FieldSpec{
	{Key: "pdb_id", Path: "rcsb_id", Default: ""},
	{Key: "experimental_method", Path: "exptl.0.method", Default: "Unknown"},
	{Key: "resolution", Path: "rcsb_entry_info.resolution_combined.0", Default: nil},
	{Key: "r_work", Path: "refine.0.ls_R_factor_R_work", Default: nil},
	{Key: "r_free", Path: "refine.0.ls_R_factor_R_free", Default: nil},
	{Key: "clashscore", Path: "pdbx_vrpt_summary.clashscore", Default: nil},
	{Key: "ramachandran_outliers_percent", Path: "pdbx_vrpt_summary.percent_ramachandran_outliers", Default: nil},
}

// LigandFields shapes a non-polymer entity document.
var LigandFields = normalize.FieldSpec{
	{Key: "entity_id", Path: "rcsb_nonpolymer_entity_container_identifiers.entity_id", Default: ""},
	{Key: "comp_id", Path: "pdbx_entity_nonpoly.comp_id", Default: ""},
	{Key: "name", Path: "pdbx_entity_nonpoly.name", Default: "Unknown ligand"},
	{Key: "description", Path: "rcsb_nonpolymer_entity.pdbx_description", Default: ""},
	{Key: "formula_weight", Path: "rcsb_nonpolymer_entity.formula_weight", Default: nil},
	{Key: "molecule_count", Path: "rcsb_nonpolymer_entity.pdbx_number_of_molecules", Default: 0},
}
