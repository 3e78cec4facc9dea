package pdb

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// SearchStructuresArgs contains parameters for a keyword structure search
type SearchStructuresArgs struct {
	Query              string `json:"query" jsonschema:"Search text: protein name, keyword or PDB ID" validate:"required"`
	Limit              int    `json:"limit,omitempty" jsonschema:"Number of results (1-1000, default 25)"`
	SortBy             string `json:"sort_by,omitempty" jsonschema:"Sort field such as score, release_date or resolution (default score)"`
	ExperimentalMethod string `json:"experimental_method,omitempty" jsonschema:"Filter by method: X-RAY DIFFRACTION, SOLUTION NMR, ELECTRON MICROSCOPY"`
	ResolutionRange    string `json:"resolution_range,omitempty" jsonschema:"Resolution range in angstrom as min-max, e.g. 1.0-2.0"`
}

// SearchResult is the result of any structure search
type SearchResult struct {
	Query      string             `json:"query"`
	TotalCount int                `json:"total_count"`
	Returned   int                `json:"returned"`
	Structures []normalize.Record `json:"structures"`
}

// GetStructureInfoArgs contains parameters for fetching one entry
type GetStructureInfoArgs struct {
	PDBID  string `json:"pdb_id" jsonschema:"4-character PDB ID, e.g. 4HHB" validate:"required,pdbid"`
	Format string `json:"format,omitempty" jsonschema:"json (parsed entry, default), pdb, mmcif or xml (raw file text)" validate:"omitempty,oneof=json pdb mmcif xml"`
}

// GetStructureInfoResult carries either the parsed entry or the file text
type GetStructureInfoResult struct {
	PDBID  string            `json:"pdb_id"`
	Format string            `json:"format"`
	Entry  *normalize.Record `json:"entry,omitempty"`
	Data   string            `json:"data,omitempty"`
}

// DownloadStructureArgs contains parameters for downloading coordinates
type DownloadStructureArgs struct {
	PDBID      string `json:"pdb_id" jsonschema:"4-character PDB ID" validate:"required,pdbid"`
	Format     string `json:"format,omitempty" jsonschema:"pdb (default), mmcif or xml" validate:"omitempty,oneof=pdb mmcif xml"`
	AssemblyID string `json:"assembly_id,omitempty" jsonschema:"Biological assembly number" validate:"omitempty,numeric"`
}

// DownloadStructureResult is a downloaded structure file
type DownloadStructureResult struct {
	PDBID      string `json:"pdb_id"`
	Format     string `json:"format"`
	AssemblyID string `json:"assembly_id,omitempty"`
	Filename   string `json:"filename"`
	Size       int    `json:"size"`
	Content    string `json:"content"`
}

// SearchByUniProtArgs contains parameters for a UniProt cross-reference search
type SearchByUniProtArgs struct {
	UniProtID string `json:"uniprot_id" jsonschema:"UniProt accession, e.g. P69905" validate:"required"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Number of results (1-1000, default 25)"`
}

// GetQualityArgs contains parameters for quality metrics
type GetQualityArgs struct {
	PDBID string `json:"pdb_id" jsonschema:"4-character PDB ID" validate:"required,pdbid"`
}

// GetQualityResult holds quality metrics and optional validation data
type GetQualityResult struct {
	Quality             normalize.Record `json:"quality"`
	ValidationAvailable bool             `json:"validation_available"`
	ValidationData      any              `json:"validation_data,omitempty"`
}

// GetLigandsArgs contains parameters for ligand lookup
type GetLigandsArgs struct {
	PDBID string `json:"pdb_id" jsonschema:"4-character PDB ID" validate:"required,pdbid"`
}

// GetLigandsResult lists the non-polymer entities of an entry
type GetLigandsResult struct {
	PDBID   string             `json:"pdb_id"`
	Count   int                `json:"count"`
	Ligands []normalize.Record `json:"ligands"`
}

// SearchBySequenceArgs contains parameters for a sequence similarity search
type SearchBySequenceArgs struct {
	Sequence       string   `json:"sequence" jsonschema:"Protein sequence, plain or FASTA" validate:"required"`
	Limit          int      `json:"limit,omitempty" jsonschema:"Number of results (1-1000, default 25)"`
	IdentityCutoff *float64 `json:"identity_cutoff,omitempty" jsonschema:"Sequence identity cutoff, 0.0-1.0 (default 0.9)"`
}
