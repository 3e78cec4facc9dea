package chembl

import "github.com/olgasafonova/chemdata-mcp-server/internal/normalize"

// SearchByNameArgs contains parameters for a molecule name search
type SearchByNameArgs struct {
	Name       string `json:"name" jsonschema:"Molecule name or synonym, e.g. aspirin" validate:"required"`
	ExactMatch bool   `json:"exact_match,omitempty" jsonschema:"Require an exact case-insensitive match (default false)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Page size per query (default 20, max 1000)"`
}

// SearchBySimilarityArgs contains parameters for a Tanimoto similarity search
type SearchBySimilarityArgs struct {
	SMILES     string `json:"smiles,omitempty" jsonschema:"Query structure as SMILES (smiles or chembl_id required)"`
	ChEMBLID   string `json:"chembl_id,omitempty" jsonschema:"Query molecule ChEMBL ID" validate:"omitempty,chemblid"`
	Similarity int    `json:"similarity,omitempty" jsonschema:"Similarity threshold 40-100 (default 70)" validate:"omitempty,min=40,max=100"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// SearchBySubstructureArgs contains parameters for a substructure search
type SearchBySubstructureArgs struct {
	SMILES string `json:"smiles" jsonschema:"Substructure as SMILES" validate:"required"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// SearchByInChIKeyArgs contains parameters for an InChIKey lookup
type SearchByInChIKeyArgs struct {
	InChIKey string `json:"inchi_key" jsonschema:"Standard InChIKey, e.g. BSYNRYMUTXBXSQ-UHFFFAOYSA-N" validate:"required,inchikey"`
}

// GetMoleculeArgs contains parameters for a molecule lookup
type GetMoleculeArgs struct {
	ChEMBLID string `json:"chembl_id" jsonschema:"Molecule ChEMBL ID, e.g. CHEMBL25" validate:"required,chemblid"`
}

// MoleculeResult is a single molecule
type MoleculeResult struct {
	Molecule normalize.Record `json:"molecule"`
}

// SearchApprovedDrugsArgs contains parameters for an approved drug search
type SearchApprovedDrugsArgs struct {
	SortByWeight bool   `json:"sort_by_weight,omitempty" jsonschema:"Order by molecular weight (default false)"`
	Indication   string `json:"indication,omitempty" jsonschema:"Disease or indication filter, e.g. lung cancer"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// SearchByPropertiesArgs contains physicochemical property filters
type SearchByPropertiesArgs struct {
	MinWeight    *float64 `json:"min_weight,omitempty" jsonschema:"Minimum molecular weight (free base)"`
	MaxWeight    *float64 `json:"max_weight,omitempty" jsonschema:"Maximum molecular weight (free base)"`
	MinLogP      *float64 `json:"min_logp,omitempty" jsonschema:"Minimum ALogP"`
	MaxLogP      *float64 `json:"max_logp,omitempty" jsonschema:"Maximum ALogP"`
	RO5Compliant bool     `json:"ro5_compliant,omitempty" jsonschema:"Only molecules without Rule-of-Five violations"`
	NamePattern  string   `json:"name_pattern,omitempty" jsonschema:"Substring of the preferred name, e.g. nib"`
	Limit        int      `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// MoleculesResult lists molecules
type MoleculesResult struct {
	TotalCount int                `json:"total_count"`
	Returned   int                `json:"returned"`
	Molecules  []normalize.Record `json:"molecules"`
}

// SearchTargetArgs contains parameters for a target search
type SearchTargetArgs struct {
	GeneName string `json:"gene_name" jsonschema:"Gene name or synonym, e.g. EGFR" validate:"required"`
	Organism string `json:"organism,omitempty" jsonschema:"Organism filter, e.g. Homo sapiens"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// TargetsResult lists targets
type TargetsResult struct {
	TotalCount int                `json:"total_count"`
	Returned   int                `json:"returned"`
	Targets    []normalize.Record `json:"targets"`
}

// ActivitiesByTargetArgs contains parameters for a target bioactivity search
type ActivitiesByTargetArgs struct {
	TargetChEMBLID string   `json:"target_chembl_id" jsonschema:"Target ChEMBL ID, e.g. CHEMBL203" validate:"required,chemblid"`
	AssayType      string   `json:"assay_type,omitempty" jsonschema:"B (binding), F (functional), A (ADMET), T (toxicity) or P (physchem)" validate:"omitempty,oneof=B F A T P U"`
	StandardType   string   `json:"standard_type,omitempty" jsonschema:"Activity type, e.g. IC50, Ki, EC50"`
	MinPChEMBL     *float64 `json:"min_pchembl,omitempty" jsonschema:"Minimum pChEMBL value"`
	Limit          int      `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// ActivitiesByMoleculeArgs contains parameters for a molecule bioactivity search
type ActivitiesByMoleculeArgs struct {
	MoleculeChEMBLID string `json:"molecule_chembl_id" jsonschema:"Molecule ChEMBL ID, e.g. CHEMBL25" validate:"required,chemblid"`
	RequirePChEMBL   bool   `json:"require_pchembl,omitempty" jsonschema:"Only activities with a pChEMBL value"`
	Limit            int    `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// ActivitiesResult lists bioactivities
type ActivitiesResult struct {
	TotalCount int                `json:"total_count"`
	Returned   int                `json:"returned"`
	Activities []normalize.Record `json:"activities"`
}

// SearchAssaysArgs contains parameters for an assay search
type SearchAssaysArgs struct {
	DescriptionContains string `json:"description_contains,omitempty" jsonschema:"Text contained in the assay description"`
	AssayType           string `json:"assay_type,omitempty" jsonschema:"B, F, A, T or P" validate:"omitempty,oneof=B F A T P U"`
	Organism            string `json:"organism,omitempty" jsonschema:"Assay organism, e.g. Homo sapiens"`
	Limit               int    `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// AssaysResult lists assays
type AssaysResult struct {
	TotalCount int                `json:"total_count"`
	Returned   int                `json:"returned"`
	Assays     []normalize.Record `json:"assays"`
}

// DocumentsByPubMedArgs contains parameters for a literature lookup
type DocumentsByPubMedArgs struct {
	PubMedIDs []int `json:"pubmed_ids" jsonschema:"PubMed IDs" validate:"required,min=1,max=100,dive,gt=0"`
}

// DocumentsResult lists documents
type DocumentsResult struct {
	TotalCount int                `json:"total_count"`
	Returned   int                `json:"returned"`
	Documents  []normalize.Record `json:"documents"`
}

// QueryResourceArgs contains parameters for a catalog resource listing
type QueryResourceArgs struct {
	Resource string            `json:"resource" jsonschema:"Catalog resource name, e.g. drug_indication or mechanism" validate:"required"`
	Filters  map[string]string `json:"filters,omitempty" jsonschema:"Exact-match filters keyed by the resource's filter fields"`
	Limit    int               `json:"limit,omitempty" jsonschema:"Page size (default 20, max 1000)"`
}

// ResourceResult lists items of one catalog resource as served by ChEMBL
type ResourceResult struct {
	Resource   string            `json:"resource"`
	Filters    map[string]string `json:"filters"`
	TotalCount int               `json:"total_count"`
	Returned   int               `json:"returned"`
	Items      []any             `json:"items"`
}

// StatusArgs takes no parameters
type StatusArgs struct{}

// StatusResult summarizes the ChEMBL web services status
type StatusResult struct {
	Status      string `json:"status"`
	DBVersion   string `json:"chembl_db_version"`
	ReleaseDate string `json:"chembl_release_date"`
	Activities  int64  `json:"activities"`
	Compounds   int64  `json:"distinct_compounds"`
	Targets     int64  `json:"targets"`
	Documents   int64  `json:"publications"`
}
