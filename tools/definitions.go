package tools

// AllTools contains all tool specifications for the chemistry data MCP server.
// Tools are organized by backend service.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// RCSB PROTEIN DATA BANK
	// ==========================================================================
	{
		Name:     "search_pdb_structures",
		Method:   "PDBSearchStructures",
		Title:    "Search PDB Structures",
		Category: "search",
		Service:  "pdb",
		Description: `Search the Protein Data Bank by keyword, protein name or PDB ID.

USE WHEN: User asks "find crystal structures of X", "which PDB entries show hemoglobin", "structures solved by cryo-EM below 3 angstrom".

NOT FOR: Sequence similarity (use search_pdb_by_sequence). UniProt cross-references (use search_pdb_by_uniprot).

PARAMETERS:
- query: Search text (required)
- limit: Max results (default 25, max 1000)
- sort_by: score (default), release_date, resolution
- experimental_method: X-RAY DIFFRACTION, SOLUTION NMR, ELECTRON MICROSCOPY
- resolution_range: "min-max" in angstrom, e.g. "1.0-2.0" (ignored if malformed)

RETURNS: PDB IDs with relevance scores and the total hit count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_pdb_structure_info",
		Method:   "PDBGetStructureInfo",
		Title:    "Get PDB Structure Info",
		Category: "read",
		Service:  "pdb",
		Description: `Get details for one PDB entry.

USE WHEN: User asks "what is 4HHB", "resolution and method of entry 1CRN", "show me the mmCIF header for 6LU7".

NOT FOR: Downloading coordinates for modeling (use download_pdb_structure).

PARAMETERS:
- pdb_id: 4-character PDB ID, e.g. 4HHB (required)
- format: json (default, parsed entry), pdb, mmcif or xml (raw file text)

RETURNS: Title, method, resolution, dates, entity counts and citation; or the raw file.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "download_pdb_structure",
		Method:   "PDBDownloadStructure",
		Title:    "Download PDB Structure",
		Category: "read",
		Service:  "pdb",
		Description: `Download the coordinate file of an entry or one of its biological assemblies.

USE WHEN: User asks "download 1TUP", "get the PDB file for assembly 1 of 4HHB".

NOT FOR: Metadata only (use get_pdb_structure_info).

PARAMETERS:
- pdb_id: 4-character PDB ID (required)
- format: pdb (default), mmcif or xml
- assembly_id: Biological assembly number (optional)

RETURNS: Filename, size and file content.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_pdb_by_uniprot",
		Method:   "PDBSearchByUniProt",
		Title:    "Search PDB by UniProt",
		Category: "search",
		Service:  "pdb",
		Description: `Find PDB entries that contain a given UniProt protein.

USE WHEN: User gives a UniProt accession such as P69905 and wants its structures.

NOT FOR: Free-text protein names (use search_pdb_structures).

PARAMETERS:
- uniprot_id: UniProt accession (required)
- limit: Max results (default 25)

RETURNS: PDB IDs with scores.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_pdb_structure_quality",
		Method:   "PDBGetQuality",
		Title:    "Get PDB Structure Quality",
		Category: "read",
		Service:  "pdb",
		Description: `Get quality metrics for a PDB entry.

USE WHEN: User asks "how good is structure 1CRN", "R-free of 4HHB", "clashscore".

PARAMETERS:
- pdb_id: 4-character PDB ID (required)

RETURNS: Resolution, R-work, R-free, clashscore, Ramachandran outliers and the validation summary when available.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_pdb_ligands",
		Method:   "PDBGetLigands",
		Title:    "Get PDB Ligands",
		Category: "read",
		Service:  "pdb",
		Description: `List ligands and other non-polymer entities bound in a PDB entry.

USE WHEN: User asks "what ligands are in 3HTB", "is heme bound in 4HHB".

PARAMETERS:
- pdb_id: 4-character PDB ID (required)

RETURNS: Entity ID, chemical component ID, name, formula weight and copy count per ligand.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_pdb_by_sequence",
		Method:   "PDBSearchBySequence",
		Title:    "Search PDB by Sequence",
		Category: "search",
		Service:  "pdb",
		Description: `Find structures with a protein sequence similar to the one given.

USE WHEN: User pastes an amino-acid sequence or FASTA record and asks for homologous structures.

NOT FOR: Keyword search (use search_pdb_structures).

PARAMETERS:
- sequence: Protein sequence, plain or FASTA (required)
- limit: Max results (default 25)
- identity_cutoff: 0.0-1.0 (default 0.9)

RETURNS: PDB IDs with scores. Slower than other searches.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// PUBCHEM
	// ==========================================================================
	{
		Name:     "search_pubchem_by_name",
		Method:   "PubChemSearchByName",
		Title:    "Search PubChem by Name",
		Category: "search",
		Service:  "pubchem",
		Description: `Look up compounds in PubChem by common or IUPAC name.

USE WHEN: User asks "molecular weight of caffeine", "find aspirin in PubChem".

NOT FOR: Structure input (use search_pubchem_by_smiles).

PARAMETERS:
- name: Compound name (required)
- max_results: Max compounds (default 5)

RETURNS: CID, formula, weights, SMILES, InChI/InChIKey, XLogP, TPSA and counts.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_pubchem_by_smiles",
		Method:   "PubChemSearchBySMILES",
		Title:    "Search PubChem by SMILES",
		Category: "search",
		Service:  "pubchem",
		Description: `Look up a compound in PubChem by SMILES.

USE WHEN: User gives a SMILES string and wants the matching PubChem record.

PARAMETERS:
- smiles: SMILES string (required)
- max_results: Max compounds (default 5)

RETURNS: Compound property records.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_pubchem_compound_by_cid",
		Method:   "PubChemGetByCID",
		Title:    "Get PubChem Compound",
		Category: "read",
		Service:  "pubchem",
		Description: `Get a PubChem compound and its synonyms by CID.

USE WHEN: User gives a PubChem CID such as 2244.

PARAMETERS:
- cid: PubChem compound ID (required)

RETURNS: The compound property record and its synonyms.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_pubchem_advanced",
		Method:   "PubChemAdvancedSearch",
		Title:    "Advanced PubChem Search",
		Category: "search",
		Service:  "pubchem",
		Description: `Search PubChem using whichever identifier the user has.

USE WHEN: The input may be a CID, SMILES, name or molecular formula.

PARAMETERS (first non-empty wins: cid, smiles, name, formula):
- cid, smiles, name, formula: At least one is required
- max_results: Max compounds (default 5)

RETURNS: Compound property records.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// CHEMBL
	// ==========================================================================
	{
		Name:     "search_molecule_by_name",
		Method:   "ChEMBLSearchByName",
		Title:    "Search ChEMBL Molecules by Name",
		Category: "search",
		Service:  "chembl",
		Description: `Search ChEMBL molecules by preferred name and synonyms.

USE WHEN: User asks "find imatinib in ChEMBL", "ChEMBL ID of aspirin".

NOT FOR: Structure queries (use search_molecule_by_similarity or search_molecule_by_substructure).

PARAMETERS:
- name: Molecule name (required)
- exact_match: Case-insensitive exact match instead of substring (default false)

RETURNS: Molecules matched by preferred name, then by synonym.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_molecule_by_similarity",
		Method:   "ChEMBLSearchBySimilarity",
		Title:    "ChEMBL Similarity Search",
		Category: "search",
		Service:  "chembl",
		Description: `Find ChEMBL molecules structurally similar to a query structure.

USE WHEN: User asks "compounds similar to this SMILES", "analogues of CHEMBL25".

PARAMETERS:
- smiles or chembl_id: Query structure (one required)
- similarity: Tanimoto percentage 40-100 (default 70)

RETURNS: Molecules with similarity scores.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_molecule_by_substructure",
		Method:   "ChEMBLSearchBySubstructure",
		Title:    "ChEMBL Substructure Search",
		Category: "search",
		Service:  "chembl",
		Description: `Find ChEMBL molecules containing a substructure.

USE WHEN: User asks "molecules containing a benzimidazole", gives a SMILES fragment.

PARAMETERS:
- smiles: Substructure SMILES (required)

RETURNS: Matching molecules.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_molecule_by_inchi_key",
		Method:   "ChEMBLSearchByInChIKey",
		Title:    "ChEMBL InChIKey Lookup",
		Category: "search",
		Service:  "chembl",
		Description: `Find the ChEMBL molecule with a standard InChIKey.

USE WHEN: User gives a 27-character InChIKey.

PARAMETERS:
- inchi_key: Standard InChIKey (required)

RETURNS: Matching molecules.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_molecule",
		Method:   "ChEMBLGetMolecule",
		Title:    "Get ChEMBL Molecule",
		Category: "read",
		Service:  "chembl",
		Description: `Get full details of a ChEMBL molecule.

USE WHEN: User gives a ChEMBL ID such as CHEMBL25.

PARAMETERS:
- chembl_id: ChEMBL molecule ID (required)

RETURNS: Names, structure, properties, development phase, flags and synonyms.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_approved_drugs",
		Method:   "ChEMBLSearchApprovedDrugs",
		Title:    "Search Approved Drugs",
		Category: "search",
		Service:  "chembl",
		Description: `List approved drugs (max phase 4) in ChEMBL, optionally for an indication.

USE WHEN: User asks "approved drugs for asthma", "list approved small molecules by weight".

NOT FOR: DrugBank data (use find_drugs_by_indication).

PARAMETERS:
- indication: Disease term matched against EFO terms (optional)
- sort_by_weight: Sort by molecular weight (default false)

RETURNS: Approved molecules.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_molecules_by_properties",
		Method:   "ChEMBLSearchByProperties",
		Title:    "Search Molecules by Properties",
		Category: "search",
		Service:  "chembl",
		Description: `Filter ChEMBL molecules by molecular weight, logP, Ro5 compliance and name.

USE WHEN: User asks "molecules between 300 and 500 Da with logP under 3".

PARAMETERS (all optional; none given returns an empty list):
- min_weight, max_weight, min_logp, max_logp
- ro5_compliant: Only molecules without Rule-of-Five violations
- name_pattern: Substring of the preferred name

RETURNS: Matching molecules.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_target_by_gene_name",
		Method:   "ChEMBLSearchTargetByGene",
		Title:    "Search ChEMBL Targets",
		Category: "search",
		Service:  "chembl",
		Description: `Find ChEMBL targets by gene symbol.

USE WHEN: User asks "ChEMBL target for EGFR", "human BRAF target ID".

NOT FOR: Open Targets gene data (use search_targets).

PARAMETERS:
- gene_name: Gene symbol (required)
- organism: Organism filter, e.g. Homo sapiens (optional)

RETURNS: Target IDs, names, types, organisms and UniProt accessions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_activities_by_target",
		Method:   "ChEMBLActivitiesByTarget",
		Title:    "Bioactivities by Target",
		Category: "search",
		Service:  "chembl",
		Description: `List bioactivity measurements against a ChEMBL target.

USE WHEN: User asks "IC50 values for CHEMBL203", "potent binders of this target".

PARAMETERS:
- target_chembl_id: ChEMBL target ID (required)
- assay_type: B, F, A, T, P or U (optional)
- standard_type: e.g. IC50, Ki (optional)
- min_pchembl: Minimum pChEMBL value (optional)

RETURNS: Activities with molecule, type, value, units and pChEMBL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_activities_by_molecule",
		Method:   "ChEMBLActivitiesByMolecule",
		Title:    "Bioactivities by Molecule",
		Category: "search",
		Service:  "chembl",
		Description: `List bioactivity measurements for a ChEMBL molecule.

USE WHEN: User asks "what targets does CHEMBL25 hit", "activity profile of imatinib".

PARAMETERS:
- molecule_chembl_id: ChEMBL molecule ID (required)
- require_pchembl: Only activities with a pChEMBL value (default false)

RETURNS: Activities with target, type, value and pChEMBL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_assays",
		Method:   "ChEMBLSearchAssays",
		Title:    "Search ChEMBL Assays",
		Category: "search",
		Service:  "chembl",
		Description: `Search ChEMBL assays by description, type and organism.

USE WHEN: User asks "kinase inhibition assays in mouse".

PARAMETERS (all optional; none given returns an empty list):
- description_contains, assay_type, organism

RETURNS: Assay IDs, descriptions, types, organisms and targets.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_documents_by_pubmed",
		Method:   "ChEMBLDocumentsByPubMed",
		Title:    "ChEMBL Documents by PubMed ID",
		Category: "search",
		Service:  "chembl",
		Description: `Find ChEMBL source documents for PubMed IDs.

USE WHEN: User has PubMed IDs and wants the ChEMBL documents that extracted data from them.

PARAMETERS:
- pubmed_ids: 1-100 PubMed IDs (required)

RETURNS: Document IDs, titles, journals, years and DOIs.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "query_chembl_resource",
		Method:   "ChEMBLQueryResource",
		Title:    "Query a ChEMBL Resource",
		Category: "search",
		Service:  "chembl",
		Description: `List records of one ChEMBL resource by exact filters. Items are returned as ChEMBL serves them.

USE WHEN: User needs ChEMBL reference data the dedicated tools do not cover, such as mechanisms, drug warnings, ATC classes, cell lines or tissues.

NOT FOR: Molecule, target, activity or assay searches with richer filters (use the dedicated ChEMBL tools).

RESOURCES (resource: required filters):
- activity: assay_chembl_id
- activity_supplementary_data_by_activity: activity_chembl_id
- assay: assay_type
- assay_class: assay_class_type
- atc_class: level1
- binding_site: site_name
- biotherapeutic: biotherapeutic_type
- cell_line: cell_line_name
- chembl_id_lookup: available_type, q
- chembl_release: none
- compound_record: compound_name
- compound_structural_alert: alert_name
- description: description_type
- document: journal
- drug: drug_type
- drug_indication: mesh_heading
- drug_warning: meddra_term
- go_slim: go_slim_term
- mechanism: mechanism_of_action
- molecule: molecule_type
- molecule_form: form_description
- organism: tax_id
- protein_classification: protein_class_name
- source: source_description
- target: target_type
- target_component: component_type
- target_relation: relationship_type
- tissue: tissue_name
- xref_source: xref_name

PARAMETERS:
- resource: Resource name from the list above (required)
- filters: Object of filter field to value; every required filter must be given
- limit: Page size (default 20, max 1000)

RETURNS: The resource, applied filters, total count and raw items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_chembl_status",
		Method:   "ChEMBLStatus",
		Title:    "ChEMBL Service Status",
		Category: "read",
		Service:  "chembl",
		Description: `Report the ChEMBL web services status and the database release they serve.

USE WHEN: User asks which ChEMBL release is current or whether ChEMBL is up.

RETURNS: Status, ChEMBL version, release date and record counts.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// OPEN TARGETS
	// ==========================================================================
	{
		Name:     "search_targets",
		Method:   "OTSearchTargets",
		Title:    "Search Open Targets Genes",
		Category: "search",
		Service:  "opentargets",
		Description: `Search Open Targets for gene targets.

USE WHEN: User asks "Ensembl ID of BRAF", "find target KRAS".

PARAMETERS:
- query: Search text (required)
- max_results: Max hits (default 10)

RETURNS: Target IDs, names, descriptions and the total hit count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_diseases",
		Method:   "OTSearchDiseases",
		Title:    "Search Open Targets Diseases",
		Category: "search",
		Service:  "opentargets",
		Description: `Search Open Targets for diseases and phenotypes.

USE WHEN: User asks "EFO ID for asthma", "find disease Alzheimer".

PARAMETERS:
- query: Search text (required)
- max_results: Max hits (default 10)

RETURNS: Disease IDs, names and descriptions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_drugs",
		Method:   "OTSearchDrugs",
		Title:    "Search Open Targets Drugs",
		Category: "search",
		Service:  "opentargets",
		Description: `Search Open Targets for drugs.

USE WHEN: User asks about a drug in the context of targets and diseases.

NOT FOR: DrugBank records (use search_drugbank_drugs).

PARAMETERS:
- query: Search text (required)
- max_results: Max hits (default 10)

RETURNS: Drug IDs, names and descriptions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_target_details",
		Method:   "OTGetTargetDetails",
		Title:    "Get Target Details",
		Category: "read",
		Service:  "opentargets",
		Description: `Get an Open Targets gene target by Ensembl gene ID.

USE WHEN: User gives an ID such as ENSG00000157764.

PARAMETERS:
- target_id: Ensembl gene ID (required)

RETURNS: Symbol, name, biotype, description and genomic location.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_target_associated_diseases",
		Method:   "OTTargetDiseases",
		Title:    "Diseases Associated with Target",
		Category: "analysis",
		Service:  "opentargets",
		Description: `List diseases associated with a gene target, ranked by association score.

USE WHEN: User asks "what diseases is BRAF linked to".

PARAMETERS:
- target_id: Ensembl gene ID (required)
- max_results: Max associations (default 10)

RETURNS: Disease IDs, names and scores.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_disease_associated_targets",
		Method:   "OTDiseaseTargets",
		Title:    "Targets Associated with Disease",
		Category: "analysis",
		Service:  "opentargets",
		Description: `List gene targets associated with a disease, ranked by association score.

USE WHEN: User asks "top targets for type 2 diabetes".

PARAMETERS:
- disease_id: EFO or MONDO ID (required)
- max_results: Max associations (default 10)

RETURNS: Target IDs, symbols, names and scores.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SURECHEMBL
	// ==========================================================================
	{
		Name:     "search_patents",
		Method:   "SCSearchPatents",
		Title:    "Search Patents",
		Category: "search",
		Service:  "surechembl",
		Description: `Full-text search over chemistry patents.

USE WHEN: User asks "patents on KRAS inhibitors", "prior art for this compound class".

PARAMETERS:
- query: Keywords (required)
- limit: Results per page (default 25)
- offset: Results to skip (default 0)
- patent_offices: Office filter (default US OR EP OR WO OR JP OR CN)

RETURNS: Matching documents, total hits and paging.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_document_content",
		Method:   "SCGetDocumentContent",
		Title:    "Get Patent Document",
		Category: "read",
		Service:  "surechembl",
		Description: `Get a patent document with its annotated text.

USE WHEN: User gives a document ID such as WO-2020096695-A1.

PARAMETERS:
- document_id: Patent document ID (required)

RETURNS: Bibliographic data, abstracts, descriptions and annotations.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_patent_family",
		Method:   "SCGetPatentFamily",
		Title:    "Get Patent Family",
		Category: "read",
		Service:  "surechembl",
		Description: `List the family members of a patent.

USE WHEN: User asks "where else was this patent filed".

PARAMETERS:
- patent_id: Patent ID (required)

RETURNS: Family member documents.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_by_patent_number",
		Method:   "SCSearchByPatentNumber",
		Title:    "Search by Patent Number",
		Category: "search",
		Service:  "surechembl",
		Description: `Look up a patent by publication number.

USE WHEN: User gives a patent or publication number.

PARAMETERS:
- patent_number: Patent or publication number (required)

RETURNS: The patent document.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_chemicals_by_name",
		Method:   "SCSearchChemicalsByName",
		Title:    "Search Patent Chemicals",
		Category: "search",
		Service:  "surechembl",
		Description: `Find chemicals mentioned in patents by name or synonym.

USE WHEN: User asks "SureChEMBL ID of sotorasib".

PARAMETERS:
- name: Chemical name (required)
- limit: Max chemicals (default 25)

RETURNS: Chemical IDs, names, SMILES, InChIKeys and patent frequency.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_chemical_by_id",
		Method:   "SCGetChemicalByID",
		Title:    "Get Patent Chemical",
		Category: "read",
		Service:  "surechembl",
		Description: `Get a SureChEMBL chemical by ID.

PARAMETERS:
- chemical_id: Numeric SureChEMBL chemical ID (required)

RETURNS: Name, SMILES, InChIKey, molecular weight and patent frequency.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_chemical_properties",
		Method:   "SCGetChemicalProperties",
		Title:    "Get Chemical Properties",
		Category: "read",
		Service:  "surechembl",
		Description: `Get molecular descriptors of a SureChEMBL chemical.

PARAMETERS:
- chemical_id: Numeric SureChEMBL chemical ID (required)

RETURNS: Weight, logP, donor/acceptor and ring counts, rotatable bonds and structural alerts.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "search_by_smiles",
		Method:   "SCSearchBySMILES",
		Title:    "Patent SMILES Search",
		Category: "search",
		Service:  "surechembl",
		Description: `SMILES search in patents. The public SureChEMBL API does not offer it; this returns alternatives.

NOT FOR: Structure search in general (use search_molecule_by_substructure or search_pubchem_by_smiles).

PARAMETERS:
- smiles: SMILES string (required)

RETURNS: An explanation and suggested tools.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "search_by_inchi",
		Method:   "SCSearchByInChI",
		Title:    "Patent InChI Search",
		Category: "search",
		Service:  "surechembl",
		Description: `InChI search in patents. The public SureChEMBL API does not offer it; this returns alternatives.

PARAMETERS:
- inchi: InChI or InChIKey (required)

RETURNS: An explanation and suggested tools.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "search_similar_structures",
		Method:   "SCSearchSimilarStructures",
		Title:    "Patent Similarity Search",
		Category: "search",
		Service:  "surechembl",
		Description: `Similarity search in patents. The public SureChEMBL API does not offer it; this resolves the reference chemical and returns alternatives.

PARAMETERS:
- reference_id: Reference chemical ID (required)
- threshold: 0.0-1.0 (default 0.7)
- limit: Maximum results (default 25)

RETURNS: The reference chemical (id, name, SMILES, molecular weight), the echoed search parameters, an explanation and suggested searches. An unknown reference_id is an error.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "get_chemical_image",
		Method:   "SCGetChemicalImage",
		Title:    "Render Chemical Structure",
		Category: "read",
		Service:  "surechembl",
		Description: `Render a chemical structure as a PNG image.

USE WHEN: User asks "draw this molecule", "show the structure of CCO".

PARAMETERS:
- structure: SMILES or other notation (required)
- height, width: Pixels (default 200)

RETURNS: The PNG as a base64 data URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "export_chemicals",
		Method:   "SCExportChemicals",
		Title:    "Export Chemicals",
		Category: "read",
		Service:  "surechembl",
		Description: `Bulk export SureChEMBL chemical data.

PARAMETERS:
- chemical_ids: 1-100 chemical IDs (required)
- output_type: csv (default) or xml
- kind: cid (default) or smiles

RETURNS: The export archive as a base64 data URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "analyze_patent_chemistry",
		Method:   "SCAnalyzePatentChemistry",
		Title:    "Analyze Patent Chemistry",
		Category: "analysis",
		Service:  "surechembl",
		Description: `Summarize the entity annotations of a patent document.

USE WHEN: User asks "which chemicals does this patent mention most".

NOT FOR: Section and bibliographic statistics (use get_patent_statistics).

PARAMETERS:
- document_id: Patent document ID (required)

RETURNS: Annotation count, unique names, categories, per-name frequency, top 10, languages and sources.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_chemical_frequency",
		Method:   "SCGetChemicalFrequency",
		Title:    "Chemical Patent Frequency",
		Category: "analysis",
		Service:  "surechembl",
		Description: `Classify how often a chemical occurs across all patents.

USE WHEN: User asks "is this compound common in patents", "how novel is this chemical".

PARAMETERS:
- chemical_id: Numeric SureChEMBL chemical ID (required)

RETURNS: Global frequency, frequency category and a rarity score from 0 to 1.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_patent_statistics",
		Method:   "SCGetPatentStatistics",
		Title:    "Patent Statistics",
		Category: "analysis",
		Service:  "surechembl",
		Description: `Statistical overview of a patent document.

USE WHEN: User asks "how many chemicals are annotated in this patent", "summary of WO-2020096695-A1".

PARAMETERS:
- document_id: Patent document ID (required)
- include_annotations: Include annotation detail (default true)

RETURNS: Title, publication number and date, section counts, chemical annotation statistics and categories.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// DRUGBANK
	// ==========================================================================
	{
		Name:     "search_drugbank_drugs",
		Method:   "DBSearchDrugs",
		Title:    "Search DrugBank",
		Category: "search",
		Service:  "drugbank",
		Description: `Search DrugBank drugs by name. Requires a DrugBank API key.

USE WHEN: User asks "DrugBank entry for aspirin".

PARAMETERS:
- query: Drug name (required)
- max_results: Max drugs (default 10)

RETURNS: DrugBank IDs, names, CAS numbers, synonyms and groups.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_drugbank_drug_details",
		Method:   "DBGetDrugDetails",
		Title:    "Get DrugBank Drug",
		Category: "read",
		Service:  "drugbank",
		Description: `Get a DrugBank drug by ID. Requires a DrugBank API key.

PARAMETERS:
- drug_id: DrugBank ID, e.g. DB00945 (required)

RETURNS: Description, indication, mechanism of action, pharmacodynamics, groups and synonyms.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "find_drugs_by_indication",
		Method:   "DBFindByIndication",
		Title:    "Find Drugs by Indication",
		Category: "search",
		Service:  "drugbank",
		Description: `Find DrugBank drugs used for a condition. Requires a DrugBank API key.

NOT FOR: ChEMBL approved drugs (use search_approved_drugs).

PARAMETERS:
- indication: Condition or disease (required)
- max_results: Max drugs (default 10)

RETURNS: Drug records.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "find_drugs_by_category",
		Method:   "DBFindByCategory",
		Title:    "Find Drugs by Category",
		Category: "search",
		Service:  "drugbank",
		Description: `Find DrugBank drugs in a category such as antibiotic. Requires a DrugBank API key.

PARAMETERS:
- category: Drug category (required)
- max_results: Max drugs (default 10)

RETURNS: Drug records.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_drug_interactions",
		Method:   "DBGetInteractions",
		Title:    "Get Drug Interactions",
		Category: "read",
		Service:  "drugbank",
		Description: `List drug-drug interactions of a DrugBank drug. Requires a DrugBank API key.

USE WHEN: User asks "what interacts with warfarin".

PARAMETERS:
- drug_id: DrugBank ID (required)
- max_results: Max interactions (default 10)

RETURNS: Interacting drug names and IDs with descriptions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// UTILITY
	// ==========================================================================
	{
		Name:     "detect_identifier",
		Method:   "DetectIdentifier",
		Title:    "Detect Identifier",
		Category: "utility",
		Service:  ServiceUtility,
		Description: `Recognize an identifier and report which services accept it. Makes no network call.

USE WHEN: The user gives an ID and it is unclear which tool takes it (4HHB, 2244, CHEMBL25, ENSG..., EFO_..., DB00945, InChIKey, UniProt).

PARAMETERS:
- identifier: The identifier (required)

RETURNS: Kind, normalized form and accepting services.`,
		ReadOnly:   true,
		Idempotent: true,
	},
}
