// Package identifiers recognizes the identifier schemes used by the
// chemistry and biology backends and reports which services accept them.
package identifiers

import (
	"regexp"
	"strings"
)

// Kind is an identifier scheme.
type Kind string

const (
	KindPDBID       Kind = "pdb_id"
	KindPubChemCID  Kind = "pubchem_cid"
	KindChEMBLID    Kind = "chembl_id"
	KindEnsemblGene Kind = "ensembl_gene"
	KindEFO         Kind = "efo"
	KindMONDO       Kind = "mondo"
	KindDrugBankID  Kind = "drugbank_id"
	KindInChIKey    Kind = "inchikey"
	KindUniProt     Kind = "uniprot"
	KindUnknown     Kind = ""
)

// Pre-compiled patterns
var (
	pdbIDPattern    = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)
	cidPattern      = regexp.MustCompile(`^[1-9][0-9]*$`)
	chemblPattern   = regexp.MustCompile(`^(?i)CHEMBL[0-9]+$`)
	ensemblPattern  = regexp.MustCompile(`^ENSG[0-9]{11}$`)
	efoPattern      = regexp.MustCompile(`^EFO_[0-9]{7}$`)
	mondoPattern    = regexp.MustCompile(`^MONDO_[0-9]{7}$`)
	drugbankPattern = regexp.MustCompile(`^DB[0-9]{5}$`)
	inchikeyPattern = regexp.MustCompile(`^[A-Z]{14}-[A-Z]{10}-[A-Z]$`)
	uniprotPattern  = regexp.MustCompile(`^([OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2})$`)
)

// Format describes one identifier scheme.
type Format struct {
	Kind     Kind
	Name     string
	Example  string
	Pattern  *regexp.Regexp
	Services []string
}

// Formats lists the known schemes in detection order. A 4-character
// all-digit string matches both the PDB and CID patterns; such strings are
// reported as CIDs because real PDB entries always contain a letter.
var Formats = []Format{
	{Kind: KindInChIKey, Name: "InChIKey", Example: "BSYNRYMUTXBXSQ-UHFFFAOYSA-N", Pattern: inchikeyPattern, Services: []string{"pubchem", "chembl"}},
	{Kind: KindChEMBLID, Name: "ChEMBL ID", Example: "CHEMBL25", Pattern: chemblPattern, Services: []string{"chembl"}},
	{Kind: KindEnsemblGene, Name: "Ensembl gene ID", Example: "ENSG00000157764", Pattern: ensemblPattern, Services: []string{"opentargets"}},
	{Kind: KindEFO, Name: "EFO disease ID", Example: "EFO_0000685", Pattern: efoPattern, Services: []string{"opentargets"}},
	{Kind: KindMONDO, Name: "MONDO disease ID", Example: "MONDO_0004975", Pattern: mondoPattern, Services: []string{"opentargets"}},
	{Kind: KindDrugBankID, Name: "DrugBank ID", Example: "DB00945", Pattern: drugbankPattern, Services: []string{"drugbank"}},
	{Kind: KindPubChemCID, Name: "PubChem CID", Example: "2244", Pattern: cidPattern, Services: []string{"pubchem"}},
	{Kind: KindPDBID, Name: "PDB ID", Example: "4HHB", Pattern: pdbIDPattern, Services: []string{"pdb"}},
	{Kind: KindUniProt, Name: "UniProt accession", Example: "P69905", Pattern: uniprotPattern, Services: []string{"pdb"}},
}

// Clean removes surrounding whitespace and embedded spaces.
func Clean(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), " ", "")
}

// Detect returns the scheme of id, or KindUnknown.
func Detect(id string) Kind {
	if f, ok := Lookup(id); ok {
		return f.Kind
	}
	return KindUnknown
}

// Lookup returns the format that id matches.
func Lookup(id string) (Format, bool) {
	cleaned := Clean(id)
	if cleaned == "" {
		return Format{}, false
	}
	for _, f := range Formats {
		if f.Pattern.MatchString(cleaned) {
			return f, true
		}
	}
	return Format{}, false
}

// FormatOf returns the format entry for kind.
func FormatOf(kind Kind) (Format, bool) {
	for _, f := range Formats {
		if f.Kind == kind {
			return f, true
		}
	}
	return Format{}, false
}

// Matches reports whether id is a well-formed identifier of kind.
func Matches(id string, kind Kind) bool {
	f, ok := FormatOf(kind)
	return ok && f.Pattern.MatchString(id)
}

// ValidPDBID reports whether id is a 4-character PDB identifier: one digit
// followed by three alphanumerics.
func ValidPDBID(id string) bool {
	return pdbIDPattern.MatchString(id)
}

// Normalize returns id in its canonical spelling for kind: PDB IDs and
// ChEMBL IDs are upper-cased, everything else is only cleaned.
func Normalize(id string, kind Kind) string {
	cleaned := Clean(id)
	switch kind {
	case KindPDBID, KindChEMBLID:
		return strings.ToUpper(cleaned)
	}
	return cleaned
}

// Result describes a detected identifier.
type Result struct {
	Identifier string   `json:"identifier"`
	Normalized string   `json:"normalized"`
	Kind       Kind     `json:"kind"`
	Name       string   `json:"name"`
	Services   []string `json:"services"`
	Recognized bool     `json:"recognized"`
	Message    string   `json:"message"`
}

// Describe detects id and reports the services that accept it.
func Describe(id string) Result {
	result := Result{
		Identifier: id,
		Normalized: Clean(id),
		Services:   []string{},
	}

	f, ok := Lookup(id)
	if !ok {
		result.Message = "Unrecognized identifier format"
		return result
	}

	result.Kind = f.Kind
	result.Name = f.Name
	result.Normalized = Normalize(id, f.Kind)
	result.Services = append(result.Services, f.Services...)
	result.Recognized = true
	result.Message = "Recognized " + f.Name
	return result
}
