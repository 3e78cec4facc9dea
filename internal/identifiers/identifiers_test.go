package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPDBID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"1ABC", true},
		{"4hhb", true},
		{"9XYZ", true},
		{"ABC1", false},
		{"12345", false},
		{"", false},
		{"1AB", false},
		{"1AB-", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPDBID(tt.id))
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
	}{
		{"1ABC", KindPDBID},
		{" 4hhb ", KindPDBID},
		{"CHEMBL25", KindChEMBLID},
		{"chembl1201585", KindChEMBLID},
		{"ENSG00000157764", KindEnsemblGene},
		{"EFO_0000685", KindEFO},
		{"MONDO_0004975", KindMONDO},
		{"DB00001", KindDrugBankID},
		{"BSYNRYMUTXBXSQ-UHFFFAOYSA-N", KindInChIKey},
		{"2244", KindPubChemCID},
		{"P69905", KindUniProt},
		{"A0A023GPI8", KindUniProt},
		{"aspirin", KindUnknown},
		{"", KindUnknown},
		{"DB1", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.id))
		})
	}
}

func TestDescribe(t *testing.T) {
	r := Describe(" 4hhb")
	assert.True(t, r.Recognized)
	assert.Equal(t, KindPDBID, r.Kind)
	assert.Equal(t, "4HHB", r.Normalized)
	assert.Equal(t, []string{"pdb"}, r.Services)

	r = Describe("BSYNRYMUTXBXSQ-UHFFFAOYSA-N")
	assert.ElementsMatch(t, []string{"pubchem", "chembl"}, r.Services)

	r = Describe("caffeine")
	assert.False(t, r.Recognized)
	assert.Equal(t, KindUnknown, r.Kind)
	assert.NotNil(t, r.Services)
	assert.Empty(t, r.Services)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("DB00945", KindDrugBankID))
	assert.False(t, Matches("DB0094", KindDrugBankID))
	assert.True(t, Matches("CHEMBL25", KindChEMBLID))
	assert.False(t, Matches("CHEMBL", KindChEMBLID))
	assert.False(t, Matches("x", Kind("nope")))
}

func TestFormatsHaveExamples(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, f.Pattern.MatchString(f.Example), "%s example %q", f.Kind, f.Example)
		assert.NotEmpty(t, f.Services, f.Kind)
	}
}
