package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moleculeSpec = FieldSpec{
	{Key: "chembl_id", Path: "molecule_chembl_id", Default: "Unknown ID"},
	{Key: "name", Path: "pref_name", Default: "No name"},
	{Key: "molecular_weight", Path: "molecule_properties.full_mwt", Default: nil},
	{Key: "first_synonym", Path: "molecule_synonyms.0.synonyms", Default: ""},
	{Key: "smiles", Path: "molecule_structures.canonical_smiles", Default: ""},
}

func TestNormalize_AllPathsPresent(t *testing.T) {
	raw := []byte(`{
		"molecule_chembl_id": "CHEMBL25",
		"pref_name": "ASPIRIN",
		"molecule_properties": {"full_mwt": "180.16"},
		"molecule_synonyms": [{"synonyms": "Acetylsalicylic acid"}],
		"molecule_structures": {"canonical_smiles": "CC(=O)Oc1ccccc1C(=O)O"}
	}`)

	rec := Normalize(raw, moleculeSpec)

	assert.Equal(t, moleculeSpec.Keys(), rec.Keys())
	assert.Equal(t, "CHEMBL25", rec.String("chembl_id"))
	assert.Equal(t, "ASPIRIN", rec.String("name"))
	assert.Equal(t, "180.16", rec.String("molecular_weight"))
	assert.Equal(t, "Acetylsalicylic acid", rec.String("first_synonym"))
}

func TestNormalize_MissingPathsUseDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty object", raw: `{}`},
		{name: "wrong type mid-path", raw: `{"molecule_properties": "n/a", "molecule_structures": 3}`},
		{name: "index out of range", raw: `{"molecule_synonyms": []}`},
		{name: "explicit nulls", raw: `{"pref_name": null, "molecule_structures": null}`},
		{name: "not json", raw: `<html>oops</html>`},
		{name: "empty input", raw: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize([]byte(tt.raw), moleculeSpec)

			require.Equal(t, len(moleculeSpec), rec.Len())
			for _, f := range moleculeSpec {
				v, ok := rec.Get(f.Key)
				assert.True(t, ok, "key %s missing", f.Key)
				if f.Key == "chembl_id" || f.Key == "name" {
					assert.Equal(t, f.Default, v)
				}
			}
			mw, _ := rec.Get("molecular_weight")
			assert.Nil(t, mw)
			assert.Equal(t, "", rec.String("first_synonym"))
		})
	}
}

func TestNormalize_Convert(t *testing.T) {
	spec := FieldSpec{
		{Key: "is_element", Path: "is_element", Default: false, Convert: func(v any) any { return v == "1" }},
	}

	assert.Equal(t, true, mustGet(t, Normalize([]byte(`{"is_element":"1"}`), spec), "is_element"))
	assert.Equal(t, false, mustGet(t, Normalize([]byte(`{"is_element":"0"}`), spec), "is_element"))
	// conversion is skipped for absent values
	assert.Equal(t, false, mustGet(t, Normalize([]byte(`{}`), spec), "is_element"))
}

func TestNormalizeList_Empty(t *testing.T) {
	out := NormalizeList(nil, moleculeSpec)
	require.NotNil(t, out)
	assert.Empty(t, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestList_EachElementIndependent(t *testing.T) {
	raw := []byte(`{"molecules": [
		{"molecule_chembl_id": "CHEMBL1", "pref_name": "ONE"},
		{"molecule_chembl_id": "CHEMBL2"},
		"not an object"
	]}`)

	recs := List(raw, "molecules", moleculeSpec)

	require.Len(t, recs, 3)
	assert.Equal(t, "ONE", recs[0].String("name"))
	assert.Equal(t, "No name", recs[1].String("name"))
	assert.Equal(t, "Unknown ID", recs[2].String("chembl_id"))
}

func TestItems(t *testing.T) {
	assert.Len(t, Items([]byte(`[1,2,3]`), ""), 3)
	assert.Len(t, Items([]byte(`{"a":{"b":[{"x":1}]}}`), "a.b"), 1)
	assert.Empty(t, Items([]byte(`{"a":1}`), "a"))
	assert.Empty(t, Items([]byte(`{}`), "missing"))
}

func TestRecord_MarshalPreservesOrder(t *testing.T) {
	spec := FieldSpec{
		{Key: "zeta", Path: "z", Default: 0},
		{Key: "alpha", Path: "a", Default: 0},
		{Key: "mid", Path: "m", Default: "x"},
	}
	rec := Normalize([]byte(`{"a": 1, "z": 2}`), spec)

	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":2,"alpha":1,"mid":"x"}`, string(raw))

	var back Record
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, back.Keys())
}

func TestRecord_ZeroValue(t *testing.T) {
	var rec Record
	assert.Equal(t, 0, rec.Len())
	assert.Empty(t, rec.Keys())

	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	rec.Set("k", "v")
	assert.Equal(t, map[string]any{"k": "v"}, rec.Map())
}

func TestHelpers(t *testing.T) {
	raw := []byte(`{"page_meta": {"total_count": 42}, "name": "x", "syn": ["a", 1, "b"], "n": null}`)

	assert.Equal(t, 42, Int(raw, "page_meta.total_count", 0))
	assert.Equal(t, -1, Int(raw, "name", -1))
	assert.Equal(t, "x", Str(raw, "name", ""))
	assert.Equal(t, "d", Str(raw, "missing", "d"))
	assert.Equal(t, []string{"a", "b"}, Strings(raw, "syn"))
	assert.Equal(t, "def", Lookup(raw, "n", "def"))
}

func mustGet(t *testing.T, r Record, key string) any {
	t.Helper()
	v, ok := r.Get(key)
	require.True(t, ok)
	return v
}
