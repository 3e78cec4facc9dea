package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patentDoc = `{
	"abstracts": [
		{"lang": "EN", "section": {"annotations": [
			{"name": "aspirin", "category": "chemical"},
			{"name": "ibuprofen", "category": "chemical"}
		]}}
	],
	"descriptions": [
		{"lang": "EN", "section": {"annotations": [
			{"name": "inflammation", "category": "disease"}
		]}}
	]
}`

// =============================================================================
// ExtractAnnotations
// =============================================================================

func TestExtractAnnotations_Order(t *testing.T) {
	anns := ExtractAnnotations([]byte(patentDoc))

	require.Len(t, anns, 3)
	assert.Equal(t, SourceAbstract, anns[0].Source)
	assert.Equal(t, "aspirin", anns[0].Name)
	assert.Equal(t, SourceAbstract, anns[1].Source)
	assert.Equal(t, "ibuprofen", anns[1].Name)
	assert.Equal(t, SourceDescription, anns[2].Source)
	assert.Equal(t, "disease", anns[2].Category)
	for _, a := range anns {
		assert.Equal(t, "EN", a.Language)
	}
	assert.Equal(t, "aspirin", anns[0].Raw["name"])
}

func TestExtractAnnotations_Deterministic(t *testing.T) {
	first := ExtractAnnotations([]byte(patentDoc))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractAnnotations([]byte(patentDoc)))
	}
}

func TestExtractAnnotations_DescriptionsListedFirstInJSON(t *testing.T) {
	doc := `{
		"descriptions": [{"lang": "DE", "section": {"annotations": [{"name": "d"}]}}],
		"abstracts": [{"lang": "EN", "section": {"annotations": [{"name": "a"}]}}]
	}`

	anns := ExtractAnnotations([]byte(doc))

	require.Len(t, anns, 2)
	assert.Equal(t, "a", anns[0].Name)
	assert.Equal(t, "d", anns[1].Name)
	assert.Equal(t, "DE", anns[1].Language)
}

func TestExtractAnnotations_MissingSections(t *testing.T) {
	for _, doc := range []string{`{}`, `{"abstracts": []}`, `{"abstracts": [{"lang": "EN"}]}`, `not json`} {
		anns := ExtractAnnotations([]byte(doc))
		assert.NotNil(t, anns, doc)
		assert.Empty(t, anns, doc)
	}
}

func TestCountSections(t *testing.T) {
	doc := `{
		"abstracts": [{"lang": "EN"}, {"lang": "FR"}],
		"descriptions": [{"lang": "EN"}]
	}`

	stats := CountSections([]byte(doc))

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Abstracts)
	assert.Equal(t, 1, stats.Descriptions)
	assert.Equal(t, []string{"EN", "FR"}, stats.Languages)
}

// =============================================================================
// Frequency stats
// =============================================================================

func TestComputeFrequencyStats(t *testing.T) {
	tests := []struct {
		count    int
		category string
	}{
		{0, CategoryNotFound},
		{1, CategoryUnique},
		{2, CategoryVeryRare},
		{10, CategoryVeryRare},
		{11, CategoryRare},
		{100, CategoryRare},
		{101, CategoryUncommon},
		{1000, CategoryUncommon},
		{1001, CategoryCommon},
		{10000, CategoryCommon},
		{10001, CategoryVeryCommon},
		{-3, CategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			st := ComputeFrequencyStats(tt.count)
			assert.Equal(t, tt.category, st.Category)
			assert.GreaterOrEqual(t, st.RarityScore, 0.0)
			assert.LessOrEqual(t, st.RarityScore, 1.0)
		})
	}

	assert.Equal(t, FrequencyStat{Count: 0, Category: CategoryNotFound, RarityScore: 0}, ComputeFrequencyStats(0))
	assert.Equal(t, FrequencyStat{Count: 1, Category: CategoryUnique, RarityScore: 1}, ComputeFrequencyStats(1))
	assert.InDelta(t, 0.5, Rarity(1000), 1e-9)
	assert.Equal(t, 0.0, Rarity(5_000_000))
}

func TestRarity_NonIncreasing(t *testing.T) {
	prev := Rarity(1)
	for c := 2; c <= 2_000_000; c = c*3/2 + 1 {
		r := Rarity(c)
		assert.LessOrEqual(t, r, prev, "count %d", c)
		prev = r
	}
}

// =============================================================================
// Aggregate
// =============================================================================

func annotations(names ...string) []Annotation {
	out := make([]Annotation, 0, len(names))
	for _, n := range names {
		out = append(out, Annotation{Source: SourceAbstract, Language: "EN", Category: "chemical", Name: n})
	}
	return out
}

func TestAggregate_TopNTieBreak(t *testing.T) {
	var names []string
	// first-seen order: A, B, C
	names = append(names, "A", "B", "C")
	for i := 0; i < 4; i++ {
		names = append(names, "A", "C")
	}
	names = append(names, "B", "B")

	s := Aggregate(annotations(names...), 10)

	assert.Equal(t, map[string]int{"A": 5, "B": 3, "C": 5}, s.Frequency)
	require.Len(t, s.Top, 3)
	assert.Equal(t, []NameCount{{"A", 5}, {"C", 5}, {"B", 3}}, s.Top)
	assert.Equal(t, []string{"A", "B", "C"}, s.UniqueNames)
}

func TestAggregate_TruncatesTop(t *testing.T) {
	var names []string
	for i := 0; i < 15; i++ {
		names = append(names, fmt.Sprintf("chem-%02d", i))
	}

	s := Aggregate(annotations(names...), 0)

	assert.Len(t, s.Top, DefaultTopN)
	assert.Equal(t, "chem-00", s.Top[0].Name)
	assert.Len(t, s.UniqueNames, 15)
}

func TestAggregate_Document(t *testing.T) {
	s := Aggregate(ExtractAnnotations([]byte(patentDoc)), 10)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, []string{"chemical", "disease"}, s.Categories)
	assert.Equal(t, []string{"EN"}, s.Languages)
	assert.Equal(t, []string{"abstract", "description"}, s.Sources)
	assert.Equal(t, map[string]int{"abstract": 2, "description": 1}, s.BySource)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, 10)

	assert.Zero(t, s.Total)
	assert.NotNil(t, s.Top)
	assert.Empty(t, s.Top)
	assert.Empty(t, s.UniqueNames)
}

func TestFilterCategory(t *testing.T) {
	anns := ExtractAnnotations([]byte(patentDoc))

	chems := FilterCategory(anns, "chemical")
	require.Len(t, chems, 2)
	assert.Empty(t, FilterCategory(anns, "gene"))
}
