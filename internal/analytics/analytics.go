// Package analytics derives annotation statistics from patent document trees
// and frequency statistics from occurrence counts.
package analytics

import (
	"math"
	"sort"

	"github.com/tidwall/gjson"
)

// Source is the document section an annotation came from.
type Source string

const (
	SourceAbstract    Source = "abstract"
	SourceDescription Source = "description"
)

// DefaultTopN is the number of names reported by Aggregate when n <= 0.
const DefaultTopN = 10

// Frequency categories, in increasing order of count.
const (
	CategoryNotFound   = "Not found"
	CategoryUnique     = "Unique"
	CategoryVeryRare   = "Very rare"
	CategoryRare       = "Rare"
	CategoryUncommon   = "Uncommon"
	CategoryCommon     = "Common"
	CategoryVeryCommon = "Very common"
)

// Annotation is one entity annotation found in a document section.
type Annotation struct {
	Source   Source         `json:"source"`
	Language string         `json:"language"`
	Category string         `json:"category,omitempty"`
	Name     string         `json:"name,omitempty"`
	Raw      map[string]any `json:"annotation"`
}

// sections are visited in this order.
var sections = []struct {
	path   string
	source Source
}{
	{"abstracts", SourceAbstract},
	{"descriptions", SourceDescription},
}

// ExtractAnnotations collects the annotations of a patent document:
// abstracts first, then descriptions, each in tree order. doc is the
// patent document object holding "abstracts" and "descriptions" lists of
// {lang, section: {annotations: [...]}}.
func ExtractAnnotations(doc []byte) []Annotation {
	out := []Annotation{}
	root := gjson.ParseBytes(doc)
	for _, s := range sections {
		root.Get(s.path).ForEach(func(_, section gjson.Result) bool {
			lang := section.Get("lang").String()
			section.Get("section.annotations").ForEach(func(_, a gjson.Result) bool {
				raw, _ := a.Value().(map[string]any)
				if raw == nil {
					raw = map[string]any{}
				}
				out = append(out, Annotation{
					Source:   s.source,
					Language: lang,
					Category: a.Get("category").String(),
					Name:     a.Get("name").String(),
					Raw:      raw,
				})
				return true
			})
			return true
		})
	}
	return out
}

// SectionStats counts the sections of a document.
type SectionStats struct {
	Total        int      `json:"total_sections"`
	Abstracts    int      `json:"abstract_sections"`
	Descriptions int      `json:"description_sections"`
	Languages    []string `json:"languages"`
}

// CountSections reports section counts and the distinct section languages
// in first-seen order.
func CountSections(doc []byte) SectionStats {
	root := gjson.ParseBytes(doc)
	stats := SectionStats{Languages: []string{}}
	seen := map[string]bool{}
	for _, s := range sections {
		root.Get(s.path).ForEach(func(_, section gjson.Result) bool {
			if s.source == SourceAbstract {
				stats.Abstracts++
			} else {
				stats.Descriptions++
			}
			if lang := section.Get("lang").String(); lang != "" && !seen[lang] {
				seen[lang] = true
				stats.Languages = append(stats.Languages, lang)
			}
			return true
		})
	}
	stats.Total = stats.Abstracts + stats.Descriptions
	return stats
}

// FrequencyStat classifies an occurrence count.
type FrequencyStat struct {
	Count       int     `json:"total_occurrences"`
	Category    string  `json:"frequency_category"`
	RarityScore float64 `json:"rarity_score"`
}

// ComputeFrequencyStats buckets count and derives its rarity score.
// Negative counts are treated as zero.
func ComputeFrequencyStats(count int) FrequencyStat {
	if count < 0 {
		count = 0
	}
	return FrequencyStat{
		Count:       count,
		Category:    Categorize(count),
		RarityScore: Rarity(count),
	}
}

// Categorize returns the frequency category for count.
func Categorize(count int) string {
	switch {
	case count <= 0:
		return CategoryNotFound
	case count == 1:
		return CategoryUnique
	case count <= 10:
		return CategoryVeryRare
	case count <= 100:
		return CategoryRare
	case count <= 1000:
		return CategoryUncommon
	case count <= 10000:
		return CategoryCommon
	default:
		return CategoryVeryCommon
	}
}

// Rarity is 0 for an absent entity, 1 for a unique one, and decays
// logarithmically to 0 at a million occurrences.
func Rarity(count int) float64 {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	}
	return math.Max(0, 1-math.Log10(float64(count))/6)
}

// NameCount is one entry of a top-N ranking.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates a list of annotations.
type Summary struct {
	Total       int            `json:"total_annotations"`
	UniqueNames []string       `json:"unique_names"`
	Categories  []string       `json:"categories"`
	Frequency   map[string]int `json:"frequency"`
	Top         []NameCount    `json:"top"`
	Languages   []string       `json:"languages"`
	Sources     []string       `json:"sources"`
	BySource    map[string]int `json:"by_source"`
}

// Aggregate summarizes annotations. Set-valued fields keep first-seen order.
// Top holds at most n names sorted by count descending, ties broken by
// first appearance.
func Aggregate(annotations []Annotation, n int) Summary {
	if n <= 0 {
		n = DefaultTopN
	}
	s := Summary{
		Total:       len(annotations),
		UniqueNames: []string{},
		Categories:  []string{},
		Frequency:   map[string]int{},
		Top:         []NameCount{},
		Languages:   []string{},
		Sources:     []string{},
		BySource:    map[string]int{},
	}
	seenCat := map[string]bool{}
	seenLang := map[string]bool{}
	seenSrc := map[string]bool{}

	for _, a := range annotations {
		if a.Name != "" {
			if _, ok := s.Frequency[a.Name]; !ok {
				s.UniqueNames = append(s.UniqueNames, a.Name)
			}
			s.Frequency[a.Name]++
		}
		if a.Category != "" && !seenCat[a.Category] {
			seenCat[a.Category] = true
			s.Categories = append(s.Categories, a.Category)
		}
		if a.Language != "" && !seenLang[a.Language] {
			seenLang[a.Language] = true
			s.Languages = append(s.Languages, a.Language)
		}
		src := string(a.Source)
		if !seenSrc[src] {
			seenSrc[src] = true
			s.Sources = append(s.Sources, src)
		}
		s.BySource[src]++
	}

	for _, name := range s.UniqueNames {
		s.Top = append(s.Top, NameCount{Name: name, Count: s.Frequency[name]})
	}
	sort.SliceStable(s.Top, func(i, j int) bool {
		return s.Top[i].Count > s.Top[j].Count
	})
	if len(s.Top) > n {
		s.Top = s.Top[:n]
	}
	return s
}

// FilterCategory returns the annotations whose category equals category.
func FilterCategory(annotations []Annotation, category string) []Annotation {
	out := []Annotation{}
	for _, a := range annotations {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
