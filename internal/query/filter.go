package query

import (
	"strconv"
	"strings"
)

// Operator is the comparison a Filter applies.
type Operator string

const (
	ExactMatch Operator = "exact_match"
	Range      Operator = "range"
	Contains   Operator = "contains"
)

// Bounds is the value of a range filter. A nil bound is open.
type Bounds struct {
	From         *float64 `json:"from,omitempty"`
	To           *float64 `json:"to,omitempty"`
	IncludeLower bool     `json:"include_lower"`
	IncludeUpper bool     `json:"include_upper"`
}

// Filter is one attribute criterion. Range filters carry Bounds; the other
// operators carry Value.
type Filter struct {
	Field    string
	Operator Operator
	Value    any
	Bounds   *Bounds
}

// Exact builds an exact-match filter.
func Exact(field string, value any) Filter {
	return Filter{Field: field, Operator: ExactMatch, Value: value}
}

// Substring builds a case-insensitive contains filter.
func Substring(field, value string) Filter {
	return Filter{Field: field, Operator: Contains, Value: value}
}

// Between builds an inclusive range filter.
func Between(field string, from, to float64) Filter {
	return Filter{
		Field:    field,
		Operator: Range,
		Bounds:   &Bounds{From: &from, To: &to, IncludeLower: true, IncludeUpper: true},
	}
}

// AtLeast builds an inclusive lower-bounded range filter.
func AtLeast(field string, from float64) Filter {
	return Filter{
		Field:    field,
		Operator: Range,
		Bounds:   &Bounds{From: &from, IncludeLower: true},
	}
}

// AtMost builds an inclusive upper-bounded range filter.
func AtMost(field string, to float64) Filter {
	return Filter{
		Field:    field,
		Operator: Range,
		Bounds:   &Bounds{To: &to, IncludeUpper: true},
	}
}

// ParseRange parses a "min-max" string into an inclusive range filter on
// field. The string must split on "-" into exactly two parts that both parse
// as floats; anything else reports ok=false and the caller drops the filter.
func ParseRange(field, raw string) (Filter, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return Filter{}, false
	}
	from, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Filter{}, false
	}
	to, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Filter{}, false
	}
	return Between(field, from, to), true
}

// Terminal renders f as a text-service terminal clause.
func (f Filter) Terminal() Node {
	p := &Parameters{Attribute: f.Field}
	switch f.Operator {
	case Range:
		p.Operator = string(Range)
		p.Value = f.Bounds
	case Contains:
		p.Operator = "contains_phrase"
		p.Value = f.Value
	default:
		p.Operator = string(ExactMatch)
		p.Value = f.Value
	}
	return Node{
		Type:       TypeTerminal,
		Service:    ServiceText,
		Parameters: p,
	}
}
