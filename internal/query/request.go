package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// MaxRows is the largest page a search request may ask for.
	MaxRows = 1000

	// ReturnEntry asks the search service for entry identifiers.
	ReturnEntry = "entry"

	SortDescending = "desc"
	SortAscending  = "asc"
)

// SearchRequest is a complete structured search: the query tree plus
// pagination and sort options. Start is always 0.
type SearchRequest struct {
	Query          Node           `json:"query"`
	ReturnType     string         `json:"return_type"`
	RequestOptions RequestOptions `json:"request_options"`
}

// RequestOptions controls paging, content type and ordering.
type RequestOptions struct {
	Paginate           Paginate `json:"paginate"`
	ResultsContentType []string `json:"results_content_type,omitempty"`
	Sort               []Sort   `json:"sort,omitempty"`
}

// Paginate is the requested result window.
type Paginate struct {
	Start int `json:"start"`
	Rows  int `json:"rows"`
}

// Sort is a single sort key.
type Sort struct {
	SortBy    string `json:"sort_by"`
	Direction string `json:"direction"`
}

// ClampRows caps a requested page size at MaxRows. Values below 1 become 1.
func ClampRows(requested int) int {
	if requested > MaxRows {
		return MaxRows
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// NewSearchRequest wraps q in a request for experimental entries.
func NewSearchRequest(q Node, limit int) SearchRequest {
	return SearchRequest{
		Query:      q,
		ReturnType: ReturnEntry,
		RequestOptions: RequestOptions{
			Paginate:           Paginate{Start: 0, Rows: ClampRows(limit)},
			ResultsContentType: []string{"experimental"},
		},
	}
}

// SortedBy returns a copy of r sorted by field in descending order.
func (r SearchRequest) SortedBy(field string) SearchRequest {
	if field == "" {
		return r
	}
	r.RequestOptions.Sort = []Sort{{SortBy: field, Direction: SortDescending}}
	return r
}

// Values renders filters as field__lookup query parameters:
// exact_match as field=v, contains as field__icontains=v, and ranges as
// field__gte / field__lte for each closed bound.
func Values(filters []Filter) url.Values {
	v := url.Values{}
	for _, f := range filters {
		switch f.Operator {
		case Range:
			if f.Bounds == nil {
				continue
			}
			if f.Bounds.From != nil {
				v.Add(f.Field+"__"+lowerLookup(f.Bounds.IncludeLower), formatFloat(*f.Bounds.From))
			}
			if f.Bounds.To != nil {
				v.Add(f.Field+"__"+upperLookup(f.Bounds.IncludeUpper), formatFloat(*f.Bounds.To))
			}
		case Contains:
			v.Add(f.Field+"__icontains", formatValue(f.Value))
		default:
			v.Add(f.Field, formatValue(f.Value))
		}
	}
	return v
}

func lowerLookup(inclusive bool) string {
	if inclusive {
		return "gte"
	}
	return "gt"
}

func upperLookup(inclusive bool) string {
	if inclusive {
		return "lte"
	}
	return "lt"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case []string:
		return strings.Join(x, ",")
	default:
		return ""
	}
}
