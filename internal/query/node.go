// Package query builds structured search queries from flat filter criteria.
//
// The tree shape follows the RCSB search API: terminal clauses carry a
// service and its parameters, and a single group level joins the base clause
// with any attribute filters. The same Filter values also render to the
// field__lookup query parameters used by Django-style REST backends.
package query

// NodeType distinguishes terminal clauses from boolean groups.
type NodeType string

const (
	TypeTerminal NodeType = "terminal"
	TypeGroup    NodeType = "group"
)

// Service names the search service a terminal clause is evaluated by.
type Service string

const (
	ServiceFullText Service = "full_text"
	ServiceText     Service = "text"
	ServiceSequence Service = "sequence"
)

// LogicalOperator joins the children of a group node.
type LogicalOperator string

const (
	And LogicalOperator = "and"
	Or  LogicalOperator = "or"
)

const (
	// SequenceEvalueCutoff is the fixed e-value threshold for sequence searches.
	SequenceEvalueCutoff = 0.1

	// SequenceTarget is the sequence database searched by sequence clauses.
	SequenceTarget = "pdb_protein_sequence"
)

// Node is either a terminal clause or a group of child nodes.
type Node struct {
	Type            NodeType        `json:"type"`
	Service         Service         `json:"service,omitempty"`
	Parameters      *Parameters     `json:"parameters,omitempty"`
	LogicalOperator LogicalOperator `json:"logical_operator,omitempty"`
	Nodes           []Node          `json:"nodes,omitempty"`
}

// Parameters are the service-specific arguments of a terminal clause.
type Parameters struct {
	Attribute      string   `json:"attribute,omitempty"`
	Operator       string   `json:"operator,omitempty"`
	Value          any      `json:"value,omitempty"`
	EvalueCutoff   *float64 `json:"evalue_cutoff,omitempty"`
	IdentityCutoff *float64 `json:"identity_cutoff,omitempty"`
	Target         string   `json:"target,omitempty"`
}

// IsGroup reports whether n is a group node.
func (n Node) IsGroup() bool {
	return n.Type == TypeGroup
}

// FullText builds a full-text terminal clause.
func FullText(value string) Node {
	return Node{
		Type:       TypeTerminal,
		Service:    ServiceFullText,
		Parameters: &Parameters{Value: value},
	}
}

// Sequence builds a sequence-similarity terminal clause.
// identityCutoff is passed through as given; callers own its validation.
func Sequence(sequence string, identityCutoff float64) Node {
	evalue := SequenceEvalueCutoff
	return Node{
		Type:    TypeTerminal,
		Service: ServiceSequence,
		Parameters: &Parameters{
			EvalueCutoff:   &evalue,
			IdentityCutoff: &identityCutoff,
			Target:         SequenceTarget,
			Value:          sequence,
		},
	}
}

// Group joins nodes under op, preserving their order.
func Group(op LogicalOperator, nodes ...Node) Node {
	children := make([]Node, len(nodes))
	copy(children, nodes)
	return Node{
		Type:            TypeGroup,
		LogicalOperator: op,
		Nodes:           children,
	}
}

// Compose attaches filters to base. With no filters base is returned as is;
// otherwise the result is an AND group whose first child is base followed by
// one terminal per filter in input order.
func Compose(base Node, filters []Filter) Node {
	if len(filters) == 0 {
		return base
	}
	nodes := make([]Node, 0, len(filters)+1)
	nodes = append(nodes, base)
	for _, f := range filters {
		nodes = append(nodes, f.Terminal())
	}
	return Node{
		Type:            TypeGroup,
		LogicalOperator: And,
		Nodes:           nodes,
	}
}
