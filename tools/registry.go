// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are declared in AllTools and bound to backend client methods with
// type-safe handlers.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a backend client method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "search_pdb_structures")
	Name string

	// Method is the handler key (e.g., "PDBSearchStructures")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (search, read, analysis, etc.)
	Category string

	// Service is the backend the tool calls, or ServiceUtility
	Service string

	// ReadOnly indicates the tool doesn't modify remote state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ServiceUtility marks tools that make no backend call. They are always
// registered.
const ServiceUtility = "utility"

// ForService returns the specs whose Service is service, in table order.
func ForService(service string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Service == service {
			out = append(out, spec)
		}
	}
	return out
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
