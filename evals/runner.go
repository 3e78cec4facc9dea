// Package evals checks how well tool descriptions steer tool selection.
// A suite pairs natural language requests with the tool and arguments an
// assistant should pick; a Selector (an LLM harness, or the lexical
// baseline in this package) is scored against it.
package evals

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/olgasafonova/chemdata-mcp-server/tools"
)

// Case is one tool selection evaluation
type Case struct {
	ID           string         `json:"id"`
	Service      string         `json:"service"`
	Input        string         `json:"input"`
	ExpectedTool string         `json:"expected_tool"`
	ExpectedArgs map[string]any `json:"expected_args,omitempty"`
	NotTools     []string       `json:"not_tools,omitempty"`
}

// Suite is a named set of cases
type Suite struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Cases       []Case `json:"cases"`
}

// Result is the outcome of one case
type Result struct {
	CaseID       string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// Metrics aggregates an evaluation run
type Metrics struct {
	Total         int
	Passed        int
	Failed        int
	Accuracy      float64
	ByService     map[string]*ServiceMetrics
	FailedDetails []string
}

// ServiceMetrics counts results for one backend
type ServiceMetrics struct {
	Total  int
	Passed int
}

// Selector picks a tool and arguments for a request.
type Selector interface {
	SelectTool(input string) (tool string, args map[string]any, err error)
}

// LoadSuite reads a suite from a JSON file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	var suite Suite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &suite, nil
}

// Lint reports cases that reference tools missing from specs, duplicate
// IDs, and cases that forbid their own expected tool.
func Lint(suite *Suite, specs []tools.ToolSpec) []string {
	known := make(map[string]tools.ToolSpec, len(specs))
	for _, s := range specs {
		known[s.Name] = s
	}

	var problems []string
	seen := make(map[string]bool)
	for _, c := range suite.Cases {
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate id", c.ID))
		}
		seen[c.ID] = true

		spec, ok := known[c.ExpectedTool]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s: unknown expected tool %q", c.ID, c.ExpectedTool))
		case c.Service != "" && spec.Service != c.Service:
			problems = append(problems, fmt.Sprintf("%s: %s belongs to %s, not %s", c.ID, c.ExpectedTool, spec.Service, c.Service))
		}
		for _, nt := range c.NotTools {
			if _, ok := known[nt]; !ok {
				problems = append(problems, fmt.Sprintf("%s: unknown forbidden tool %q", c.ID, nt))
			}
			if nt == c.ExpectedTool {
				problems = append(problems, fmt.Sprintf("%s: expected tool is also forbidden", c.ID))
			}
		}
	}
	return problems
}

// Evaluate runs every case through selector.
func Evaluate(suite *Suite, selector Selector) (*Metrics, []Result) {
	m := &Metrics{ByService: make(map[string]*ServiceMetrics)}
	results := make([]Result, 0, len(suite.Cases))

	for _, c := range suite.Cases {
		sm := m.ByService[c.Service]
		if sm == nil {
			sm = &ServiceMetrics{}
			m.ByService[c.Service] = sm
		}
		sm.Total++
		m.Total++

		tool, args, err := selector.SelectTool(c.Input)
		r := Result{CaseID: c.ID, ExpectedTool: c.ExpectedTool, ActualTool: tool, Passed: true}

		if err != nil {
			r.fail("selector error: %v", err)
		}
		if tool != c.ExpectedTool {
			r.fail("wrong tool: expected %s, got %s", c.ExpectedTool, tool)
		}
		for _, nt := range c.NotTools {
			if tool == nt {
				r.fail("selected forbidden tool: %s", nt)
			}
		}
		for key, want := range c.ExpectedArgs {
			got, ok := args[key]
			if !ok {
				r.fail("missing arg %s (expected %v)", key, want)
			} else if !compareValues(want, got) {
				r.fail("wrong arg %s: expected %v, got %v", key, want, got)
			}
		}

		if r.Passed {
			m.Passed++
			sm.Passed++
		} else {
			m.Failed++
			m.FailedDetails = append(m.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", c.ID, c.Input, strings.Join(r.Errors, "; ")))
		}
		results = append(results, r)
	}

	if m.Total > 0 {
		m.Accuracy = float64(m.Passed) / float64(m.Total)
	}
	return m, results
}

func (r *Result) fail(format string, a ...any) {
	r.Passed = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, a...))
}

// compareValues treats numbers of any JSON type as equal by value and
// strings case-insensitively.
func compareValues(expected, actual any) bool {
	if ef, ok := toFloat(expected); ok {
		af, ok := toFloat(actual)
		return ok && ef == af
	}
	if es, ok := expected.(string); ok {
		as, ok := actual.(string)
		return ok && strings.EqualFold(es, as)
	}
	return reflect.DeepEqual(expected, actual)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// FormatMetrics renders a summary of m.
func FormatMetrics(m *Metrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d cases\n", m.Total)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", m.Passed, m.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", m.Failed)

	if len(m.ByService) > 0 {
		services := make([]string, 0, len(m.ByService))
		for s := range m.ByService {
			services = append(services, s)
		}
		sort.Strings(services)

		b.WriteString("\nBy Service:\n")
		for _, s := range services {
			sm := m.ByService[s]
			fmt.Fprintf(&b, "  %-12s: %d/%d\n", s, sm.Passed, sm.Total)
		}
	}

	const shown = 10
	if n := len(m.FailedDetails); n > 0 {
		if n > shown {
			fmt.Fprintf(&b, "\nFailed Cases (showing first %d of %d):\n", shown, n)
		} else {
			b.WriteString("\nFailed Cases:\n")
		}
		for _, d := range m.FailedDetails[:min(n, shown)] {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}
	return b.String()
}
