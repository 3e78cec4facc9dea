package evals

import (
	"errors"
	"strings"
	"unicode"

	"github.com/olgasafonova/chemdata-mcp-server/tools"
)

// LexicalSelector picks the tool whose title and description share the
// most words with the request. It takes no arguments from the request.
// Its accuracy is a floor: descriptions that a word-overlap baseline
// cannot tell apart are likely to confuse a model too.
type LexicalSelector struct {
	specs []tools.ToolSpec
	vocab []map[string]bool
}

// NewLexicalSelector indexes specs.
func NewLexicalSelector(specs []tools.ToolSpec) *LexicalSelector {
	s := &LexicalSelector{specs: specs, vocab: make([]map[string]bool, len(specs))}
	for i, spec := range specs {
		words := make(map[string]bool)
		for _, w := range tokenize(spec.Title + " " + spec.Name + " " + firstParagraph(spec.Description)) {
			words[w] = true
		}
		s.vocab[i] = words
	}
	return s
}

// SelectTool implements Selector. Ties go to the earlier tool.
func (s *LexicalSelector) SelectTool(input string) (string, map[string]any, error) {
	best, bestScore := -1, 0
	for i, words := range s.vocab {
		score := 0
		for _, w := range tokenize(input) {
			if words[w] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return "", nil, errors.New("no tool shares a word with the request")
	}
	return s.specs[best].Name, map[string]any{}, nil
}

// firstParagraph keeps the summary line of a description; the USE WHEN /
// PARAMETERS blocks repeat words across many tools.
func firstParagraph(desc string) string {
	if i := strings.Index(desc, "\n\n"); i >= 0 {
		return desc[:i]
	}
	return desc
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "for": true, "by": true,
	"in": true, "to": true, "and": true, "or": true, "with": true, "is": true,
	"me": true, "find": true, "get": true, "show": true, "what": true, "which": true,
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if !stopWords[f] && len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}
