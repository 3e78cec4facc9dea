package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var targetAliases = AliasMap{
	"maxResults": "max_results",
	"targetId":   "target_id",
	"limit":      "max_results",
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		canonical map[string]any
		extra     []Param
		want      map[string]any
	}{
		{
			name:      "alias overrides canonical default",
			canonical: map[string]any{"max_results": 10},
			extra:     []Param{{Key: "maxResults", Value: 3}},
			want:      map[string]any{"max_results": 3},
		},
		{
			name:      "absent aliases leave canonical untouched",
			canonical: map[string]any{"max_results": 10, "target_id": "ENSG1"},
			extra:     nil,
			want:      map[string]any{"max_results": 10, "target_id": "ENSG1"},
		},
		{
			name:      "unknown keys are ignored",
			canonical: map[string]any{"max_results": 10},
			extra:     []Param{{Key: "pageSize", Value: 50}},
			want:      map[string]any{"max_results": 10},
		},
		{
			name:      "last alias for the same key wins",
			canonical: map[string]any{"max_results": 10},
			extra: []Param{
				{Key: "maxResults", Value: 5},
				{Key: "limit", Value: 7},
			},
			want: map[string]any{"max_results": 7},
		},
		{
			name:      "alias can introduce a canonical key",
			canonical: map[string]any{},
			extra:     []Param{{Key: "targetId", Value: "ENSG00000157764"}},
			want:      map[string]any{"target_id": "ENSG00000157764"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.canonical, targetAliases, tt.extra)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	canonical := map[string]any{"max_results": 10}
	_ = Reconcile(canonical, targetAliases, []Param{{Key: "maxResults", Value: 1}})
	assert.Equal(t, 10, canonical["max_results"])
}

func TestCollect(t *testing.T) {
	n := 4
	s := "ENSG1"
	var nilInt *int
	var nilStr *string

	got := Collect(
		Param{Key: "maxResults", Value: &n},
		Param{Key: "limit", Value: nilInt},
		Param{Key: "targetId", Value: &s},
		Param{Key: "diseaseId", Value: nilStr},
		Param{Key: "raw", Value: nil},
	)

	assert.Equal(t, []Param{
		{Key: "maxResults", Value: 4},
		{Key: "targetId", Value: "ENSG1"},
	}, got)
}

func TestIntAndString(t *testing.T) {
	m := map[string]any{"a": 3, "b": float64(7), "c": "x", "d": int64(9)}

	assert.Equal(t, 3, Int(m, "a", 0))
	assert.Equal(t, 7, Int(m, "b", 0))
	assert.Equal(t, 9, Int(m, "d", 0))
	assert.Equal(t, 11, Int(m, "c", 11))
	assert.Equal(t, 11, Int(m, "missing", 11))
	assert.Equal(t, "x", String(m, "c"))
	assert.Equal(t, "", String(m, "a"))
}
