package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlan(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		desired    []string
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:       "Empty To Populated",
			current:    nil,
			desired:    []string{"b", "a"},
			wantAdd:    []string{"a", "b"},
			wantRemove: nil,
		},
		{
			name:       "Populated To Empty",
			current:    []string{"a", "b"},
			desired:    nil,
			wantAdd:    nil,
			wantRemove: []string{"a", "b"},
		},
		{
			name:       "Overlap",
			current:    []string{"a", "b", "c"},
			desired:    []string{"b", "c", "d"},
			wantAdd:    []string{"d"},
			wantRemove: []string{"a"},
		},
		{
			name:       "Identical Sets",
			current:    []string{"a", "b"},
			desired:    []string{"b", "a"},
			wantAdd:    nil,
			wantRemove: nil,
		},
		{
			name:       "Duplicates Collapsed",
			current:    []string{"a", "a"},
			desired:    []string{"a", "b", "b"},
			wantAdd:    []string{"b"},
			wantRemove: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdd, plan.ToAdd)
			assert.Equal(t, tt.wantRemove, plan.ToRemove)
			assert.Equal(t, len(tt.wantAdd), plan.Summary.Adds)
			assert.Equal(t, len(tt.wantRemove), plan.Summary.Removes)
		})
	}
}

func TestPlan_InSync(t *testing.T) {
	assert.True(t, BuildPlan([]string{"a"}, []string{"a"}).InSync())
	assert.False(t, BuildPlan([]string{"a"}, []string{"b"}).InSync())
}

// Applying a plan and rebuilding it with the same desired set must be empty.
func TestBuildPlan_Idempotent(t *testing.T) {
	desired := []string{"x", "y", "z"}
	plan := BuildPlan([]string{"w", "x"}, desired)

	after := []string{"x"}
	after = append(after, plan.ToAdd...)

	second := BuildPlan(after, desired)
	assert.True(t, second.InSync())
	assert.Equal(t, len(desired), second.Summary.Unchanged)
}
