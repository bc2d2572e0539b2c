package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/pkg/models"
)

func items(names ...string) []models.PantryItem {
	out := make([]models.PantryItem, len(names))
	for i, n := range names {
		out[i] = models.PantryItem{Name: n}
	}
	return out
}

func TestMatchBidirectionalContainment(t *testing.T) {
	// Pantry name contained in the key (singular vs plural)
	results := Match([]string{"3 large eggs"}, items("Egg"))
	require.Len(t, results, 1)
	assert.True(t, results[0].HasIt)
	require.NotNil(t, results[0].Matched)
	assert.Equal(t, "Egg", results[0].Matched.Name)

	// Key contained in the pantry name (compound names)
	results = Match([]string{"1 cup cheddar, grated"}, items("Cheddar Cheese"))
	require.Len(t, results, 1)
	assert.True(t, results[0].HasIt)
}

func TestMatchNoMatch(t *testing.T) {
	results := Match([]string{"2 cups flour"}, items("Sugar"))
	require.Len(t, results, 1)
	assert.False(t, results[0].HasIt)
	assert.Nil(t, results[0].Matched)
}

func TestMatchFirstItemWins(t *testing.T) {
	results := Match([]string{"2 cups flour"}, items("All-Purpose Flour", "Bread Flour"))
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Matched)
	assert.Equal(t, "All-Purpose Flour", results[0].Matched.Name)
}

func TestMatchSkipsNamelessItems(t *testing.T) {
	pantry := []models.PantryItem{{Name: ""}, {Name: "   "}, {Name: "Flour"}}
	results := Match([]string{"2 cups flour"}, pantry)
	require.Len(t, results, 1)
	assert.True(t, results[0].HasIt)
	assert.Equal(t, "Flour", results[0].Matched.Name)
}

func TestMatchPreservesOrder(t *testing.T) {
	lines := []string{"2 cups flour", "3 eggs", "1 cup sugar"}
	results := Match(lines, nil)
	require.Len(t, results, 3)
	for i, line := range lines {
		assert.Equal(t, line, results[i].Ingredient)
	}
}

func TestMatchEmptyLine(t *testing.T) {
	// An empty line must not match everything via an empty key
	results := Match([]string{""}, items("Flour", "Sugar"))
	require.Len(t, results, 1)
	assert.False(t, results[0].HasIt)
}

func TestMatchStripsDescriptors(t *testing.T) {
	results := Match([]string{"2 lbs boneless skinless chicken thighs"}, items("Chicken Thighs"))
	require.Len(t, results, 1)
	assert.True(t, results[0].HasIt)
}

func TestMatchEndToEnd(t *testing.T) {
	lines := []string{"2 cups flour", "3 eggs", "1 cup sugar"}
	pantry := items("All-Purpose Flour", "Sugar")

	results := Match(lines, pantry)
	require.Len(t, results, 3)
	assert.True(t, results[0].HasIt, "flour should match")
	assert.False(t, results[1].HasIt, "eggs should not match")
	assert.True(t, results[2].HasIt, "sugar should match")

	summary := Summarize(results)
	assert.Equal(t, 2, summary.HaveCount)
	assert.Equal(t, 1, summary.NeedCount)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 67, summary.MatchPercentage)

	assert.Equal(t, []string{"3 eggs"}, Missing(results))
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, Summarize([]Result{}))
}

func TestSummarizeInvariants(t *testing.T) {
	for n := 0; n <= 10; n++ {
		for have := 0; have <= n; have++ {
			results := make([]Result, n)
			for i := 0; i < have; i++ {
				results[i].HasIt = true
			}
			s := Summarize(results)
			label := fmt.Sprintf("have=%d total=%d", have, n)
			assert.Equal(t, n, s.HaveCount+s.NeedCount, label)
			assert.Equal(t, n, s.TotalCount, label)
			assert.GreaterOrEqual(t, s.MatchPercentage, 0, label)
			assert.LessOrEqual(t, s.MatchPercentage, 100, label)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2 cups all-purpose flour", "all-purpose flour"},
		{"3 large eggs", "eggs"},
		{"1 lb fresh organic chicken breast", "chicken breast"},
		{"Salt", "salt"},
		{"2", "2"}, // stripping everything keeps the core as key
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.line), "line %q", tt.line)
	}
}

func TestKeyKnownOverMatch(t *testing.T) {
	// Containment is intentionally permissive: "pea" matches "peanut".
	// Documented behavior, kept for compatibility.
	results := Match([]string{"1 pea"}, items("Peanut Butter"))
	require.Len(t, results, 1)
	assert.True(t, results[0].HasIt)
}
