// Package match decides which ingredient lines of a recipe are covered
// by a chat's pantry. Matching is a deliberately loose bidirectional
// substring containment on normalized names, so "egg" covers "3 large
// eggs" and "cheddar" covers "cheddar cheese". The looseness is a
// feature: over-matching is the accepted trade-off for a convenience
// display, and callers must not tighten it.
package match

import (
	"math"
	"strings"

	"github.com/pantrychef/pantrychef/pkg/models"
)

// Result is the per-ingredient outcome of a pantry match
type Result struct {
	Ingredient string             `json:"ingredient"` // original line text
	HasIt      bool               `json:"has_it"`
	Matched    *models.PantryItem `json:"matched,omitempty"` // first pantry item that satisfied the match
}

// Summary aggregates a list of Results
type Summary struct {
	HaveCount       int `json:"have_count"`
	NeedCount       int `json:"need_count"`
	TotalCount      int `json:"total_count"`
	MatchPercentage int `json:"match_percentage"` // 0-100, rounded
}

// Match checks every ingredient line against the pantry items. Results
// preserve the input order; the first item satisfying containment wins,
// no ranking among candidates. Items without a name never match.
func Match(lines []string, items []models.PantryItem) []Result {
	results := make([]Result, 0, len(lines))

	for _, line := range lines {
		result := Result{Ingredient: line}
		key := Key(line)

		if key != "" {
			for i := range items {
				name := strings.ToLower(strings.TrimSpace(items[i].Name))
				if name == "" {
					continue
				}
				if strings.Contains(name, key) || strings.Contains(key, name) {
					result.HasIt = true
					result.Matched = &items[i]
					break
				}
			}
		}

		results = append(results, result)
	}

	return results
}

// Missing returns the original line text of every unmatched ingredient,
// in input order. This is what a shopping list gets built from.
func Missing(results []Result) []string {
	var missing []string
	for _, r := range results {
		if !r.HasIt {
			missing = append(missing, r.Ingredient)
		}
	}
	return missing
}

// Summarize computes coverage statistics over match results. An empty
// input yields all zeroes, never a division by zero.
func Summarize(results []Result) Summary {
	s := Summary{TotalCount: len(results)}
	for _, r := range results {
		if r.HasIt {
			s.HaveCount++
		}
	}
	s.NeedCount = s.TotalCount - s.HaveCount

	if s.TotalCount > 0 {
		s.MatchPercentage = int(math.Round(float64(s.HaveCount) / float64(s.TotalCount) * 100))
	}
	return s
}
