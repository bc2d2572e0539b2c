package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Parsed
	}{
		{
			name:  "quantity and unit",
			input: "2 cups flour",
			want:  Parsed{Original: "2 cups flour", Amount: "2 cups", Core: "flour"},
		},
		{
			name:  "quantity unit and preparation",
			input: "2 cups all-purpose flour, chopped",
			want:  Parsed{Original: "2 cups all-purpose flour, chopped", Amount: "2 cups", Core: "all-purpose flour", Preparation: "chopped"},
		},
		{
			name:  "comma separated preparation",
			input: "Salt, to taste",
			want:  Parsed{Original: "Salt, to taste", Core: "salt", Preparation: "to taste"},
		},
		{
			name:  "preparation without comma",
			input: "Salt to taste",
			want:  Parsed{Original: "Salt to taste", Core: "salt", Preparation: "to taste"},
		},
		{
			name:  "plain name",
			input: "Salt",
			want:  Parsed{Original: "Salt", Core: "salt"},
		},
		{
			name:  "text quantity with unit and of",
			input: "a pinch of salt",
			want:  Parsed{Original: "a pinch of salt", Amount: "a pinch", Core: "salt"},
		},
		{
			name:  "compound fraction",
			input: "1 ½ cups sugar",
			want:  Parsed{Original: "1 ½ cups sugar", Amount: "1 ½ cups", Core: "sugar"},
		},
		{
			name:  "plain fraction",
			input: "1 1/2 cups milk",
			want:  Parsed{Original: "1 1/2 cups milk", Amount: "1 1/2 cups", Core: "milk"},
		},
		{
			name:  "range quantity",
			input: "1-2 cloves garlic, minced",
			want:  Parsed{Original: "1-2 cloves garlic, minced", Amount: "1-2 cloves", Core: "garlic", Preparation: "minced"},
		},
		{
			name:  "quantity without unit",
			input: "3 large eggs",
			want:  Parsed{Original: "3 large eggs", Amount: "3", Core: "large eggs"},
		},
		{
			name:  "abbreviated unit with dot",
			input: "2 tbsp. olive oil",
			want:  Parsed{Original: "2 tbsp. olive oil", Amount: "2 tbsp.", Core: "olive oil"},
		},
		{
			name:  "parenthesized preparation",
			input: "Butter (room temperature)",
			want:  Parsed{Original: "Butter (room temperature)", Core: "butter", Preparation: "room temperature"},
		},
		{
			name:  "longer phrase wins over suffix",
			input: "1 onion, finely chopped",
			want:  Parsed{Original: "1 onion, finely chopped", Amount: "1", Core: "onion", Preparation: "finely chopped"},
		},
		{
			name:  "empty input",
			input: "",
			want:  Parsed{Original: ""},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  Parsed{Original: "   "},
		},
		{
			name:  "stripping everything falls back to original",
			input: "2",
			want:  Parsed{Original: "2", Amount: "2", Core: "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseTotality(t *testing.T) {
	inputs := []string{
		"", " ", "\t\n", "2", "½", "of", "a", "()", ",,,",
		"no quantity here at all",
		"1000000 cups of nothing, finely chopped (divided)",
	}
	for _, input := range inputs {
		p := Parse(input)
		assert.Equal(t, input, p.Original)
		if len(input) > 0 && len(p.Core) == 0 {
			// Core must be non-empty whenever the input has any
			// non-whitespace content
			assert.Empty(t, collapse(input))
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	input := "2 cups all-purpose flour, sifted"
	assert.Equal(t, Parse(input), Parse(input))
}

func TestParseCleanNameStable(t *testing.T) {
	// Re-parsing an already-stripped core name must not change it
	assert.Equal(t, "flour", Parse(Parse("2 cups flour").Core).Core)
	assert.Equal(t, "flour", Parse("flour").Core)
}

func TestParseKeepsRangesOpaque(t *testing.T) {
	// Ranges are display strings, never averaged or summed
	assert.Equal(t, "1-2", Parse("1-2 eggs").Amount)
}
