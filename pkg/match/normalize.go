package match

import (
	"strings"

	"github.com/pantrychef/pantrychef/pkg/ingredient"
)

// The matching key uses a broader vocabulary than the parser: when
// deciding whether "2 lbs boneless chicken thighs" is covered by a
// pantry entry "Chicken", size words, state words and leftover measure
// words all get in the way and are dropped. This is the single shared
// vocabulary for both match display and substitution gating.

// unitWords are measure words stripped from matching keys. Unlike the
// parser's unit list these are matched anywhere in the name, not just
// after a quantity.
var unitWords = []string{
	"cups", "cup", "tablespoons", "tablespoon", "tbsp", "tbs",
	"teaspoons", "teaspoon", "tsp", "ounces", "ounce", "oz",
	"pounds", "pound", "lbs", "lb", "grams", "gram", "kilograms",
	"kilogram", "kg", "milliliters", "milliliter", "ml", "liters",
	"liter", "pints", "pint", "quarts", "quart", "gallons", "gallon",
	"pieces", "piece", "slices", "slice", "cloves", "clove", "cans",
	"can", "jars", "jar", "packages", "package", "bunches", "bunch",
	"sprigs", "sprig", "pinches", "pinch", "dashes", "dash",
	"handfuls", "handful", "sticks", "stick", "heads", "head", "of",
}

// descriptorWords are qualifiers that never change what the ingredient
// fundamentally is.
var descriptorWords = []string{
	"fresh", "freshly", "organic", "raw", "cooked", "frozen", "dried",
	"ground", "whole", "boneless", "skinless", "skin-on", "bone-in",
	"large", "medium", "small", "extra-large", "jumbo", "baby", "ripe",
	"unsalted", "salted", "sweetened", "unsweetened", "low-fat",
	"full-fat", "fat-free", "reduced-fat", "low-sodium", "canned",
	"packed", "heaping", "level", "extra-virgin", "virgin", "chopped",
	"minced", "diced", "sliced", "grated", "shredded", "crushed",
	"peeled", "melted", "softened", "divided", "optional",
}

var keyStopWords = buildKeyStopWords()

func buildKeyStopWords() map[string]struct{} {
	stop := make(map[string]struct{}, len(unitWords)+len(descriptorWords))
	for _, w := range unitWords {
		stop[w] = struct{}{}
	}
	for _, w := range descriptorWords {
		stop[w] = struct{}{}
	}
	return stop
}

// Key reduces a free-text ingredient line to the string used for
// containment matching: the parsed core name with digits, fractions,
// punctuation, measure words and descriptors removed. When stripping
// would erase the name entirely the core is kept as the key, so a line
// like "2" still gets a non-empty, never-matching-everything key.
func Key(line string) string {
	core := ingredient.Parse(line).Core
	if core == "" {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return -1
		case strings.ContainsRune("¼½¾⅐⅑⅒⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞", r):
			return -1
		case strings.ContainsRune(".,;:()[]/\\!?\"'", r):
			return -1
		case r == '-':
			// keep hyphens inside compound names ("all-purpose")
			return r
		default:
			return r
		}
	}, core)

	var kept []string
	for _, word := range strings.Fields(cleaned) {
		if _, stop := keyStopWords[strings.Trim(word, "-")]; stop {
			continue
		}
		kept = append(kept, word)
	}

	key := strings.Join(kept, " ")
	if key == "" {
		return core
	}
	return key
}
