package ingredient

// Vocabularies used by the parser. They are plain data so they can be
// extended without touching the parsing logic. Multi-word entries and
// longer spellings must sort before their shorter prefixes; the parser
// tries entries in order and takes the first hit.

// textQuantities are words that stand in for a numeric quantity,
// e.g. "a pinch of salt" or "several sprigs of thyme".
var textQuantities = []string{
	"a", "an",
	"one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
	"some", "few", "several",
}

// units covers volume, weight and count measures, with plural and
// abbreviation variants. Longest spellings first.
var units = []string{
	// volume
	"tablespoons", "tablespoon", "tbsps", "tbsp", "tbs",
	"teaspoons", "teaspoon", "tsps", "tsp",
	"fluid ounces", "fluid ounce", "fl oz", "fl. oz",
	"milliliters", "milliliter", "millilitres", "millilitre", "ml",
	"liters", "liter", "litres", "litre", "l",
	"gallons", "gallon", "gal",
	"quarts", "quart", "qt",
	"pints", "pint", "pt",
	"cups", "cup",

	// weight
	"kilograms", "kilogram", "kgs", "kg",
	"milligrams", "milligram", "mg",
	"grams", "gram", "g",
	"pounds", "pound", "lbs", "lb",
	"ounces", "ounce", "oz",

	// count
	"packages", "package", "pkgs", "pkg",
	"handfuls", "handful",
	"pinches", "pinch",
	"bunches", "bunch",
	"sprigs", "sprig",
	"slices", "slice",
	"pieces", "piece",
	"cloves", "clove",
	"sticks", "stick",
	"dashes", "dash",
	"heads", "head",
	"cans", "can",
	"jars", "jar",
}

// preparations are trailing descriptors that indicate how an ingredient
// should be prepared, or a qualifier in lieu of an amount. Longer phrases
// first so "finely chopped" wins over "chopped".
var preparations = []string{
	"at room temperature",
	"room temperature",
	"coarsely chopped",
	"roughly chopped",
	"finely chopped",
	"finely diced",
	"thinly sliced",
	"finely grated",
	"freshly ground",
	"for garnish",
	"for serving",
	"plus more",
	"to taste",
	"julienned",
	"quartered",
	"shredded",
	"softened",
	"crumbled",
	"optional",
	"divided",
	"trimmed",
	"drained",
	"chopped",
	"crushed",
	"whisked",
	"toasted",
	"grated",
	"peeled",
	"mashed",
	"melted",
	"beaten",
	"sifted",
	"halved",
	"rinsed",
	"minced",
	"sliced",
	"zested",
	"juiced",
	"diced",
	"cubed",
}
