// Package ingredient parses free-text ingredient lines like
// "2 cups all-purpose flour, chopped" into a normalized core name plus
// optional amount and preparation parts. Parsing is heuristic and total:
// every input produces a result and nothing is ever reported as an error.
package ingredient

import (
	"regexp"
	"strings"
)

// Parsed is the result of parsing one ingredient line
type Parsed struct {
	Original    string `json:"original"`
	Amount      string `json:"amount,omitempty"`      // quantity plus unit, e.g. "2 cups" or "a pinch"
	Core        string `json:"core"`                  // normalized ingredient name, lower-cased
	Preparation string `json:"preparation,omitempty"` // trailing descriptor, e.g. "chopped"
}

const vulgarFractions = "¼½¾⅐⅑⅒⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞"

// quantityRe matches a leading numeric quantity: integers, decimals,
// plain and vulgar fractions, ranges ("1-2") and compounds ("1 ½", "1 1/2").
var quantityRe = regexp.MustCompile(
	`^(?:\d+(?:\.\d+)?(?:\s*[-–]\s*\d+(?:\.\d+)?)?(?:\s*(?:[` + vulgarFractions + `]|\d+/\d+))?|[` + vulgarFractions + `]|\d+/\d+)`)

// prepTrailingRe matches a preparation phrase at the very end of the text,
// for lines without a comma like "Salt to taste".
var prepTrailingRe = buildPrepTrailingRe()

func buildPrepTrailingRe() *regexp.Regexp {
	quoted := make([]string, len(preparations))
	for i, p := range preparations {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\s+(` + strings.Join(quoted, "|") + `)$`)
}

// Parse decomposes one free-text ingredient line. It never fails: when the
// heuristics find nothing to strip, Core is simply the trimmed input.
func Parse(text string) Parsed {
	p := Parsed{Original: text}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return p
	}
	rest := trimmed

	// Leading quantity: numeric first, then text words like "a" or "several"
	if qty := quantityRe.FindString(rest); qty != "" {
		p.Amount = collapse(qty)
		rest = strings.TrimSpace(rest[len(qty):])
	} else if word, n := leadingTextQuantity(rest); n > 0 {
		p.Amount = word
		rest = strings.TrimSpace(rest[n:])
	}

	// A unit only makes sense right after a captured quantity
	if p.Amount != "" {
		if unit, n := leadingUnit(rest); n > 0 {
			p.Amount += " " + unit
			rest = strings.TrimSpace(rest[n:])
			if len(rest) > 3 && strings.EqualFold(rest[:3], "of ") {
				rest = strings.TrimSpace(rest[3:])
			}
		}
	}

	// Trailing preparation, first from the last comma/paren segment,
	// then as a bare suffix ("Salt to taste")
	rest, p.Preparation = extractPreparation(rest)

	p.Core = strings.ToLower(collapse(rest))
	if p.Core == "" {
		p.Core = strings.ToLower(collapse(trimmed))
	}
	return p
}

// leadingTextQuantity matches a text-quantity word at the start of s and
// returns the word as written plus the number of bytes consumed.
func leadingTextQuantity(s string) (string, int) {
	token := s
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		token = s[:i]
	}
	for _, w := range textQuantities {
		if strings.EqualFold(token, w) {
			return token, len(token)
		}
	}
	return "", 0
}

// leadingUnit matches a unit token at the start of s, tolerating an
// abbreviation dot ("tbsp."). Returns the consumed text and its length.
func leadingUnit(s string) (string, int) {
	lower := strings.ToLower(s)
	for _, u := range units {
		if !strings.HasPrefix(lower, u) {
			continue
		}
		n := len(u)
		if n < len(s) && s[n] == '.' {
			n++
		}
		if n == len(s) || s[n] == ' ' || s[n] == ',' {
			return s[:n], n
		}
	}
	return "", 0
}

// extractPreparation strips a trailing preparation phrase from s and
// returns the remainder plus the phrase (empty when none was found).
func extractPreparation(s string) (string, string) {
	if seg, start := lastSegment(s); seg != "" {
		if matchesPreparation(seg) {
			return strings.TrimRight(s[:start], " \t,()"), seg
		}
	}

	if loc := prepTrailingRe.FindStringSubmatchIndex(s); loc != nil {
		return strings.TrimSpace(s[:loc[0]]), s[loc[2]:loc[3]]
	}

	return s, ""
}

// lastSegment returns the trimmed text of the last comma- or
// paren-delimited segment of s and the index where it starts.
func lastSegment(s string) (string, int) {
	idx := strings.LastIndexAny(strings.TrimRight(s, " \t()"), ",()")
	if idx < 0 {
		return "", 0
	}
	return strings.TrimSpace(strings.TrimRight(s[idx+1:], " \t()")), idx
}

// matchesPreparation reports whether the segment equals or ends with a
// known preparation phrase.
func matchesPreparation(seg string) bool {
	lower := strings.ToLower(seg)
	for _, p := range preparations {
		if lower == p || strings.HasSuffix(lower, " "+p) {
			return true
		}
	}
	return false
}

// collapse trims and collapses internal whitespace to single spaces
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
