// Package similarity provides the pluggable location-similarity strategy
// used by duplicate detection. The default character-overlap heuristic is
// a textual stand-in for geocoordinate distance; swapping in a real
// geo-based strategy does not touch detector call sites.
package similarity

import "strings"

// Strategy scores how alike two plot locations are, in [0, 1].
type Strategy interface {
	// Name identifies the strategy in reports and logs.
	Name() string
	// Score returns 1 for identical inputs, 0 for fully disjoint ones.
	// Implementations must be symmetric: Score(a, b) == Score(b, a).
	Score(a, b string) float64
}

// CharacterOverlap is the default strategy: containment ratio when one
// string contains the other, otherwise Jaccard similarity over the
// character sets of both strings. Case-insensitive.
type CharacterOverlap struct{}

func (CharacterOverlap) Name() string { return "character-overlap" }

func (CharacterOverlap) Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		if a == b {
			return 1
		}
		return 0
	}
	if a == b {
		return 1
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	return jaccard(charSet(a), charSet(b))
}

func charSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

func jaccard(a, b map[rune]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for r := range a {
		if _, ok := b[r]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
