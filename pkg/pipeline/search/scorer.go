package search

import "strings"

// Relevance computes token-set Jaccard similarity between two texts.
// Both inputs are lower-cased and split on whitespace; the score is
// |A ∩ B| / |A ∪ B|, defined as 0 when the union is empty.
//
// Known limitation: no stemming or accent normalization is applied, so
// near-duplicate phrasings ("inscripción" vs "inscripcion", plurals)
// under-score. This mirrors the production ranking behavior on purpose.
func Relevance(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
