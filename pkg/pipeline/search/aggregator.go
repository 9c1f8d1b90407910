package search

import (
	"sort"
	"strings"
)

// Origin identifies which retrieval path produced a context item.
type Origin string

const (
	OriginSemantic   Origin = "semantic"
	OriginPattern    Origin = "pattern"
	OriginDepartment Origin = "department"
	OriginFAQ        Origin = "faq"
)

// Top-K truncation applied after ranking. The standard path keeps 3
// items; merges across multiple retrieval sources keep up to 5.
const (
	TopKStandard = 3
	TopKMerged   = 5
)

// Minimum length for a snippet to be worth keeping as context.
const minSnippetLength = 50

// ContextItem is a retrieved snippet considered as supporting evidence
// for an answer. Items are owned transiently by one request.
type ContextItem struct {
	Content string
	Origin  Origin
}

// RankedItem is a context item scored against the query.
type RankedItem struct {
	ContextItem
	Relevance float64
}

// Aggregate merges candidate lists, removes exact duplicates (first
// occurrence wins), ranks every survivor against the query with the
// Jaccard relevance scorer and truncates to topK.
//
// The sort is stable: ties keep their original relative order. The
// result never contains duplicates and is empty iff the deduplicated
// input is empty; callers must apply a general-knowledge fallback in
// that case.
func Aggregate(query string, items []ContextItem, topK int) []RankedItem {
	if topK <= 0 {
		topK = TopKStandard
	}

	seen := make(map[string]struct{}, len(items))
	ranked := make([]RankedItem, 0, len(items))

	queryLower := strings.ToLower(query)
	for _, item := range items {
		if _, dup := seen[item.Content]; dup {
			continue
		}
		seen[item.Content] = struct{}{}

		ranked = append(ranked, RankedItem{
			ContextItem: item,
			Relevance:   Relevance(queryLower, strings.ToLower(item.Content)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	return ranked
}

// Merge builds the combined candidate list from the two retrieval paths,
// dropping snippets too short to carry useful information.
func Merge(semantic, pattern []string) []ContextItem {
	items := make([]ContextItem, 0, len(semantic)+len(pattern))
	for _, s := range semantic {
		if len(strings.TrimSpace(s)) > minSnippetLength {
			items = append(items, ContextItem{Content: s, Origin: OriginSemantic})
		}
	}
	for _, p := range pattern {
		if len(strings.TrimSpace(p)) > minSnippetLength {
			items = append(items, ContextItem{Content: p, Origin: OriginPattern})
		}
	}
	return items
}

// Contents extracts the plain snippet texts from a ranked list, in rank
// order, for consumers that only need the text (prompt building,
// quality assessment).
func Contents(ranked []RankedItem) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Content
	}
	return out
}
