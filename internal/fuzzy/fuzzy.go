// Package fuzzy scores how well a user-typed query matches a name.
//
// Scores are in [0,100]. Matching is case-insensitive and takes the best of a plain
// Levenshtein ratio, a partial ratio (the query against every same-length window of
// the longer string) and a token-set ratio, so exact equality and substrings score 100.
package fuzzy

import (
	"math"
	"slices"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

func newMetric() *metrics.Levenshtein {
	m := metrics.NewLevenshtein()
	m.CaseSensitive = false
	return m
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func ratio(m *metrics.Levenshtein, a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(a, b, m)
}

func partialRatio(m *metrics.Levenshtein, a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	needle := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		if s := ratio(m, needle, string(long[i:i+len(short)])); s > best {
			best = s
			if best == 1 {
				break
			}
		}
	}
	return best
}

func tokenSetRatio(m *metrics.Levenshtein, a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)

	var common, onlyA, onlyB []string
	for _, t := range ta {
		if slices.Contains(tb, t) {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if !slices.Contains(ta, t) {
			onlyB = append(onlyB, t)
		}
	}

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	return max(ratio(m, base, withA), ratio(m, base, withB), ratio(m, withA, withB))
}

func tokenSet(s string) []string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return slices.Compact(tokens)
}

// Score returns the similarity of query and candidate in [0,100].
func Score(query, candidate string) int {
	q, c := normalize(query), normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	if q == c || strings.Contains(c, q) || strings.Contains(q, c) {
		return 100
	}

	m := newMetric()
	best := max(ratio(m, q, c), partialRatio(m, q, c), tokenSetRatio(m, q, c))

	return int(math.Round(best * 100))
}

// Best returns the index and score of the candidate that best matches query.
// Ties go to the earliest candidate. The index is -1 when there are no candidates.
func Best(query string, candidates []string) (index, score int) {
	index = -1
	for i, candidate := range candidates {
		s := Score(query, candidate)
		if index == -1 || s > score {
			index, score = i, s
		}
	}
	return index, score
}
