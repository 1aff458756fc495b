package expr

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the closest known function name for a misspelled one, or ""
// when nothing is close enough.
func Suggest(name string) string {
	candidates := FunctionNames()

	// Subsequence matches first ("sn" -> "sin", "sinh").
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	// Fall back to edit distance for transpositions ("sni" -> "sin").
	best, bestDist := "", 3
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(name, c)
		if d > 1 && anagram(name, c) {
			d = 1
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func anagram(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	ra, rb := []byte(a), []byte(b)
	sort.Slice(ra, func(i, j int) bool { return ra[i] < ra[j] })
	sort.Slice(rb, func(i, j int) bool { return rb[i] < rb[j] })
	return string(ra) == string(rb)
}
