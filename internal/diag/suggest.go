package diag

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest looks for the closest match to name among candidates (by
// case-insensitive edit distance) and returns it if one is close enough to be
// worth a "did you mean" help line. It backs the
// undefined-variable/undefined-function diagnostics raised by both execution
// back ends.
func Suggest(name string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	// A large edit distance relative to the query is not a real suggestion.
	if bestDist < 0 || bestDist > len(name)/2 {
		return "", false
	}
	return best, true
}
