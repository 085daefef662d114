package menu

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityCutoff is the minimum ratio a fuzzy candidate needs to be accepted.
const SimilarityCutoff = 0.7

func chars(s string) []string {
	return strings.Split(s, "")
}

// Similarity is the difflib ratio 2*M/T between two strings, compared rune by rune.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// closestMatch returns the single best candidate whose similarity to word reaches the cutoff.
// Equal scores go to the lexically greater candidate.
func closestMatch(word string, candidates []string) (string, bool) {
	matcher := difflib.NewMatcher(nil, chars(word))

	var (
		best      string
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		matcher.SetSeq1(chars(c))
		if matcher.RealQuickRatio() < SimilarityCutoff || matcher.QuickRatio() < SimilarityCutoff {
			continue
		}

		score := matcher.Ratio()
		if score < SimilarityCutoff {
			continue
		}
		if !found || score > bestScore || (score == bestScore && c > best) {
			best, bestScore, found = c, score, true
		}
	}

	return best, found
}
