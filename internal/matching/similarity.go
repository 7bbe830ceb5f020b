package matching

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	exactMatchWeight   = 1.0
	partialMatchWeight = 0.5
)

// Similarity scores how well a segment's keywords are covered by a video's tags.
// Each keyword contributes 1 for an exact tag match, 0.5 when it and some tag
// contain one another, and 0 otherwise; the sum is divided by the keyword count.
// Comparison is case-insensitive and blank keywords or tags are ignored. The
// result is in [0, 1].
func Similarity(keywords, tags []string) float64 {
	if len(keywords) == 0 || len(tags) == 0 {
		return 0
	}

	lower := cases.Lower(language.Und)
	normTags := make([]string, 0, len(tags))
	for _, t := range tags {
		if n := normalize(lower, t); n != "" {
			normTags = append(normTags, n)
		}
	}
	if len(normTags) == 0 {
		return 0
	}

	var total float64
	counted := 0
	for _, k := range keywords {
		n := normalize(lower, k)
		if n == "" {
			continue
		}
		counted++
		total += keywordWeight(n, normTags)
	}
	if counted == 0 {
		return 0
	}

	return min(total/float64(counted), 1)
}

func keywordWeight(keyword string, tags []string) float64 {
	for _, t := range tags {
		if t == keyword {
			return exactMatchWeight
		}
	}
	for _, t := range tags {
		if strings.Contains(t, keyword) || strings.Contains(keyword, t) {
			return partialMatchWeight
		}
	}
	return 0
}

func normalize(c cases.Caser, s string) string {
	return strings.TrimSpace(c.String(s))
}
