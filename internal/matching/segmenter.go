package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/flipdirmatze/ad-video-generator/models"
)

// SegmentFromTimestamps groups word timings into sentence segments. A sentence
// ends at a word ending in '.', '?' or '!', or at the last word of the input.
// Keywords are left empty for a later enrichment step.
func SegmentFromTimestamps(words []models.WordTimestamp) ([]models.ScriptSegment, error) {
	if len(words) == 0 {
		return []models.ScriptSegment{}, nil
	}
	if err := validateTimestamps(words); err != nil {
		return nil, err
	}

	segments := make([]models.ScriptSegment, 0)
	runStart := 0
	for i, w := range words {
		if !endsSentence(w.Word) && i != len(words)-1 {
			continue
		}
		segments = append(segments, buildSegment(len(segments)+1, words[runStart:i+1]))
		runStart = i + 1
	}
	return segments, nil
}

func buildSegment(index int, run []models.WordTimestamp) models.ScriptSegment {
	texts := make([]string, len(run))
	for i, w := range run {
		texts[i] = w.Word
	}
	start := run[0].StartTime
	end := run[len(run)-1].EndTime

	return models.ScriptSegment{
		ID:       fmt.Sprintf("seg_%d", index),
		Text:     strings.Join(texts, " "),
		Duration: round2(end - start),
		Keywords: []string{},
		Position: start,
	}
}

func endsSentence(word string) bool {
	w := strings.TrimSpace(word)
	return strings.HasSuffix(w, ".") || strings.HasSuffix(w, "?") || strings.HasSuffix(w, "!")
}

func validateTimestamps(words []models.WordTimestamp) error {
	prevStart := 0.0
	for i, w := range words {
		switch {
		case w.StartTime < 0:
			return fmt.Errorf("%w: word %d (%q) starts at negative time %v", ErrMalformedTimestamps, i, w.Word, w.StartTime)
		case w.EndTime < w.StartTime:
			return fmt.Errorf("%w: word %d (%q) ends at %v before it starts at %v", ErrMalformedTimestamps, i, w.Word, w.EndTime, w.StartTime)
		case i > 0 && w.StartTime < prevStart:
			return fmt.Errorf("%w: word %d (%q) starts at %v, earlier than the previous word", ErrMalformedTimestamps, i, w.Word, w.StartTime)
		}
		prevStart = w.StartTime
	}
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
