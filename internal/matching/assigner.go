package matching

import "github.com/flipdirmatze/ad-video-generator/models"

// MinAcceptScore is the exclusive lower bound a candidate must beat to be matched.
const MinAcceptScore = 0.1

// BestMatch returns the highest scoring candidate for the segment. Ties go to the
// candidate that appears first. ok is false when the segment has no keywords,
// there are no candidates, or no candidate scores above MinAcceptScore.
func BestMatch(segment models.ScriptSegment, candidates []models.TaggedVideo) (match models.VideoMatch, ok bool) {
	if len(segment.Keywords) == 0 || len(candidates) == 0 {
		return models.VideoMatch{}, false
	}

	best := -1
	highest := 0.0
	for i, c := range candidates {
		if len(c.Tags) == 0 {
			continue
		}
		if score := Similarity(segment.Keywords, c.Tags); score > highest {
			highest = score
			best = i
		}
	}

	if best < 0 || highest <= MinAcceptScore {
		return models.VideoMatch{}, false
	}
	return models.VideoMatch{
		Segment: segment,
		Video:   candidates[best],
		Score:   highest,
		Source:  models.MatchSourceAuto,
	}, true
}

// MatchAll runs BestMatch for every segment in order and drops segments without
// an acceptable match. A video may be chosen for more than one segment.
func MatchAll(segments []models.ScriptSegment, candidates []models.TaggedVideo) []models.VideoMatch {
	matches := make([]models.VideoMatch, 0, len(segments))
	for _, s := range segments {
		if m, ok := BestMatch(s, candidates); ok {
			matches = append(matches, m)
		}
	}
	return matches
}
