package matching

import (
	"context"

	"github.com/flipdirmatze/ad-video-generator/models"
)

// AnalyzedSegment is one semantic segment returned by script analysis.
// Duration is nil when the analyzer did not estimate it.
type AnalyzedSegment struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
	Duration *float64 `json:"duration,omitempty"`
}

// SegmentPair is a pairing proposed by the AI matcher, by id only.
type SegmentPair struct {
	SegmentID string `json:"segmentId"`
	VideoID   string `json:"videoId"`
}

// ScriptAnalyzer splits raw script text into semantic segments.
type ScriptAnalyzer interface {
	AnalyzeScript(ctx context.Context, script string) ([]AnalyzedSegment, error)
}

// VideoMatcher proposes segment/video pairs for an annotated script.
// Partial or empty answers are allowed.
type VideoMatcher interface {
	FindBestMatches(ctx context.Context, annotatedScript string, candidates []models.TaggedVideo) ([]SegmentPair, error)
}

// KeywordEnricher returns one keyword list per input text, in input order.
type KeywordEnricher interface {
	ExtractKeywords(ctx context.Context, texts []string) ([][]string, error)
}
