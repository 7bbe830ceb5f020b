package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flipdirmatze/ad-video-generator/models"
)

const (
	SegmentSourceAnalysis   = "analysis"
	SegmentSourceTimestamps = "timestamps"

	StrategyAI         = "ai"
	StrategyAIFallback = "ai+fallback"
	StrategyFallback   = "fallback"

	// wordsPerSecond estimates voiceover pace when the analyzer gives no duration.
	wordsPerSecond = 2.5

	defaultAnalysisTimeout = 60 * time.Second
	defaultMatchTimeout    = 30 * time.Second
)

// Deps are the external capabilities the orchestrator talks to. Matcher and
// Enricher are optional; Analyzer is only needed for requests without word timings.
type Deps struct {
	Analyzer ScriptAnalyzer
	Matcher  VideoMatcher
	Enricher KeywordEnricher
	Logger   logrus.FieldLogger
}

// Options bounds the external calls. Zero values select the defaults.
type Options struct {
	AnalysisTimeout time.Duration
	MatchTimeout    time.Duration
}

// Orchestrator turns a script and a tagged-video pool into segment matches.
type Orchestrator struct {
	d    Deps
	opts Options
}

// New returns an Orchestrator. A nil logger falls back to the logrus standard logger.
func New(d Deps, opts Options) *Orchestrator {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = defaultAnalysisTimeout
	}
	if opts.MatchTimeout <= 0 {
		opts.MatchTimeout = defaultMatchTimeout
	}
	return &Orchestrator{d: d, opts: opts}
}

// Input is one matching request. When Words is non-empty the segments are cut
// from the voice timings; otherwise Script is sent to the analyzer.
type Input struct {
	Script string
	Words  []models.WordTimestamp
	Videos []models.TaggedVideo
}

// Result is the outcome of one Run. Unmatched lists the ids of segments without a match, in segment order.
type Result struct {
	Segments      []models.ScriptSegment `json:"segments"`
	Matches       []models.VideoMatch    `json:"matches"`
	Unmatched     []string               `json:"unmatched_segment_ids"`
	SegmentSource string                 `json:"segment_source"`
	Strategy      string                 `json:"strategy"`
	DroppedPairs  int                    `json:"dropped_pairs"`
}

// Run segments the script and pairs each segment with a tagged video. AI matching
// is preferred; the deterministic assigner covers an unavailable matcher and any
// segment the matcher left unpaired.
func (o *Orchestrator) Run(ctx context.Context, in Input) (*Result, error) {
	eligible := EligibleVideos(in.Videos)
	if len(eligible) == 0 {
		return nil, ErrNoEligibleCandidates
	}

	segments, source, err := o.segments(ctx, in)
	if err != nil {
		return nil, err
	}
	segments = o.enrich(ctx, segments)

	res := &Result{Segments: segments, SegmentSource: source}
	o.match(ctx, res, eligible)

	matched := make(map[string]bool, len(res.Matches))
	for _, m := range res.Matches {
		matched[m.Segment.ID] = true
	}
	res.Unmatched = []string{}
	for _, s := range segments {
		if !matched[s.ID] {
			res.Unmatched = append(res.Unmatched, s.ID)
		}
	}

	o.d.Logger.WithFields(logrus.Fields{
		"segments":      len(res.Segments),
		"matches":       len(res.Matches),
		"unmatched":     len(res.Unmatched),
		"strategy":      res.Strategy,
		"dropped_pairs": res.DroppedPairs,
	}).Info("Script matching completed")
	return res, nil
}

// EligibleVideos keeps only videos that carry at least one tag.
func EligibleVideos(videos []models.TaggedVideo) []models.TaggedVideo {
	out := make([]models.TaggedVideo, 0, len(videos))
	for _, v := range videos {
		if v.HasTags() {
			out = append(out, v)
		}
	}
	return out
}

func (o *Orchestrator) segments(ctx context.Context, in Input) ([]models.ScriptSegment, string, error) {
	if len(in.Words) > 0 {
		segs, err := SegmentFromTimestamps(in.Words)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrSegmentationFailed, err)
		}
		return segs, SegmentSourceTimestamps, nil
	}

	script := strings.TrimSpace(in.Script)
	if script == "" {
		return nil, "", fmt.Errorf("%w: script is empty", ErrSegmentationFailed)
	}
	if o.d.Analyzer == nil {
		return nil, "", fmt.Errorf("%w: no script analyzer configured and no word timings supplied", ErrSegmentationFailed)
	}

	actx, cancel := context.WithTimeout(ctx, o.opts.AnalysisTimeout)
	defer cancel()

	analyzed, err := o.d.Analyzer.AnalyzeScript(actx, script)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrSegmentationFailed, err)
	}

	segs := make([]models.ScriptSegment, 0, len(analyzed))
	position := 0.0
	for _, a := range analyzed {
		text := strings.TrimSpace(a.Text)
		if text == "" {
			continue
		}
		duration := estimateDuration(text)
		if a.Duration != nil && *a.Duration >= 0 {
			duration = round2(*a.Duration)
		}
		keywords := a.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		segs = append(segs, models.ScriptSegment{
			ID:       uuid.NewString(),
			Text:     text,
			Duration: duration,
			Keywords: keywords,
			Position: round2(position),
		})
		position += duration
	}
	if len(segs) == 0 {
		return nil, "", fmt.Errorf("%w: analysis returned no segments", ErrSegmentationFailed)
	}
	return segs, SegmentSourceAnalysis, nil
}

// enrich fills empty keyword lists. A failure is logged and leaves segments as they were.
func (o *Orchestrator) enrich(ctx context.Context, segments []models.ScriptSegment) []models.ScriptSegment {
	if o.d.Enricher == nil {
		return segments
	}
	var idx []int
	var texts []string
	for i, s := range segments {
		if len(s.Keywords) == 0 {
			idx = append(idx, i)
			texts = append(texts, s.Text)
		}
	}
	if len(texts) == 0 {
		return segments
	}

	ectx, cancel := context.WithTimeout(ctx, o.opts.AnalysisTimeout)
	defer cancel()

	keywords, err := o.d.Enricher.ExtractKeywords(ectx, texts)
	if err == nil && len(keywords) != len(texts) {
		err = fmt.Errorf("got %d keyword lists for %d segments", len(keywords), len(texts))
	}
	if err != nil {
		o.d.Logger.WithError(err).Warn("Keyword enrichment failed, continuing without keywords")
		return segments
	}

	out := make([]models.ScriptSegment, len(segments))
	copy(out, segments)
	for j, i := range idx {
		if keywords[j] != nil {
			out[i].Keywords = keywords[j]
		}
	}
	return out
}

func (o *Orchestrator) match(ctx context.Context, res *Result, candidates []models.TaggedVideo) {
	var aiMatches []models.VideoMatch
	if o.d.Matcher != nil {
		pairs, err := o.findPairs(ctx, res.Segments, candidates)
		if err != nil {
			o.d.Logger.WithError(err).Warn("AI matching unavailable, using tag matcher")
		} else {
			aiMatches, res.DroppedPairs = Reconcile(pairs, res.Segments, candidates)
			if res.DroppedPairs > 0 {
				o.d.Logger.WithField("dropped_pairs", res.DroppedPairs).Warn("AI matcher returned pairs with unknown ids")
			}
		}
	}

	if len(aiMatches) == 0 {
		res.Matches = MatchAll(res.Segments, candidates)
		res.Strategy = StrategyFallback
		return
	}

	res.Strategy = StrategyAI
	paired := make(map[string]models.VideoMatch, len(aiMatches))
	for _, m := range aiMatches {
		paired[m.Segment.ID] = m
	}
	res.Matches = make([]models.VideoMatch, 0, len(res.Segments))
	for _, s := range res.Segments {
		if m, ok := paired[s.ID]; ok {
			res.Matches = append(res.Matches, m)
			continue
		}
		if m, ok := BestMatch(s, candidates); ok {
			res.Matches = append(res.Matches, m)
			res.Strategy = StrategyAIFallback
		}
	}
}

func (o *Orchestrator) findPairs(ctx context.Context, segments []models.ScriptSegment, candidates []models.TaggedVideo) ([]SegmentPair, error) {
	mctx, cancel := context.WithTimeout(ctx, o.opts.MatchTimeout)
	defer cancel()

	pairs, err := o.d.Matcher.FindBestMatches(mctx, AnnotateScript(segments), candidates)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(mctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", ErrAIMatchingUnavailable, o.opts.MatchTimeout)
		}
		return nil, fmt.Errorf("%w: %w", ErrAIMatchingUnavailable, err)
	}
	return pairs, nil
}

// Reconcile resolves AI pairs against the known segments and candidates. Pairs
// naming an unknown id are dropped and counted; only the first pair for a
// segment is kept. Resolved pairs are trusted with score 1.
func Reconcile(pairs []SegmentPair, segments []models.ScriptSegment, candidates []models.TaggedVideo) ([]models.VideoMatch, int) {
	segByID := make(map[string]models.ScriptSegment, len(segments))
	for _, s := range segments {
		segByID[s.ID] = s
	}
	videoByID := make(map[string]models.TaggedVideo, len(candidates))
	for _, v := range candidates {
		videoByID[v.ID] = v
	}

	dropped := 0
	seen := make(map[string]bool, len(pairs))
	matches := make([]models.VideoMatch, 0, len(pairs))
	for _, p := range pairs {
		seg, okSeg := segByID[strings.TrimSpace(p.SegmentID)]
		video, okVideo := videoByID[strings.TrimSpace(p.VideoID)]
		if !okSeg || !okVideo {
			dropped++
			continue
		}
		if seen[seg.ID] {
			continue
		}
		seen[seg.ID] = true
		matches = append(matches, models.VideoMatch{
			Segment: seg,
			Video:   video,
			Score:   1,
			Source:  models.MatchSourceAuto,
		})
	}
	return matches, dropped
}

// AnnotateScript renders segments one per line with their ids so the AI
// matcher can answer by id.
func AnnotateScript(segments []models.ScriptSegment) string {
	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "[%s] %s", s.ID, s.Text)
		if len(s.Keywords) > 0 {
			fmt.Fprintf(&b, " (keywords: %s)", strings.Join(s.Keywords, ", "))
		}
		fmt.Fprintf(&b, " (duration: %.2fs)\n", s.Duration)
	}
	return b.String()
}

func estimateDuration(text string) float64 {
	words := len(strings.Fields(text))
	return round2(math.Max(float64(words)/wordsPerSecond, 0))
}
