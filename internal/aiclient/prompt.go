package aiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

// candidateRef is the part of a video the matcher needs to see.
type candidateRef struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func candidateRefs(videos []models.TaggedVideo) []candidateRef {
	out := make([]candidateRef, 0, len(videos))
	for _, v := range videos {
		out = append(out, candidateRef{ID: v.ID, Name: v.Name, Tags: v.Tags})
	}
	return out
}

func buildAnalysisPrompt(script string) string {
	return `You split advertising voiceover scripts into short scenes for video editing.

INSTRUCTIONS:
1. Split the script into segments of one sentence or one visual idea each, keeping the original wording and order.
2. For each segment list 3-6 concrete visual keywords (objects, places, actions) a stock clip could show.
3. Estimate the spoken duration in seconds at a natural ad voiceover pace.

Respond with JSON only, in this format:
{
  "segments": [
    {"text": "segment text", "keywords": ["keyword"], "duration": 2.4}
  ]
}

SCRIPT:
` + script
}

func buildMatchPrompt(annotatedScript string, candidatesJSON []byte) string {
	return `You pick the best video clip for each segment of an ad script.

Each script line starts with the segment id in square brackets. Each video has an id, a file name and tags
describing what it shows. Choose at most one video per segment, only when it fits the segment's meaning.
A video may be used for several segments. Use only ids that appear below.

Respond with JSON only, in this format:
{
  "matches": [
    {"segmentId": "id from the script", "videoId": "id from the videos"}
  ]
}

SCRIPT:
` + annotatedScript + `
VIDEOS:
` + string(candidatesJSON)
}

func buildKeywordPrompt(textsJSON []byte) string {
	return `For each text in the JSON array below, list 3-6 concrete visual keywords (objects, places, actions)
a stock video clip could show. Keep the output in the same order as the input.

Respond with JSON only, in this format:
{
  "keywords": [["keyword", "keyword"]]
}

TEXTS:
` + string(textsJSON)
}

// extractJSONObject returns the outermost JSON object in s, tolerating code
// fences and surrounding prose.
func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("empty response")
	}
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}
	return "", fmt.Errorf("no JSON object found in response: %q", truncate(t, 200))
}

func parseAnalysis(text string) ([]matching.AnalyzedSegment, error) {
	clean, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var out struct {
		Segments []matching.AnalyzedSegment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	segs := make([]matching.AnalyzedSegment, 0, len(out.Segments))
	for _, s := range out.Segments {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		s.Keywords = cleanKeywords(s.Keywords)
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return nil, errors.New("analysis contained no segments")
	}
	return segs, nil
}

func parsePairs(text string) ([]matching.SegmentPair, error) {
	clean, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var out struct {
		Matches []matching.SegmentPair `json:"matches"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}
	return out.Matches, nil
}

func parseKeywords(text string, want int) ([][]string, error) {
	clean, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var out struct {
		Keywords [][]string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
	}
	if len(out.Keywords) != want {
		return nil, fmt.Errorf("expected %d keyword lists, got %d", want, len(out.Keywords))
	}
	for i := range out.Keywords {
		out.Keywords[i] = cleanKeywords(out.Keywords[i])
	}
	return out.Keywords, nil
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		key := strings.ToLower(k)
		if k == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
