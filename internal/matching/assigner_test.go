package matching

import (
	"testing"

	"github.com/flipdirmatze/ad-video-generator/models"
)

func video(id string, tags ...string) models.TaggedVideo {
	return models.TaggedVideo{ID: id, Name: id + ".mp4", Tags: tags, URL: "https://cdn.example.com/" + id}
}

func segment(id string, keywords ...string) models.ScriptSegment {
	return models.ScriptSegment{ID: id, Text: "text " + id, Duration: 2, Keywords: keywords}
}

func TestBestMatch_TieGoesToFirst(t *testing.T) {
	seg := segment("s1", "dog", "beach", "sun", "sand", "kite", "wave", "surf", "towel", "ball", "shell")
	// Scores: 0.05, 0.3, 0.3
	candidates := []models.TaggedVideo{
		video("v0", "dogs"),
		video("v1", "dog", "beach", "sun"),
		video("v2", "sand", "kite", "wave"),
	}
	m, ok := BestMatch(seg, candidates)
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.Video.ID != "v1" {
		t.Fatalf("expected first top scorer v1, got %s", m.Video.ID)
	}
	if m.Score != 0.3 {
		t.Fatalf("expected score 0.3, got %v", m.Score)
	}
	if m.Source != models.MatchSourceAuto {
		t.Fatalf("expected auto source, got %s", m.Source)
	}
}

// Only "dog" can overlap with the tags used below.
var tenKeywords = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "dog"}

func TestBestMatch_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		seg        models.ScriptSegment
		candidates []models.TaggedVideo
	}{
		{"no keywords", segment("s"), []models.TaggedVideo{video("v", "dog")}},
		{"no candidates", segment("s", "dog"), nil},
		{"untagged candidates only", segment("s", "dog"), []models.TaggedVideo{video("v")}},
		{"score equal to threshold", segment("s", tenKeywords...), []models.TaggedVideo{video("v", "dog")}},
		{"below threshold", segment("s", tenKeywords...), []models.TaggedVideo{video("v", "dogs")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m, ok := BestMatch(tt.seg, tt.candidates); ok {
				t.Fatalf("expected no match, got %+v", m)
			}
		})
	}
}

func TestBestMatch_NeverAtOrBelowThreshold(t *testing.T) {
	candidates := []models.TaggedVideo{video("v1", "city"), video("v2", "night", "city"), video("v3", "ocean")}
	segs := []models.ScriptSegment{
		segment("s1", "city"),
		segment("s2", "city", "lights", "night", "rain"),
		segment("s3", "mountain"),
		segment("s4", "oceanic", "a", "b", "c", "d", "e"),
	}
	for _, s := range segs {
		if m, ok := BestMatch(s, candidates); ok && m.Score <= MinAcceptScore {
			t.Fatalf("segment %s matched with score %v", s.ID, m.Score)
		}
	}
}

func TestMatchAll_OmitsUnmatchedAndReusesVideos(t *testing.T) {
	candidates := []models.TaggedVideo{video("v1", "coffee", "morning"), video("v2", "laptop")}
	segs := []models.ScriptSegment{
		segment("s1", "coffee"),
		segment("s2", "spaceship"),
		segment("s3", "morning", "coffee"),
		segment("s4", "laptop"),
	}

	got := MatchAll(segs, candidates)
	want := []struct{ seg, video string }{{"s1", "v1"}, {"s3", "v1"}, {"s4", "v2"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Segment.ID != w.seg || got[i].Video.ID != w.video {
			t.Errorf("match %d = %s->%s, want %s->%s", i, got[i].Segment.ID, got[i].Video.ID, w.seg, w.video)
		}
	}
}
