package aiclient

import (
	"strings"
	"testing"

	"github.com/flipdirmatze/ad-video-generator/models"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantSub string
		wantErr bool
	}{
		{"raw", `{"segments":[{"text":"Hi.","keywords":["wave"]}]}`, `"segments"`, false},
		{"fenced", "```json\n{\"matches\":[]}\n```", `"matches"`, false},
		{"preface", "Here you go: {\"matches\":[]} enjoy", `"matches"`, false},
		{"empty", "  ", "", true},
		{"no json", "sorry, I cannot help", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.wantSub) {
				t.Fatalf("expected %q to contain %q", got, tt.wantSub)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	segs, err := parseAnalysis(`{"segments":[
		{"text":" Wake up. ","keywords":["Alarm"," alarm ","bed",""],"duration":1.2},
		{"text":"","keywords":["skip"]},
		{"text":"Coffee first.","keywords":[]}
	]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Text != "Wake up." {
		t.Errorf("text not trimmed: %q", segs[0].Text)
	}
	if got := strings.Join(segs[0].Keywords, ","); got != "Alarm,bed" {
		t.Errorf("keywords = %q, want deduplicated Alarm,bed", got)
	}
	if segs[0].Duration == nil || *segs[0].Duration != 1.2 {
		t.Errorf("duration = %v, want 1.2", segs[0].Duration)
	}
	if segs[1].Duration != nil {
		t.Errorf("expected nil duration, got %v", *segs[1].Duration)
	}

	if _, err := parseAnalysis(`{"segments":[]}`); err == nil {
		t.Fatalf("expected error for empty analysis")
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := parsePairs("```json\n{\"matches\":[{\"segmentId\":\"seg_1\",\"videoId\":\"v9\"}]}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 || pairs[0].SegmentID != "seg_1" || pairs[0].VideoID != "v9" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestParseKeywords_CountMismatch(t *testing.T) {
	if _, err := parseKeywords(`{"keywords":[["a"]]}`, 2); err == nil {
		t.Fatalf("expected error when keyword list count differs")
	}
	kws, err := parseKeywords(`{"keywords":[["Beach","beach"],["city"]]}`, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kws[0]) != 1 || kws[1][0] != "city" {
		t.Fatalf("unexpected keywords: %v", kws)
	}
}

func TestBuildMatchPrompt_OnlySendsReferences(t *testing.T) {
	path := "uploads/u1/secret.mp4"
	refs := candidateRefs([]models.TaggedVideo{{ID: "v1", Name: "beach.mp4", Tags: []string{"beach"}, URL: "https://signed.example.com/x", Path: &path}})
	if len(refs) != 1 || refs[0].ID != "v1" || refs[0].Tags[0] != "beach" {
		t.Fatalf("unexpected refs: %+v", refs)
	}
	prompt := buildMatchPrompt("[seg_1] Sun and sand.\n", []byte(`[{"id":"v1"}]`))
	if !strings.Contains(prompt, "[seg_1] Sun and sand.") || !strings.Contains(prompt, `"id":"v1"`) {
		t.Fatalf("prompt is missing script or candidates: %s", prompt)
	}
}
