package matching

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/flipdirmatze/ad-video-generator/models"
)

func words(specs ...any) []models.WordTimestamp {
	out := make([]models.WordTimestamp, 0, len(specs)/3)
	for i := 0; i+2 < len(specs); i += 3 {
		out = append(out, models.WordTimestamp{
			Word:      specs[i].(string),
			StartTime: specs[i+1].(float64),
			EndTime:   specs[i+2].(float64),
		})
	}
	return out
}

func TestSegmentFromTimestamps_SingleSentence(t *testing.T) {
	segs, err := SegmentFromTimestamps(words("dog", 0.0, 0.5, "runs.", 0.5, 1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	s := segs[0]
	if s.Text != "dog runs." {
		t.Errorf("Text = %q, want %q", s.Text, "dog runs.")
	}
	if s.Duration != 1.0 {
		t.Errorf("Duration = %v, want 1.0", s.Duration)
	}
	if s.Position != 0 {
		t.Errorf("Position = %v, want 0", s.Position)
	}
	if s.ID != "seg_1" {
		t.Errorf("ID = %q, want seg_1", s.ID)
	}
	if s.Keywords == nil || len(s.Keywords) != 0 {
		t.Errorf("Keywords = %v, want empty non-nil slice", s.Keywords)
	}
}

func TestSegmentFromTimestamps_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		in        []models.WordTimestamp
		wantTexts []string
	}{
		{
			name:      "empty",
			in:        nil,
			wantTexts: []string{},
		},
		{
			name:      "two sentences",
			in:        words("Hi", 0.0, 0.3, "there.", 0.3, 0.8, "Buy", 1.0, 1.2, "now!", 1.2, 1.6),
			wantTexts: []string{"Hi there.", "Buy now!"},
		},
		{
			name:      "question mark",
			in:        words("Ready?", 0.0, 0.4, "Go", 0.5, 0.7, "go.", 0.7, 0.9),
			wantTexts: []string{"Ready?", "Go go."},
		},
		{
			name:      "unterminated trailing run",
			in:        words("Shop.", 0.0, 0.5, "Limited", 0.6, 1.0, "offer", 1.0, 1.4),
			wantTexts: []string{"Shop.", "Limited offer"},
		},
		{
			name:      "no punctuation at all",
			in:        words("just", 0.0, 0.2, "words", 0.2, 0.5),
			wantTexts: []string{"just words"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := SegmentFromTimestamps(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := make([]string, len(segs))
			for i, s := range segs {
				got[i] = s.Text
			}
			if !reflect.DeepEqual(got, tt.wantTexts) {
				t.Fatalf("texts = %q, want %q", got, tt.wantTexts)
			}
		})
	}
}

func TestSegmentFromTimestamps_CoverageAndTiming(t *testing.T) {
	in := words(
		"Meet", 0.0, 0.31, "the", 0.31, 0.42, "new", 0.42, 0.7, "bike.", 0.7, 1.234,
		"Fast?", 1.5, 2.0,
		"Very", 2.1, 2.4, "fast!", 2.4, 3.0,
		"Order", 3.2, 3.5, "today", 3.5, 4.011,
	)
	segs, err := SegmentFromTimestamps(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, s := range segs {
		count += len(strings.Fields(s.Text))
	}
	if count != len(in) {
		t.Fatalf("segments cover %d words, want %d", count, len(in))
	}

	wantDur := []float64{1.23, 0.5, 0.9, 0.81}
	wantPos := []float64{0, 1.5, 2.1, 3.2}
	for i, s := range segs {
		if s.Duration != wantDur[i] {
			t.Errorf("segment %d duration = %v, want %v", i, s.Duration, wantDur[i])
		}
		if s.Position != wantPos[i] {
			t.Errorf("segment %d position = %v, want %v", i, s.Position, wantPos[i])
		}
	}
}

func TestSegmentFromTimestamps_SingleWordZeroDuration(t *testing.T) {
	segs, err := SegmentFromTimestamps(words("Now!", 2.0, 2.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 || segs[0].Duration != 0 || segs[0].Position != 2.0 {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestSegmentFromTimestamps_Deterministic(t *testing.T) {
	in := words("One.", 0.0, 0.4, "Two", 0.5, 0.8, "three.", 0.8, 1.2)
	a, err := SegmentFromTimestamps(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := SegmentFromTimestamps(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("segmentation is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestSegmentFromTimestamps_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   []models.WordTimestamp
	}{
		{"negative start", words("a", -0.1, 0.2)},
		{"end before start", words("a", 1.0, 0.5)},
		{"decreasing starts", words("a", 1.0, 1.2, "b.", 0.5, 0.9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SegmentFromTimestamps(tt.in)
			if !errors.Is(err, ErrMalformedTimestamps) {
				t.Fatalf("expected ErrMalformedTimestamps, got %v", err)
			}
		})
	}
}
