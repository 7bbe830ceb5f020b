package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSegmentCommand(t *testing.T) {
	input := writeFile(t, "words.json", `[
		{"word": "Wake", "start_time": 0, "end_time": 0.3},
		{"word": "up.", "start_time": 0.3, "end_time": 0.6},
		{"word": "Coffee", "start_time": 0.8, "end_time": 1.2}
	]`)

	out, err := runCommand(t, "segment", "--input", input)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	for _, want := range []string{"seg_1", "Wake up.", "seg_2", "Coffee", "0.60"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSegmentCommandRejectsMalformedTimings(t *testing.T) {
	input := writeFile(t, "words.json", `{"words": [{"word": "bad.", "start_time": 2, "end_time": 1}]}`)
	if _, err := runCommand(t, "segment", "--input", input); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestMatchCommandOfflineJSON(t *testing.T) {
	input := writeFile(t, "match.json", `{
		"segments": [
			{"text": "Fresh coffee every morning.", "keywords": ["coffee", "morning"], "duration": 2.4},
			{"text": "Made in the mountains.", "keywords": ["mountain"]}
		],
		"videos": [
			{"id": "v1", "name": "pour.mp4", "tags": ["coffee", "cup"]},
			{"id": "v2", "name": "raw.mp4", "tags": []},
			{"id": "v3", "name": "peaks.mp4", "tags": ["mountains", "snow"]}
		]
	}`)

	out, err := runCommand(t, "match", "--input", input, "--json")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var res matching.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.Strategy != matching.StrategyFallback || len(res.Matches) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Matches[0].Video.ID != "v1" || res.Matches[0].Score != 0.5 {
		t.Fatalf("unexpected first match: %+v", res.Matches[0])
	}
	if res.Matches[1].Video.ID != "v3" || res.Matches[1].Score != 0.5 {
		t.Fatalf("substring tag should match: %+v", res.Matches[1])
	}
}

func TestMatchCommandTable(t *testing.T) {
	input := writeFile(t, "match.json", `{
		"segments": [{"text": "Night city.", "keywords": ["city"]}, {"text": "Outro.", "keywords": ["logo"]}],
		"videos": [{"id": "v1", "name": "skyline.mp4", "tags": ["city"]}]
	}`)

	out, err := runCommand(t, "match", "--input", input)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	for _, want := range []string{"skyline.mp4", "1.00", "auto", "1 matched, 1 unmatched"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMatchCommandNoTaggedVideos(t *testing.T) {
	input := writeFile(t, "match.json", `{"script": "Hi.", "videos": [{"id": "v1", "tags": []}]}`)
	_, err := runCommand(t, "match", "--input", input)
	if err == nil || !strings.Contains(err.Error(), "no tagged videos") {
		t.Fatalf("expected no tagged videos error, got %v", err)
	}
}

func TestRenderTableWrapsLongText(t *testing.T) {
	long := strings.Repeat("fresh roasted coffee ", 6)
	out := renderTable([]column{idColumn("Segment"), textColumn("Text"), numberColumn("Score")}, [][]string{
		{"seg_1", long, "1.00"},
		{"seg_2"},
	})

	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if w := len([]rune(line)); w > scriptTextWidth+30 {
			t.Fatalf("line not wrapped (%d runes): %q", w, line)
		}
	}
	if !strings.Contains(out, "seg_2") || strings.Count(out, "coffee") != 6 {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if renderTable(nil, [][]string{{"x"}}) != "" {
		t.Fatal("expected empty output without columns")
	}
}
