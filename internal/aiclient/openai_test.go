package aiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/flipdirmatze/ad-video-generator/models"
)

// chatServer answers every chat completion with content and records the last prompt.
func chatServer(t *testing.T, status int, content string) (*httptest.Server, *string) {
	t.Helper()
	var lastPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err == nil && len(req.Messages) > 0 {
			lastPrompt = req.Messages[len(req.Messages)-1].Content
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream overloaded","type":"server_error"}}`))
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   req.Model,
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastPrompt
}

func newTestOpenAIClient(baseURL string) *OpenAIClient {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewOpenAIClient("test-key", baseURL, "gpt-test", logger, option.WithMaxRetries(0))
}

func TestOpenAIClient_FindBestMatches(t *testing.T) {
	srv, prompt := chatServer(t, http.StatusOK, "```json\n{\"matches\":[{\"segmentId\":\"seg_1\",\"videoId\":\"v1\"}]}\n```")
	c := newTestOpenAIClient(srv.URL)

	pairs, err := c.FindBestMatches(context.Background(), "[seg_1] Coffee. (duration: 1.00s)\n", []models.TaggedVideo{
		{ID: "v1", Name: "pour.mp4", Tags: []string{"coffee"}, URL: "https://cdn.example/secret.mp4"},
	})
	if err != nil {
		t.Fatalf("FindBestMatches: %v", err)
	}
	if len(pairs) != 1 || pairs[0].SegmentID != "seg_1" || pairs[0].VideoID != "v1" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
	if strings.Contains(*prompt, "cdn.example") {
		t.Fatalf("candidate URLs must not be sent to the model")
	}
}

func TestOpenAIClient_AnalyzeAndKeywords(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `{"segments":[{"text":"Wake up.","keywords":["morning"],"duration":1.2}],"keywords":[["coffee","Coffee"," cup "]]}`)
	c := newTestOpenAIClient(srv.URL)

	segs, err := c.AnalyzeScript(context.Background(), "Wake up.")
	if err != nil {
		t.Fatalf("AnalyzeScript: %v", err)
	}
	if len(segs) != 1 || segs[0].Duration == nil || *segs[0].Duration != 1.2 {
		t.Fatalf("unexpected segments: %+v", segs)
	}

	kws, err := c.ExtractKeywords(context.Background(), []string{"Coffee time."})
	if err != nil {
		t.Fatalf("ExtractKeywords: %v", err)
	}
	if len(kws) != 1 || len(kws[0]) != 2 {
		t.Fatalf("expected cleaned keywords, got %v", kws)
	}
}

func TestOpenAIClient_UpstreamError(t *testing.T) {
	srv, _ := chatServer(t, http.StatusServiceUnavailable, "")
	c := newTestOpenAIClient(srv.URL)

	if _, err := c.AnalyzeScript(context.Background(), "Hi."); err == nil {
		t.Fatal("expected error from failing upstream")
	}
}
