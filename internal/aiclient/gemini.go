package aiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

// GeminiClient provides script analysis, clip matching and keyword extraction
// backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger logrus.FieldLogger
}

// GeminiOption adjusts the genai client configuration.
type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at another endpoint, such as a proxy.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// NewGeminiClient creates a Gemini API client that answers with JSON from model.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger logrus.FieldLogger, opts ...GeminiOption) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

func (g *GeminiClient) AnalyzeScript(ctx context.Context, script string) ([]matching.AnalyzedSegment, error) {
	text, err := g.generate(ctx, buildAnalysisPrompt(script))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze script: %w", err)
	}
	segs, err := parseAnalysis(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script analysis: %w", err)
	}
	g.logger.WithField("segments", len(segs)).Debug("Gemini script analysis completed")
	return segs, nil
}

func (g *GeminiClient) FindBestMatches(ctx context.Context, annotatedScript string, candidates []models.TaggedVideo) ([]matching.SegmentPair, error) {
	cj, err := json.Marshal(candidateRefs(candidates))
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}
	text, err := g.generate(ctx, buildMatchPrompt(annotatedScript, cj))
	if err != nil {
		return nil, fmt.Errorf("failed to match clips: %w", err)
	}
	pairs, err := parsePairs(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clip matches: %w", err)
	}
	g.logger.WithField("pairs", len(pairs)).Debug("Gemini clip matching completed")
	return pairs, nil
}

func (g *GeminiClient) ExtractKeywords(ctx context.Context, texts []string) ([][]string, error) {
	tj, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("marshal texts: %w", err)
	}
	text, err := g.generate(ctx, buildKeywordPrompt(tj))
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}
	return parseKeywords(text, len(texts))
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	temperature := float32(0.2)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temperature,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", err
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", g.model)
	}
	return text, nil
}
