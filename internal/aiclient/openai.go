package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/sirupsen/logrus"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

const systemPrompt = "You plan ad videos: you split ad scripts into scenes and pick stock clips for them. Reply with JSON only."

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint,
// including OpenRouter when baseURL points at it.
type OpenAIClient struct {
	client openai.Client
	model  string
	logger logrus.FieldLogger
}

// NewOpenAIClient creates a chat completions client. An empty baseURL uses the
// OpenAI endpoint; opts are appended after the key and base URL.
func NewOpenAIClient(apiKey, baseURL, model string, logger logrus.FieldLogger, opts ...option.RequestOption) *OpenAIClient {
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OpenAIClient{
		client: openai.NewClient(clientOpts...),
		model:  model,
		logger: logger,
	}
}

func (o *OpenAIClient) AnalyzeScript(ctx context.Context, script string) ([]matching.AnalyzedSegment, error) {
	text, err := o.complete(ctx, buildAnalysisPrompt(script))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze script: %w", err)
	}
	segs, err := parseAnalysis(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script analysis: %w", err)
	}
	o.logger.WithField("segments", len(segs)).Debug("Script analysis completed")
	return segs, nil
}

func (o *OpenAIClient) FindBestMatches(ctx context.Context, annotatedScript string, candidates []models.TaggedVideo) ([]matching.SegmentPair, error) {
	cj, err := json.Marshal(candidateRefs(candidates))
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}
	text, err := o.complete(ctx, buildMatchPrompt(annotatedScript, cj))
	if err != nil {
		return nil, fmt.Errorf("failed to match clips: %w", err)
	}
	pairs, err := parsePairs(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clip matches: %w", err)
	}
	o.logger.WithField("pairs", len(pairs)).Debug("Clip matching completed")
	return pairs, nil
}

func (o *OpenAIClient) ExtractKeywords(ctx context.Context, texts []string) ([][]string, error) {
	tj, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("marshal texts: %w", err)
	}
	text, err := o.complete(ctx, buildKeywordPrompt(tj))
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}
	return parseKeywords(text, len(texts))
}

func (o *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model:       o.model,
		Temperature: openai.Float(0.2),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", o.model)
	}
	return text, nil
}
