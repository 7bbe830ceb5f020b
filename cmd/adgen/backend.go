package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/flipdirmatze/ad-video-generator/config"
	"github.com/flipdirmatze/ad-video-generator/handlers"
	"github.com/flipdirmatze/ad-video-generator/internal/aiclient"
	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/internal/store"
)

// aiBackend bundles the AI capabilities of the configured backend. All fields
// are nil for the "none" backend.
type aiBackend struct {
	analyzer matching.ScriptAnalyzer
	matcher  matching.VideoMatcher
	enricher matching.KeywordEnricher
	health   handlers.HealthChecker
	close    func() error
}

func newAIBackend(ctx context.Context, cfg config.AIConfig, logger logrus.FieldLogger) (*aiBackend, error) {
	switch cfg.Backend {
	case config.AIBackendGemini:
		g, err := aiclient.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model, logger)
		if err != nil {
			return nil, err
		}
		return &aiBackend{analyzer: g, matcher: g, enricher: g}, nil
	case config.AIBackendOpenAI:
		o := aiclient.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, logger)
		return &aiBackend{analyzer: o, matcher: o, enricher: o}, nil
	case config.AIBackendGRPC:
		c, err := aiclient.NewAIClient(cfg.GRPCAddr, logger)
		if err != nil {
			return nil, err
		}
		return &aiBackend{analyzer: c, matcher: c, enricher: c, health: c, close: c.Close}, nil
	default:
		return &aiBackend{}, nil
	}
}

func (b *aiBackend) deps(logger logrus.FieldLogger) matching.Deps {
	return matching.Deps{
		Analyzer: b.analyzer,
		Matcher:  b.matcher,
		Enricher: b.enricher,
		Logger:   logger,
	}
}

func (b *aiBackend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// openStore returns the configured persistence backend and its closer.
func openStore(cfg config.StorageConfig, logger logrus.FieldLogger) (handlers.Store, func() error, error) {
	switch cfg.Backend {
	case config.StorageSupabase:
		client, err := config.NewSupabaseClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSupabaseStore(client), func() error { return nil }, nil
	case config.StorageSQLite:
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("path", cfg.SQLitePath).Info("SQLite store opened")
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
