package aiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

const (
	// ServiceName is the gRPC service implemented by the remote AI service.
	ServiceName = "aiservice.AIService"

	methodAnalyzeScript   = "/" + ServiceName + "/AnalyzeScript"
	methodFindBestMatches = "/" + ServiceName + "/FindBestMatches"
	methodExtractKeywords = "/" + ServiceName + "/ExtractKeywords"
)

// AIClient talks to the remote AI service over gRPC. Requests and responses
// are google.protobuf.Struct messages carrying the same JSON shapes the
// Gemini backend uses.
type AIClient struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
	logger logrus.FieldLogger
}

// NewAIClient creates a client for the AI service at serverAddr. Extra dial
// options are appended after the default insecure transport credentials.
func NewAIClient(serverAddr string, logger logrus.FieldLogger, opts ...grpc.DialOption) (*AIClient, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("addr", serverAddr).Info("Connecting to AI gRPC server")

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(serverAddr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AI gRPC server at %s: %w", serverAddr, err)
	}

	return &AIClient{conn: conn, health: healthpb.NewHealthClient(conn), logger: logger}, nil
}

// Close closes the gRPC connection to the AI service.
func (c *AIClient) Close() error {
	if c.conn != nil {
		c.logger.Info("Closing connection to AI gRPC server")
		return c.conn.Close()
	}
	return nil
}

// Healthy reports whether the AI service answers SERVING to a health check.
func (c *AIClient) Healthy(ctx context.Context) bool {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		c.logger.WithError(err).Warn("AI service health check failed")
		return false
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
}

func (c *AIClient) AnalyzeScript(ctx context.Context, script string) ([]matching.AnalyzedSegment, error) {
	var out struct {
		Segments []matching.AnalyzedSegment `json:"segments"`
	}
	if err := c.invoke(ctx, methodAnalyzeScript, map[string]any{"script": script}, &out); err != nil {
		return nil, err
	}
	if len(out.Segments) == 0 {
		return nil, fmt.Errorf("AI service returned no segments")
	}
	return out.Segments, nil
}

func (c *AIClient) FindBestMatches(ctx context.Context, annotatedScript string, candidates []models.TaggedVideo) ([]matching.SegmentPair, error) {
	req := struct {
		AnnotatedScript string         `json:"annotatedScript"`
		Candidates      []candidateRef `json:"candidates"`
	}{annotatedScript, candidateRefs(candidates)}

	var out struct {
		Matches []matching.SegmentPair `json:"matches"`
	}
	if err := c.invoke(ctx, methodFindBestMatches, req, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}

func (c *AIClient) ExtractKeywords(ctx context.Context, texts []string) ([][]string, error) {
	var out struct {
		Keywords [][]string `json:"keywords"`
	}
	if err := c.invoke(ctx, methodExtractKeywords, map[string]any{"texts": texts}, &out); err != nil {
		return nil, err
	}
	if len(out.Keywords) != len(texts) {
		return nil, fmt.Errorf("expected %d keyword lists, got %d", len(texts), len(out.Keywords))
	}
	return out.Keywords, nil
}

func (c *AIClient) invoke(ctx context.Context, method string, req, out any) error {
	in, err := toStruct(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}
	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, resp); err != nil {
		c.logger.WithFields(logrus.Fields{"method": method, "error": err.Error()}).Error("AI service call failed")
		return fmt.Errorf("%s failed: %w", method, err)
	}
	if err := fromStruct(resp, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// toStruct converts any JSON-serialisable value into a Struct. The JSON round
// trip turns typed slices into the []any values structpb requires.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func fromStruct(s *structpb.Struct, out any) error {
	b, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
