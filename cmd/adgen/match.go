package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

// matchInput is the offline matching request. Segments, when present, stand in
// for the script analyzer so matching can run without an AI backend.
type matchInput struct {
	Script   string                     `json:"script"`
	Words    []models.WordTimestamp     `json:"words"`
	Segments []matching.AnalyzedSegment `json:"segments"`
	Videos   []models.TaggedVideo       `json:"videos"`
}

type staticAnalyzer []matching.AnalyzedSegment

func (s staticAnalyzer) AnalyzeScript(context.Context, string) ([]matching.AnalyzedSegment, error) {
	return s, nil
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var useAI bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a script against tagged videos from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readMatchInput(inputPath)
			if err != nil {
				return err
			}

			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(logrus.WarnLevel)

			deps := matching.Deps{Logger: logger}
			opts := matching.Options{}
			if useAI {
				cfg, err := ctx.config()
				if err != nil {
					return err
				}
				if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
					logger.SetLevel(lvl)
				}
				ai, err := newAIBackend(cmd.Context(), cfg.AI, logger)
				if err != nil {
					return err
				}
				defer ai.Close()
				deps = ai.deps(logger)
				opts = matching.Options{AnalysisTimeout: cfg.AI.AnalysisTimeout, MatchTimeout: cfg.AI.MatchTimeout}
			}
			if len(in.Segments) > 0 {
				deps.Analyzer = staticAnalyzer(in.Segments)
				if in.Script == "" {
					in.Script = "(pre-segmented)"
				}
			}

			res, err := matching.New(deps, opts).Run(cmd.Context(), matching.Input{
				Script: in.Script,
				Words:  in.Words,
				Videos: in.Videos,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, res)
			}
			printMatchResult(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the JSON file with script, words, segments and videos")
	cmd.Flags().BoolVar(&useAI, "ai", false, "Use the configured AI backend for analysis and matching")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func readMatchInput(path string) (*matchInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var in matchInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse match input %s: %w", path, err)
	}
	return &in, nil
}

func printMatchResult(cmd *cobra.Command, res *matching.Result) {
	byID := make(map[string]models.VideoMatch, len(res.Matches))
	for _, m := range res.Matches {
		byID[m.Segment.ID] = m
	}

	rows := make([][]string, 0, len(res.Segments))
	for _, s := range res.Segments {
		video, score, source := "-", "-", "-"
		if m, ok := byID[s.ID]; ok {
			video = m.Video.Name
			if video == "" {
				video = m.Video.ID
			}
			score = fmt.Sprintf("%.2f", m.Score)
			source = string(m.Source)
		}
		rows = append(rows, []string{s.ID, s.Text, video, score, source})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]column{
		idColumn("Segment"),
		textColumn("Text"),
		nameColumn("Video"),
		numberColumn("Score"),
		idColumn("Source"),
	}, rows))
	fmt.Fprintf(out, "Strategy: %s, segments from %s, %d matched, %d unmatched",
		res.Strategy, res.SegmentSource, len(res.Matches), len(res.Unmatched))
	if res.DroppedPairs > 0 {
		fmt.Fprintf(out, ", %d AI pairs dropped", res.DroppedPairs)
	}
	fmt.Fprintln(out)
}
