package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/models"
)

func newSegmentCommand() *cobra.Command {
	var inputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Split voiceover word timings into sentence segments",
		Long:  "Reads a JSON array of {word, start_time, end_time} objects, or an object with a \"words\" field, and prints the resulting segments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := readWords(inputPath)
			if err != nil {
				return err
			}
			segments, err := matching.SegmentFromTimestamps(words)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, segments)
			}

			rows := make([][]string, 0, len(segments))
			for _, s := range segments {
				rows = append(rows, []string{
					s.ID,
					fmt.Sprintf("%.2f", s.Position),
					fmt.Sprintf("%.2f", s.Duration),
					s.Text,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				idColumn("Segment"),
				numberColumn("Start"),
				numberColumn("Duration"),
				textColumn("Text"),
			}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the word timings JSON file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print segments as JSON")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func readWords(path string) ([]models.WordTimestamp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))

	var words []models.WordTimestamp
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(data, &words)
	} else {
		var wrapped struct {
			Words []models.WordTimestamp `json:"words"`
		}
		err = json.Unmarshal(data, &wrapped)
		words = wrapped.Words
	}
	if err != nil {
		return nil, fmt.Errorf("parse word timings in %s: %w", path, err)
	}
	return words, nil
}
