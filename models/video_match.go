package models

// MatchSource records whether a match was proposed by the system or chosen by a user.
type MatchSource string

const (
	MatchSourceAuto   MatchSource = "auto"
	MatchSourceManual MatchSource = "manual"
)

// VideoMatch pairs one script segment with one tagged video.
type VideoMatch struct {
	Segment   ScriptSegment `json:"segment"`
	Video     TaggedVideo   `json:"video"`
	Score     float64       `json:"score"`
	StartTime *float64      `json:"start_time,omitempty"` // Nullable trim start within the video
	EndTime   *float64      `json:"end_time,omitempty"`   // Nullable trim end within the video
	Source    MatchSource   `json:"source"`
}
