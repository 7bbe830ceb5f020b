package models

// ScriptSegment is a sentence-bounded portion of an ad script.
// Duration and Position are in seconds; Position is the segment's start offset
// within the voiceover.
type ScriptSegment struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Duration float64  `json:"duration"`
	Keywords []string `json:"keywords"`
	Position float64  `json:"position"`
}
