package models

// WordTimestamp is one spoken word with its timing, as produced by the voiceover
// synthesis or transcription step. Times are in seconds.
type WordTimestamp struct {
	Word      string  `json:"word" validate:"required"`
	StartTime float64 `json:"start_time" validate:"gte=0"`
	EndTime   float64 `json:"end_time" validate:"gtefield=StartTime"`
}
