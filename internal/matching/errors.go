package matching

import "errors"

var (
	// ErrSegmentationFailed means no segments could be produced for the script.
	ErrSegmentationFailed = errors.New("script segmentation failed")

	// ErrNoEligibleCandidates means the media pool holds no video with tags.
	ErrNoEligibleCandidates = errors.New("no tagged videos available for matching")

	// ErrAIMatchingUnavailable marks a failed or timed-out AI matching call.
	// It never reaches callers of Run; the orchestrator logs it and falls back.
	ErrAIMatchingUnavailable = errors.New("ai matching unavailable")

	// ErrMalformedTimestamps is returned by SegmentFromTimestamps for negative
	// or out-of-order word timings.
	ErrMalformedTimestamps = errors.New("malformed word timestamps")
)
