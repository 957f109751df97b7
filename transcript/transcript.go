// Package transcript defines the speech-recognition result model and
// renders it into the supported output formats (plain text, JSON, SRT,
// WebVTT).
package transcript

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidTimestamp marks a segment with a negative or NaN time
	// bound, which indicates a malformed result from the recognition
	// engine.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidTranscript marks a transcript whose segments are
	// inconsistent (negative duration, out of order).
	ErrInvalidTranscript = errors.New("invalid transcript")
)

// Segment is one timed span of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the complete recognition result for one audio input.
type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Validate checks every segment before any renderer runs. A malformed
// segment fails the whole run; a subtitle file with broken timings is
// worse than no file at all.
func (t *Transcript) Validate() error {
	prev := 0.0
	for i, seg := range t.Segments {
		if math.IsNaN(seg.Start) || math.IsNaN(seg.End) || math.IsInf(seg.Start, 0) || math.IsInf(seg.End, 0) {
			return fmt.Errorf("%w: segment %d has non-finite bounds", ErrInvalidTimestamp, i+1)
		}
		if seg.Start < 0 || seg.End < 0 {
			return fmt.Errorf("%w: segment %d has negative bounds (%.3f, %.3f)", ErrInvalidTimestamp, i+1, seg.Start, seg.End)
		}
		if seg.End < seg.Start {
			return fmt.Errorf("%w: segment %d ends before it starts (%.3f > %.3f)", ErrInvalidTranscript, i+1, seg.Start, seg.End)
		}
		if seg.Start < prev {
			return fmt.Errorf("%w: segment %d starts before segment %d", ErrInvalidTranscript, i+1, i)
		}
		prev = seg.Start
	}
	return nil
}
