package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Format selects an output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatAll  Format = "all"
)

// ErrUnsupportedFormat marks a format selector outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat validates a format selector from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatSRT, FormatVTT, FormatAll:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension for documents of this format.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Document is one rendered output: a format tag and its content.
type Document struct {
	Format  Format
	Content string
}

// Separators between seconds and milliseconds in subtitle timestamps.
const (
	srtSep = ","
	vttSep = "."
)

// Timestamp converts non-negative seconds into a zero-padded subtitle
// timestamp (HH:MM:SS<sep>mmm). Fractional milliseconds are rounded and
// the carry propagates up through seconds, minutes and hours, so 59.9995
// becomes 00:01:00 rather than 00:00:60.
func Timestamp(seconds float64, sep string) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "", fmt.Errorf("%w: %f", ErrInvalidTimestamp, seconds)
	}
	// Round to total milliseconds before splitting fields: rounding the
	// fractional part on its own loses half-millisecond inputs to
	// floating-point error, and the carry falls out of the division.
	total := int64(math.Round(seconds * 1000))
	millis := total % 1000
	total /= 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis), nil
}

// RenderText returns the full transcription text, trimmed. An empty
// string is a valid (empty) transcription.
func RenderText(t *Transcript) string {
	return strings.TrimSpace(t.Text)
}

// RenderJSON serializes the transcript with start/end as float seconds,
// round-trippable back into an equal Transcript.
func RenderJSON(t *Transcript) (string, error) {
	if t.Segments == nil {
		// Keep "segments": [] in the output rather than null.
		clone := *t
		clone.Segments = []Segment{}
		t = &clone
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}
	return buf.String(), nil
}

// RenderSRT emits one SubRip block per segment: a 1-based index line, a
// comma-millisecond timestamp range, the text, and a blank separator.
// Indices are gapless regardless of timing gaps between segments.
func RenderSRT(t *Transcript) (string, error) {
	var sb strings.Builder
	for i, seg := range t.Segments {
		start, err := Timestamp(seg.Start, srtSep)
		if err != nil {
			return "", err
		}
		end, err := Timestamp(seg.End, srtSep)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", i+1, start, end, strings.TrimSpace(seg.Text))
	}
	return sb.String(), nil
}

// RenderVTT emits a WebVTT document: the WEBVTT header, then per-segment
// blocks like SRT but with period milliseconds and no index line.
func RenderVTT(t *Transcript) (string, error) {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for _, seg := range t.Segments {
		start, err := Timestamp(seg.Start, vttSep)
		if err != nil {
			return "", err
		}
		end, err := Timestamp(seg.End, vttSep)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s --> %s\n%s\n\n", start, end, strings.TrimSpace(seg.Text))
	}
	return sb.String(), nil
}

// RenderAll renders every supported format. Each document is identical to
// what the corresponding single-format renderer would produce.
func RenderAll(t *Transcript) ([]Document, error) {
	jsonDoc, err := RenderJSON(t)
	if err != nil {
		return nil, err
	}
	srtDoc, err := RenderSRT(t)
	if err != nil {
		return nil, err
	}
	vttDoc, err := RenderVTT(t)
	if err != nil {
		return nil, err
	}
	return []Document{
		{FormatText, RenderText(t)},
		{FormatJSON, jsonDoc},
		{FormatSRT, srtDoc},
		{FormatVTT, vttDoc},
	}, nil
}

// Render validates the transcript and renders the requested format. The
// "all" selector returns four documents; any other selector returns
// exactly one. On any error no documents are returned.
func Render(t *Transcript, f Format) ([]Document, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch f {
	case FormatText:
		return []Document{{FormatText, RenderText(t)}}, nil
	case FormatJSON:
		doc, err := RenderJSON(t)
		if err != nil {
			return nil, err
		}
		return []Document{{FormatJSON, doc}}, nil
	case FormatSRT:
		doc, err := RenderSRT(t)
		if err != nil {
			return nil, err
		}
		return []Document{{FormatSRT, doc}}, nil
	case FormatVTT:
		doc, err := RenderVTT(t)
		if err != nil {
			return nil, err
		}
		return []Document{{FormatVTT, doc}}, nil
	case FormatAll:
		return RenderAll(t)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}
