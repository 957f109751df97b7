package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pemistahl/lingua-go"
	openai "github.com/sashabaranov/go-openai"

	"videoscribe/transcript"
)

// WhisperAPITranscriber runs recognition through the OpenAI Whisper API,
// requesting verbose JSON so segment timings and the detected language
// come back typed.
type WhisperAPITranscriber struct {
	client *openai.Client
}

func NewWhisperAPITranscriber(apiKey string) *WhisperAPITranscriber {
	return &WhisperAPITranscriber{client: openai.NewClient(apiKey)}
}

func (w *WhisperAPITranscriber) TranscribeAudio(ctx context.Context, audioFile string, opts Options) (*transcript.Transcript, error) {
	// The API serves a single hosted model; the size selector only
	// matters for the local backend.
	if opts.Model != "" && opts.Model != "medium" {
		log.Debug("whisper API does not expose model sizes", "requested", opts.Model)
	}

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioFile,
		Language: opts.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := w.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	t := &transcript.Transcript{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Segments: make([]transcript.Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		t.Segments = append(t.Segments, transcript.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	if t.Language == "" {
		t.Language = DetectLanguage(t.Text)
	}
	return t, nil
}

// DetectLanguage guesses the ISO 639-1 code of text when the recognition
// engine did not report one. Returns "" when detection is not possible.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	detector := lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build()
	language, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
