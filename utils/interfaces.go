package utils

import (
	"context"

	"videoscribe/transcript"
)

// Options carries the recognition knobs shared by all transcriber
// backends.
type Options struct {
	Model    string // whisper model size: tiny, base, small, medium, large
	Language string // ISO 639-1 hint; empty means auto-detect
}

// ModelSizes lists the supported whisper model sizes.
var ModelSizes = []string{"tiny", "base", "small", "medium", "large"}

// ValidModelSize reports whether s names a supported model size.
func ValidModelSize(s string) bool {
	for _, m := range ModelSizes {
		if s == m {
			return true
		}
	}
	return false
}

type AudioExtractor interface {
	// ExtractAudio writes the video's audio track to audioFile as mono
	// 16kHz PCM WAV. Returns false when the video has no audio stream.
	ExtractAudio(ctx context.Context, videoFile, audioFile string) (bool, error)
}

type AudioTranscriber interface {
	TranscribeAudio(ctx context.Context, audioFile string, opts Options) (*transcript.Transcript, error)
}

type VideoDownloader interface {
	// Download fetches a remote video into destDir and returns the path
	// of the downloaded file.
	Download(ctx context.Context, url, destDir string) (string, error)
}
