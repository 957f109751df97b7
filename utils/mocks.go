package utils

import (
	"context"

	"videoscribe/transcript"
)

type MockAudioExtractor struct {
	ExtractAudioFunc func(ctx context.Context, videoFile, audioFile string) (bool, error)
}

func (m *MockAudioExtractor) ExtractAudio(ctx context.Context, videoFile, audioFile string) (bool, error) {
	return m.ExtractAudioFunc(ctx, videoFile, audioFile)
}

type MockAudioTranscriber struct {
	TranscribeAudioFunc func(ctx context.Context, audioFile string, opts Options) (*transcript.Transcript, error)
}

func (m *MockAudioTranscriber) TranscribeAudio(ctx context.Context, audioFile string, opts Options) (*transcript.Transcript, error) {
	return m.TranscribeAudioFunc(ctx, audioFile, opts)
}

type MockVideoDownloader struct {
	DownloadFunc func(ctx context.Context, url, destDir string) (string, error)
}

func (m *MockVideoDownloader) Download(ctx context.Context, url, destDir string) (string, error) {
	return m.DownloadFunc(ctx, url, destDir)
}
