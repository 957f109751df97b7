package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoscribe/transcript"
	"videoscribe/utils"
)

func testTranscript() *transcript.Transcript {
	return &transcript.Transcript{
		Text:     "Hello world. Goodbye.",
		Language: "en",
		Segments: []transcript.Segment{
			{Start: 0.0, End: 3.5, Text: "Hello world."},
			{Start: 4.0, End: 6.0, Text: "Goodbye."},
		},
	}
}

// newTestPipeline wires mocks that fake a successful extraction and
// recognition without ffmpeg or a whisper backend.
func newTestPipeline(t *testing.T, result *transcript.Transcript) *pipeline {
	t.Helper()
	root := t.TempDir()
	return &pipeline{
		extractor: &utils.MockAudioExtractor{
			ExtractAudioFunc: func(ctx context.Context, videoFile, audioFile string) (bool, error) {
				return true, os.WriteFile(audioFile, []byte("RIFF"), 0o644)
			},
		},
		transcriber: &utils.MockAudioTranscriber{
			TranscribeAudioFunc: func(ctx context.Context, audioFile string, opts utils.Options) (*transcript.Transcript, error) {
				return result, nil
			},
		},
		downloader: &utils.MockVideoDownloader{
			DownloadFunc: func(ctx context.Context, url, destDir string) (string, error) {
				t.Fatal("downloader should not be called for local files")
				return "", nil
			},
		},
		inputDir:  filepath.Join(root, "input"),
		outputDir: filepath.Join(root, "output"),
	}
}

func writeTestVideo(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("mock video content"), 0o644))
	return path
}

func TestPipelineAllFormats(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	video := writeTestVideo(t, t.TempDir(), "talk.mp4")

	err := p.run(context.Background(), video, runOptions{Model: "medium", Format: transcript.FormatAll})
	require.NoError(t, err)

	outDir := filepath.Join(p.outputDir, "talk")
	for _, ext := range []string{"txt", "json", "srt", "vtt"} {
		assert.FileExists(t, filepath.Join(outDir, "talk_transcription."+ext))
	}

	// Extracted audio is removed unless --keep-audio.
	assert.NoFileExists(t, filepath.Join(outDir, "talk_audio.wav"))

	content, err := os.ReadFile(filepath.Join(outDir, "talk_transcription.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world. Goodbye.", string(content))

	srt, err := os.ReadFile(filepath.Join(outDir, "talk_transcription.srt"))
	require.NoError(t, err)
	assert.Contains(t, string(srt), "1\n00:00:00,000 --> 00:00:03,500\nHello world.\n")
}

func TestPipelineKeepAudio(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	video := writeTestVideo(t, t.TempDir(), "talk.mp4")

	err := p.run(context.Background(), video, runOptions{
		Model:     "medium",
		Format:    transcript.FormatText,
		KeepAudio: true,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(p.outputDir, "talk", "talk_audio.wav"))
}

func TestPipelineCustomOutputPath(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	video := writeTestVideo(t, t.TempDir(), "talk.mp4")
	custom := filepath.Join(t.TempDir(), "subs.srt")

	err := p.run(context.Background(), video, runOptions{
		Model:  "medium",
		Format: transcript.FormatSRT,
		Output: custom,
	})
	require.NoError(t, err)

	assert.FileExists(t, custom)
	assert.NoFileExists(t, filepath.Join(p.outputDir, "talk", "talk_transcription.srt"))
}

func TestPipelineInputFolderFallback(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	writeTestVideo(t, p.inputDir, "talk.mp4")

	err := p.run(context.Background(), "talk.mp4", runOptions{Model: "medium", Format: transcript.FormatText})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(p.outputDir, "talk", "talk_transcription.txt"))
}

func TestPipelineMissingInput(t *testing.T) {
	p := newTestPipeline(t, testTranscript())

	err := p.run(context.Background(), "nope.mp4", runOptions{Model: "medium", Format: transcript.FormatText})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestPipelineNoAudioStream(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	p.extractor = &utils.MockAudioExtractor{
		ExtractAudioFunc: func(ctx context.Context, videoFile, audioFile string) (bool, error) {
			return false, nil
		},
	}
	video := writeTestVideo(t, t.TempDir(), "silent.mp4")

	err := p.run(context.Background(), video, runOptions{Model: "medium", Format: transcript.FormatText})
	assert.ErrorIs(t, err, utils.ErrAudioExtraction)
}

func TestPipelineMalformedTranscript(t *testing.T) {
	bad := &transcript.Transcript{
		Text: "bad",
		Segments: []transcript.Segment{
			{Start: -1.0, End: 2.0, Text: "bad"},
		},
	}
	p := newTestPipeline(t, bad)
	video := writeTestVideo(t, t.TempDir(), "talk.mp4")

	err := p.run(context.Background(), video, runOptions{Model: "medium", Format: transcript.FormatAll})
	assert.ErrorIs(t, err, transcript.ErrInvalidTimestamp)

	// No partial documents may be left behind.
	entries, readErr := os.ReadDir(filepath.Join(p.outputDir, "talk"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestPipelineWriteFailureRollsBack(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	video := writeTestVideo(t, t.TempDir(), "talk.mp4")

	// Occupy the srt path with a directory so the third write of an
	// "all" run fails after txt and json are already on disk.
	outDir := filepath.Join(p.outputDir, "talk")
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "talk_transcription.srt"), 0o755))

	err := p.run(context.Background(), video, runOptions{Model: "medium", Format: transcript.FormatAll})
	require.Error(t, err)

	assert.NoFileExists(t, filepath.Join(outDir, "talk_transcription.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "talk_transcription.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "talk_transcription.vtt"))
}

func TestPipelineYouTubeInput(t *testing.T) {
	p := newTestPipeline(t, testTranscript())
	p.downloader = &utils.MockVideoDownloader{
		DownloadFunc: func(ctx context.Context, url, destDir string) (string, error) {
			return writeTestVideo(t, destDir, "downloaded.mp4"), nil
		},
	}

	err := p.run(context.Background(), "https://youtu.be/dQw4w9WgXcQ", runOptions{
		Model:  "medium",
		Format: transcript.FormatVTT,
	})
	require.NoError(t, err)

	vtt, readErr := os.ReadFile(filepath.Join(p.outputDir, "downloaded", "downloaded_transcription.vtt"))
	require.NoError(t, readErr)
	assert.Contains(t, string(vtt), "WEBVTT\n\n00:00:00.000 --> 00:00:03.500\n")
}
