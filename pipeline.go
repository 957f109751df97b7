package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"videoscribe/transcript"
	"videoscribe/utils"
)

// ErrMissingInput marks a video argument that resolves to no file.
var ErrMissingInput = errors.New("input video not found")

type runOptions struct {
	Model     string
	Format    transcript.Format
	Language  string
	Output    string // custom output path, single-format runs only
	KeepAudio bool
}

// pipeline runs one video through extraction, recognition and rendering.
// Collaborators are injected so tests can run without ffmpeg or a
// recognition backend.
type pipeline struct {
	extractor   utils.AudioExtractor
	transcriber utils.AudioTranscriber
	downloader  utils.VideoDownloader
	inputDir    string
	outputDir   string
}

func (p *pipeline) run(ctx context.Context, input string, opts runOptions) error {
	for _, dir := range []string{p.inputDir, p.outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s directory: %w", dir, err)
		}
	}

	videoPath, err := p.resolveInput(ctx, input)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	videoOut := filepath.Join(p.outputDir, stem)
	if err := os.MkdirAll(videoOut, 0o755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	audioPath := filepath.Join(videoOut, stem+"_audio.wav")
	log.Info("extracting audio", "video", filepath.Base(videoPath))
	hasAudio, err := p.extractor.ExtractAudio(ctx, videoPath, audioPath)
	if err != nil {
		return err
	}
	if !hasAudio {
		return fmt.Errorf("%w: %s has no audio stream", utils.ErrAudioExtraction, videoPath)
	}
	if !opts.KeepAudio {
		defer os.Remove(audioPath)
	}

	log.Info("transcribing audio", "model", opts.Model)
	started := time.Now()
	t, err := p.transcriber.TranscribeAudio(ctx, audioPath, utils.Options{
		Model:    opts.Model,
		Language: opts.Language,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	docs, err := transcript.Render(t, opts.Format)
	if err != nil {
		return err
	}

	if err := writeDocuments(docs, videoOut, stem, opts.Output); err != nil {
		return err
	}

	log.Info("transcription complete",
		"model", opts.Model,
		"language", t.Language,
		"took", elapsed.Round(time.Second),
		"output", videoOut,
	)
	return nil
}

// resolveInput turns the positional argument into a local video path:
// YouTube URLs are downloaded into the input folder, bare filenames fall
// back to input/<name>.
func (p *pipeline) resolveInput(ctx context.Context, input string) (string, error) {
	if utils.IsYouTubeURL(input) {
		log.Info("downloading video", "url", input)
		path, err := p.downloader.Download(ctx, input, p.inputDir)
		if err != nil {
			return "", fmt.Errorf("download video: %w", err)
		}
		return path, nil
	}

	if _, err := os.Stat(input); err == nil {
		return input, nil
	}
	alt := filepath.Join(p.inputDir, input)
	if _, err := os.Stat(alt); err == nil {
		return alt, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingInput, input)
}

// writeDocuments writes every rendered document, or none: a failure part
// way through removes what was already written in this run.
func writeDocuments(docs []transcript.Document, dir, stem, custom string) error {
	var written []string
	for _, doc := range docs {
		path := filepath.Join(dir, fmt.Sprintf("%s_transcription.%s", stem, doc.Format.Ext()))
		if custom != "" && len(docs) == 1 {
			path = custom
		}
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			for _, w := range written {
				os.Remove(w)
			}
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		log.Debug("wrote document", "path", path)
	}
	return nil
}
