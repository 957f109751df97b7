package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"videoscribe/transcript"
)

// WhisperCLITranscriber runs recognition through a local whisper.cpp
// binary. Used when no API key is configured, and the only backend where
// the model size selector picks an actual model file.
type WhisperCLITranscriber struct {
	Binary   string // whisper-cli binary; WHISPER_CLI env override
	ModelDir string // directory holding ggml-<size>.bin models
}

func NewWhisperCLITranscriber() *WhisperCLITranscriber {
	return &WhisperCLITranscriber{
		Binary:   os.Getenv("WHISPER_CLI"),
		ModelDir: os.Getenv("WHISPER_MODEL_DIR"),
	}
}

// whisperCLIOutput mirrors the verbose JSON whisper.cpp emits with -oj:
// detected language under result, per-segment millisecond offsets under
// transcription.
type whisperCLIOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *WhisperCLITranscriber) TranscribeAudio(ctx context.Context, audioFile string, opts Options) (*transcript.Transcript, error) {
	binary := w.Binary
	if binary == "" {
		binary = "whisper-cli"
	}
	modelDir := w.ModelDir
	if modelDir == "" {
		modelDir = "models"
	}
	model := opts.Model
	if model == "" {
		model = "medium"
	}

	// -oj writes <prefix>.json rather than printing to stdout, so the
	// output goes through a temp prefix; -np suppresses the default
	// per-segment printout.
	tmpDir, err := os.MkdirTemp("", "videoscribe-whisper")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognition, err)
	}
	defer os.RemoveAll(tmpDir)
	outPrefix := filepath.Join(tmpDir, "result")

	args := []string{
		"-m", filepath.Join(modelDir, "ggml-"+model+".bin"),
		"-f", audioFile,
		"-np",
		"-oj", "-of", outPrefix,
	}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if _, err := cmd.Output(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s: %s", ErrRecognition, binary, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRecognition, binary, err)
	}

	out, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: read whisper output: %v", ErrRecognition, err)
	}

	return parseWhisperOutput(out)
}

// parseWhisperOutput converts whisper.cpp verbose JSON into a Transcript.
func parseWhisperOutput(out []byte) (*transcript.Transcript, error) {
	var parsed whisperCLIOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse whisper output: %v", ErrRecognition, err)
	}

	t := &transcript.Transcript{Language: parsed.Result.Language}
	var full strings.Builder
	for _, seg := range parsed.Transcription {
		text := strings.TrimSpace(seg.Text)
		t.Segments = append(t.Segments, transcript.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  text,
		})
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(text)
	}
	t.Text = full.String()

	if t.Language == "" || t.Language == "auto" {
		t.Language = DetectLanguage(t.Text)
	}
	return t, nil
}
