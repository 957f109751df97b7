package utils

import "errors"

var (
	// ErrAudioExtraction wraps ffmpeg failures (binary absent, bad
	// input, no audio stream).
	ErrAudioExtraction = errors.New("audio extraction failed")

	// ErrRecognition wraps failures of the speech-recognition engine.
	ErrRecognition = errors.New("speech recognition failed")
)
