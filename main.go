package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"videoscribe/transcript"
	"videoscribe/utils"
)

func main() {
	// Load environment variables from .env file, if present
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	root := &cli.Command{
		Name:      "videoscribe",
		Usage:     "Transcribe video files into text and subtitle documents using Whisper",
		ArgsUsage: "<video path or YouTube URL>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Value:   "medium",
				Usage:   "Whisper model size: tiny, base, small, medium, large",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, srt, vtt, all",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language code (e.g. 'en', 'es'). Auto-detect if not specified",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Custom output file path (single-format runs only)",
			},
			&cli.BoolFlag{
				Name:  "keep-audio",
				Usage: "Keep the extracted audio file in the output folder",
			},
			&cli.StringFlag{
				Name:  "log",
				Value: "info",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Action: run,
	}

	// Cancel the pipeline context on interrupt so child processes
	// (ffmpeg, yt-dlp, whisper-cli) are killed with us.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Warn("interrupted, cleaning up")
		cancel()
	}()

	if err := root.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one video path or YouTube URL argument")
	}

	model := cmd.String("model")
	if !utils.ValidModelSize(model) {
		return fmt.Errorf("unknown model size %q (supported: tiny, base, small, medium, large)", model)
	}
	format, err := transcript.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	p := &pipeline{
		extractor:   utils.FFmpegExtractor{},
		transcriber: newTranscriber(),
		downloader:  utils.YtDlpDownloader{},
		inputDir:    "input",
		outputDir:   "output",
	}
	return p.run(ctx, cmd.Args().First(), runOptions{
		Model:     model,
		Format:    format,
		Language:  cmd.String("language"),
		Output:    cmd.String("output"),
		KeepAudio: cmd.Bool("keep-audio"),
	})
}

// newTranscriber picks the recognition backend: the Whisper API when an
// API key is configured, the local whisper.cpp binary otherwise.
func newTranscriber() utils.AudioTranscriber {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return utils.NewWhisperAPITranscriber(key)
	}
	log.Debug("OPENAI_API_KEY not set, using local whisper backend")
	return utils.NewWhisperCLITranscriber()
}
