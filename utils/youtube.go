package utils

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var youtubePattern = regexp.MustCompile(`(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/`)

// IsYouTubeURL reports whether the input argument is a YouTube link
// rather than a local file path.
func IsYouTubeURL(s string) bool {
	return youtubePattern.MatchString(s)
}

// YtDlpDownloader fetches YouTube videos with yt-dlp.
type YtDlpDownloader struct{}

func (YtDlpDownloader) Download(ctx context.Context, url, destDir string) (string, error) {
	// --print after_move:filepath reports where the merged file landed.
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-f", "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("yt-dlp: %v\n%s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("yt-dlp: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	path := strings.TrimSpace(lines[len(lines)-1])
	if path == "" {
		return "", fmt.Errorf("yt-dlp reported no output file for %s", url)
	}
	return path, nil
}
