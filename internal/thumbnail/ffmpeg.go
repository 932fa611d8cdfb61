package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/mediastash/mediastash/internal/models"
)

// ErrTimeout means the transcoder process exceeded its time budget and was
// killed. It never escapes the upload flow; the registry downgrades it to
// a missing thumbnail.
var ErrTimeout = errors.New("transcoder timed out")

const maxStderrExcerpt = 500

// FFmpegGenerator extracts a single frame from video (or image) media by
// driving an external ffmpeg-compatible binary. The child process is
// killed and reaped on every exit path, including caller cancellation.
type FFmpegGenerator struct {
	binary  string
	width   int
	height  int
	timeout time.Duration
}

func NewFFmpegGenerator(binary string, width, height int, timeout time.Duration) *FFmpegGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FFmpegGenerator{binary: binary, width: width, height: height, timeout: timeout}
}

func (g *FFmpegGenerator) Supports(ft models.FileType) bool {
	return ft == models.TypeVideo || ft == models.TypeImage
}

// Generate spools the source to a private temp file, then delegates to
// GenerateFromPath. The temp file is removed on every exit path.
func (g *FFmpegGenerator) Generate(ctx context.Context, src io.Reader) ([]byte, error) {
	tmp, err := os.CreateTemp("", "mediastash-thumb-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("spool source: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("spool source: %w", err)
	}

	return g.GenerateFromPath(ctx, tmp.Name())
}

// GenerateFromPath runs the transcoder against a file on disk and returns
// the captured JPEG frame.
func (g *FFmpegGenerator) GenerateFromPath(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// Seek slightly past the start to skip black lead-in frames, grab one
	// frame, and scale it to fit the box without distorting the aspect
	// ratio.
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", g.width, g.height)
	cmd := exec.CommandContext(ctx, g.binary,
		"-hide_banner", "-loglevel", "error",
		"-ss", "00:00:01",
		"-i", path,
		"-frames:v", "1",
		"-vf", scale,
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	)

	// stdout carries the binary image and stderr the diagnostics; they
	// must never be merged. exec drains both concurrently with the
	// process, so a chatty child cannot deadlock on a full pipe.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// On timeout or cancellation, kill outright rather than politely
	// signaling; a stuck transcoder ignores SIGTERM. WaitDelay guarantees
	// Wait returns and the pipes are reaped even if the kill races.
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, g.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("transcoder failed: %w: %s", err, stderrExcerpt(&stderr))
	}
	if stdout.Len() == 0 {
		// Zero exit with no output means the child silently produced
		// nothing; treat it as corruption, not success.
		return nil, fmt.Errorf("transcoder produced no output: %s", stderrExcerpt(&stderr))
	}
	return stdout.Bytes(), nil
}

func stderrExcerpt(buf *bytes.Buffer) string {
	s := buf.String()
	if len(s) > maxStderrExcerpt {
		s = s[:maxStderrExcerpt]
	}
	if s == "" {
		return "(no stderr)"
	}
	return s
}
