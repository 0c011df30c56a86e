package imaging

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Camera grabs a single still frame from a video device via ffmpeg.
type Camera struct {
	ffmpegPath string
	device     string
	tempDir    string
}

// NewCamera resolves ffmpeg and prepares a temp directory for captured
// frames. device is the platform capture device (e.g. /dev/video0).
func NewCamera(ffmpegPath, device string) (*Camera, error) {
	if ffmpegPath == "" {
		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
		}
		ffmpegPath = path
	}

	tempDir := filepath.Join(os.TempDir(), "hse-inspector-capture")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Camera{
		ffmpegPath: ffmpegPath,
		device:     device,
		tempDir:    tempDir,
	}, nil
}

// Capture takes one frame from the configured device. A nil, nil return
// means no device is configured (treated as user cancel).
func (c *Camera) Capture(ctx context.Context) (*Acquired, error) {
	if c.device == "" {
		return nil, nil
	}

	outFile := filepath.Join(c.tempDir, fmt.Sprintf("capture_%s.jpg", uuid.New().String()))
	defer os.Remove(outFile)

	args := []string{
		"-f", "v4l2",
		"-i", c.device,
		"-vframes", "1",
		"-q:v", "2",
		"-f", "mjpeg",
		outFile,
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("[CAPTURE] ffmpeg stderr: %s", stderr.String())
		if deniedByDevice(stderr.String()) {
			return nil, fmt.Errorf("%w: cannot open %s", ErrPermissionDenied, c.device)
		}
		return nil, fmt.Errorf("capturing frame from %s: %w", c.device, err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, fmt.Errorf("reading captured frame: %w", err)
	}

	return &Acquired{
		LocalPath: outFile,
		Data:      data,
		Size:      int64(len(data)),
		MIME:      "image/jpeg",
	}, nil
}

// deniedByDevice recognizes an ffmpeg device-permission failure from
// its stderr, case-insensitively since drivers vary in capitalization.
func deniedByDevice(stderr string) bool {
	return strings.Contains(strings.ToLower(stderr), "permission denied")
}

// Cleanup removes the capture temp directory.
func (c *Camera) Cleanup() error {
	return os.RemoveAll(c.tempDir)
}
