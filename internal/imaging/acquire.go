package imaging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrImageProcessing wraps local transform failures.
var ErrImageProcessing = errors.New("image processing failed")

// ErrPermissionDenied is a user-actionable acquisition failure (camera
// or file permissions), distinct from a pipeline failure.
var ErrPermissionDenied = errors.New("permission denied")

// Acquired is one image obtained from the camera or a local pick.
type Acquired struct {
	LocalPath string
	Data      []byte
	Size      int64
	MIME      string
}

// Picker loads an image from a local path. A nil, nil return means the
// user cancelled (empty path).
type Picker struct{}

func (Picker) Pick(ctx context.Context, path string) (*Acquired, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("reading image: %w", err)
	}

	return &Acquired{
		LocalPath: path,
		Data:      data,
		Size:      int64(len(data)),
		MIME:      mimeFromPath(path),
	}, nil
}

func mimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
