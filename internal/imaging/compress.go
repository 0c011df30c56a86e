package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"

	"golang.org/x/image/draw"
)

// Compressor re-encodes images whose payload exceeds the upload
// threshold: resize so the longer side fits MaxDimension, re-encode as
// JPEG at Quality. The transform is deterministic and idempotent;
// re-applying it to an already-compressed image does not materially
// change its size.
type Compressor struct {
	MaxBytes     int64
	MaxDimension int
	Quality      int
}

func NewCompressor(maxBytes int64, maxDimension, quality int) *Compressor {
	if maxBytes <= 0 {
		maxBytes = 3_000_000
	}
	if maxDimension <= 0 {
		maxDimension = 1600
	}
	if quality <= 0 {
		quality = 70
	}
	return &Compressor{
		MaxBytes:     maxBytes,
		MaxDimension: maxDimension,
		Quality:      quality,
	}
}

// Process returns the acquisition unchanged when it already fits the
// threshold, otherwise the compressed form. The result payload is never
// larger than the input.
func (c *Compressor) Process(a *Acquired) (*Acquired, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: no image", ErrImageProcessing)
	}
	if len(a.Data) > 0 && a.Size <= c.MaxBytes {
		return a, nil
	}
	if len(a.Data) == 0 {
		return nil, fmt.Errorf("%w: no raw bytes available", ErrImageProcessing)
	}

	img, format, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrImageProcessing, format, err)
	}

	scaled := c.scale(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: c.Quality}); err != nil {
		return nil, fmt.Errorf("%w: encoding jpeg: %v", ErrImageProcessing, err)
	}

	out := buf.Bytes()
	if int64(len(out)) >= a.Size {
		// Re-encoding gained nothing; keep the original payload.
		return a, nil
	}

	log.Printf("[IMAGING] compressed %d -> %d bytes (%dx%d -> %dx%d)",
		a.Size, len(out),
		img.Bounds().Dx(), img.Bounds().Dy(),
		scaled.Bounds().Dx(), scaled.Bounds().Dy())

	return &Acquired{
		LocalPath: a.LocalPath,
		Data:      out,
		Size:      int64(len(out)),
		MIME:      "image/jpeg",
	}, nil
}

func (c *Compressor) scale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longer := w
	if h > longer {
		longer = h
	}
	if longer <= c.MaxDimension {
		return img
	}

	nw := w * c.MaxDimension / longer
	nh := h * c.MaxDimension / longer
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
