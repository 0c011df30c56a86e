package integration

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/epicabdou/hse-inspector/internal/auth"
	"github.com/epicabdou/hse-inspector/internal/client"
	"github.com/epicabdou/hse-inspector/internal/devserver"
	"github.com/epicabdou/hse-inspector/internal/history"
	"github.com/epicabdou/hse-inspector/internal/imaging"
	"github.com/epicabdou/hse-inspector/internal/pipeline"
)

const testToken = "integration-test-token"

type TestStack struct {
	Server   *httptest.Server
	Client   *client.Client
	Cache    *history.Cache
	Pipeline *pipeline.Pipeline
}

// setupStack wires the real client, pipeline and history cache against
// an httptest instance of the dev service.
func setupStack(t *testing.T, maxUploadBytes int64) *TestStack {
	t.Helper()

	srv := httptest.NewServer(devserver.New(testToken, maxUploadBytes).Router())
	t.Cleanup(srv.Close)

	session := auth.NewStaticSession(testToken)
	svc := client.New(srv.URL, session, 10*time.Second)
	cache := history.NewCache(svc, 10)
	compressor := imaging.NewCompressor(3_000_000, 1600, 70)
	pipe := pipeline.New(session, compressor, svc, svc, cache)

	return &TestStack{
		Server:   srv,
		Client:   svc,
		Cache:    cache,
		Pipeline: pipe,
	}
}

// testJPEG renders a small gradient image so upload payloads are real
// JPEG bytes.
func testJPEG(t *testing.T) *imaging.Acquired {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 5), 120, 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}

	return &imaging.Acquired{
		LocalPath: "test.jpg",
		Data:      buf.Bytes(),
		Size:      int64(buf.Len()),
		MIME:      "image/jpeg",
	}
}
