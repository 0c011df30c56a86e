package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/epicabdou/hse-inspector/internal/auth"
	"github.com/epicabdou/hse-inspector/internal/client"
	"github.com/epicabdou/hse-inspector/internal/imaging"
)

// Stage is the pipeline's single state value. It replaces the cluster of
// independent progress flags a UI would otherwise juggle, so
// contradictory combinations (uploading and analyzing at once) cannot
// exist.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageImageReady Stage = "image_ready"
	StageUploading  Stage = "uploading"
	StageAnalyzing  Stage = "analyzing"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// ErrNoImage is returned when analyze is invoked with nothing acquired.
var ErrNoImage = errors.New("no image acquired")

// ErrRunInFlight rejects re-entrant analyze calls; at most one run is in
// flight per pipeline instance.
var ErrRunInFlight = errors.New("analysis run already in flight")

// Uploader sends image bytes to the storage endpoint.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// Analyzer submits an uploaded image URL for analysis.
type Analyzer interface {
	Submit(ctx context.Context, imageURL string) (*client.AnalyzeResult, error)
}

// HistoryRefresher is notified after a completed run, best-effort.
type HistoryRefresher interface {
	Refresh(ctx context.Context, page int)
}

// Pipeline sequences acquisition, upload and analysis for one image at a
// time. Completed and Failed are terminal for a run; a new acquisition
// starts fresh.
type Pipeline struct {
	session    auth.Session
	compressor *imaging.Compressor
	uploader   Uploader
	analyzer   Analyzer
	history    HistoryRefresher

	mu     sync.Mutex
	stage  Stage
	image  *imaging.Acquired
	result *client.AnalyzeResult
	err    error
}

func New(session auth.Session, compressor *imaging.Compressor, uploader Uploader, analyzer Analyzer, history HistoryRefresher) *Pipeline {
	return &Pipeline{
		session:    session,
		compressor: compressor,
		uploader:   uploader,
		analyzer:   analyzer,
		history:    history,
		stage:      StageIdle,
	}
}

// SetImage installs an acquired image, applying the compress transform
// before the pipeline can proceed to uploading. A nil acquisition (user
// cancel) leaves the state unchanged. Rejected while a run is in flight.
func (p *Pipeline) SetImage(a *imaging.Acquired) error {
	if a == nil {
		return nil
	}

	p.mu.Lock()
	if p.stage == StageUploading || p.stage == StageAnalyzing {
		p.mu.Unlock()
		return ErrRunInFlight
	}
	p.mu.Unlock()

	processed, err := p.compressor.Process(a)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check: a run may have started while the transform ran unlocked.
	if p.stage == StageUploading || p.stage == StageAnalyzing {
		return ErrRunInFlight
	}

	p.image = processed
	p.result = nil
	p.err = nil
	p.stage = StageImageReady
	return nil
}

// Analyze runs the guarded upload + analyze sequence. Guards are checked
// before any network call: re-entrant invocation, missing image, and
// missing session all reject without starting a run. Stage failures
// terminate the run as Failed carrying the mapped error; the pipeline
// never retries. On completion the history cache is refreshed
// best-effort.
func (p *Pipeline) Analyze(ctx context.Context) error {
	p.mu.Lock()
	if p.stage == StageUploading || p.stage == StageAnalyzing {
		p.mu.Unlock()
		return ErrRunInFlight
	}
	if p.image == nil {
		p.mu.Unlock()
		return ErrNoImage
	}
	image := p.image
	// Claim the run before releasing the lock: token retrieval below is
	// a suspension point, and a second Analyze arriving during it must
	// already see the run in flight.
	p.stage = StageUploading
	p.mu.Unlock()

	// Fail fast before the run starts when no session is active. The
	// token itself is not cached; each client call requests a fresh one.
	if _, err := auth.Headers(ctx, p.session); err != nil {
		p.setStage(StageImageReady)
		return fmt.Errorf("%w: %v", client.ErrAuthRequired, err)
	}

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	imageURL, err := p.uploader.Upload(ctx, image.Data, filename)
	if err != nil {
		p.fail(err)
		return err
	}

	log.Printf("[PIPELINE] uploaded %s (%d bytes) -> %s", filename, image.Size, imageURL)
	p.setStage(StageAnalyzing)

	result, err := p.analyzer.Submit(ctx, imageURL)
	if err != nil {
		p.fail(err)
		return err
	}

	p.mu.Lock()
	p.stage = StageCompleted
	p.result = result
	p.err = nil
	p.mu.Unlock()

	log.Printf("[PIPELINE] analysis complete, inspection %s", result.Inspection.ID)

	if p.history != nil {
		p.history.Refresh(ctx, 1)
	}
	return nil
}

// Reset returns the pipeline to Idle, discarding any image and result.
// No-op while a run is in flight.
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage == StageUploading || p.stage == StageAnalyzing {
		return ErrRunInFlight
	}
	p.stage = StageIdle
	p.image = nil
	p.result = nil
	p.err = nil
	return nil
}

// Status returns the current stage and, when Failed, the terminal error.
func (p *Pipeline) Status() (Stage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage, p.err
}

// Result returns the analysis outcome once the pipeline is Completed.
func (p *Pipeline) Result() *client.AnalyzeResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

func (p *Pipeline) setStage(s Stage) {
	p.mu.Lock()
	p.stage = s
	p.mu.Unlock()
}

func (p *Pipeline) fail(err error) {
	p.mu.Lock()
	p.stage = StageFailed
	p.err = err
	p.mu.Unlock()
	log.Printf("[PIPELINE] run failed: %v", err)
}
