package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/epicabdou/hse-inspector/internal/auth"
	"github.com/epicabdou/hse-inspector/internal/client"
	"github.com/epicabdou/hse-inspector/internal/config"
	"github.com/epicabdou/hse-inspector/internal/history"
	"github.com/epicabdou/hse-inspector/internal/imaging"
	"github.com/epicabdou/hse-inspector/internal/pipeline"
	"github.com/epicabdou/hse-inspector/internal/prefs"
	"github.com/epicabdou/hse-inspector/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to CONFIG_PATH or ./config.yaml)")
	imagePath := flag.String("image", "", "analyze a local image file")
	capture := flag.Bool("capture", false, "capture a photo from the configured camera and analyze it")
	fetchID := flag.String("fetch", "", "refresh a previously created inspection by id")
	showHistory := flag.Bool("history", false, "list recent inspections")
	quality := flag.String("quality", "", "set the stored quality preference (fast|balanced|best) and exit")
	flag.Parse()

	// .env is optional; real deployments set env directly.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = "config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	store, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		log.Fatalf("preferences error: %v", err)
	}
	defer store.Close()

	if *quality != "" {
		profile := prefs.QualityProfile(*quality)
		if err := store.SetQuality(profile); err != nil {
			log.Fatalf("quality preference error: %v", err)
		}
		fmt.Printf("quality preference set to %s\n", profile)
		return
	}

	profile, err := store.Quality()
	if err != nil {
		log.Printf("could not read quality preference, using balanced: %v", err)
		profile = prefs.QualityBalanced
	}

	session := buildSession(cfg)
	svc := client.New(cfg.Service.BaseURL, session, cfg.Timeout())
	cache := history.NewCache(svc, cfg.History.PageSize)

	ctx := context.Background()

	switch {
	case *showHistory:
		runHistory(ctx, cache)
	case *fetchID != "":
		runFetch(ctx, svc, *fetchID)
	case *imagePath != "" || *capture:
		compressor := imaging.NewCompressor(cfg.Imaging.MaxUploadBytes, cfg.Imaging.MaxDimension, profile.JPEGQuality())
		pipe := pipeline.New(session, compressor, svc, svc, cache)
		runAnalysis(ctx, cfg, pipe, cache, *imagePath, *capture)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func buildSession(cfg *config.Config) auth.Session {
	if cfg.Identity.StaticToken != "" {
		return auth.NewStaticSession(cfg.Identity.StaticToken)
	}
	return auth.NewProviderSession(cfg.Identity.TokenURL, cfg.Identity.Email, cfg.Identity.Password, cfg.Timeout())
}

func runAnalysis(ctx context.Context, cfg *config.Config, pipe *pipeline.Pipeline, cache *history.Cache, imagePath string, capture bool) {
	var acquired *imaging.Acquired
	var err error

	if capture {
		camera, cerr := imaging.NewCamera(cfg.Imaging.FFmpegPath, cfg.Imaging.CaptureDevice)
		if cerr != nil {
			log.Fatalf("camera error: %v", cerr)
		}
		defer camera.Cleanup()
		acquired, err = camera.Capture(ctx)
	} else {
		acquired, err = imaging.Picker{}.Pick(ctx, imagePath)
	}
	if err != nil {
		log.Fatalf("acquisition error: %v", err)
	}
	if acquired == nil {
		fmt.Println("no image selected")
		return
	}

	if err := pipe.SetImage(acquired); err != nil {
		log.Fatalf("image error: %v", err)
	}
	if err := pipe.Analyze(ctx); err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	result := pipe.Result()
	fmt.Printf("Inspection %s\n\n", result.Inspection.ID)
	fmt.Print(report.RenderText(result.Analysis))

	if n := cache.TotalCount(); n > 0 {
		fmt.Printf("\n%d inspection(s) on record\n", n)
	}
}

func runFetch(ctx context.Context, svc *client.Client, id string) {
	ins, err := svc.FetchByID(ctx, id)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	fmt.Printf("Inspection %s: %s (updated %s)\n", ins.ID, ins.ProcessingStatus, ins.UpdatedAt.Format("Jan 2, 2006 15:04"))
	if ins.Completed() && ins.AnalysisResults != nil {
		fmt.Println()
		fmt.Print(report.RenderText(ins.AnalysisResults))
	}
}

func runHistory(ctx context.Context, cache *history.Cache) {
	cache.Refresh(ctx, 1)

	inspections := cache.Snapshot()
	if len(inspections) == 0 {
		fmt.Println("no inspections found")
		return
	}

	fmt.Printf("%d of %d inspection(s):\n", len(inspections), cache.TotalCount())
	for _, ins := range inspections {
		line := fmt.Sprintf("  %s  %-10s  %s", ins.CreatedAt.Format("2006-01-02 15:04"), ins.ProcessingStatus, ins.ID)
		if ins.Completed() && ins.SafetyGrade != nil && ins.RiskScore != nil {
			line += fmt.Sprintf("  grade %s, risk %d", *ins.SafetyGrade, *ins.RiskScore)
		}
		fmt.Println(line)
	}
}
