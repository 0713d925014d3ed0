package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/CarlosHxH/politec/internal/analysis"
	"github.com/CarlosHxH/politec/internal/config"
	"github.com/CarlosHxH/politec/internal/handlers"
	"github.com/CarlosHxH/politec/internal/storage"
	"github.com/CarlosHxH/politec/internal/version"
	"github.com/CarlosHxH/politec/internal/video"
	"github.com/CarlosHxH/politec/internal/worker"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := os.MkdirAll(cfg.TempVideoDir, 0o755); err != nil {
		log.Fatalf("unable to create temp video directory: %v", err)
	}
	if cfg.GoogleAPIKey == "" {
		log.Println("GOOGLE_API_KEY is not set; submissions will fail until it is configured")
	}

	store := storage.NewJobStore()
	runner := &worker.Runner{
		Store:    store,
		Analyzer: analysis.NewGeminiAnalyzer(cfg.GoogleAPIKey, cfg.GeminiModel),
		NewExtractor: func(videoPath string) video.FrameExtractor {
			return video.NewFFmpegExtractor(cfg.FFmpegBin, cfg.FFprobeBin, videoPath)
		},
	}
	h := handlers.NewAnalysisHandler(store, runner, cfg.TempVideoDir, cfg.MaxUploadBytes)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadBytes>>20)))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	})
	e.POST("/api/analyze", h.Submit)
	e.GET("/api/jobs", h.List)
	e.GET("/api/jobs/:id/status", h.Status)
	e.GET("/api/jobs/:id/result", h.Result)
	e.DELETE("/api/jobs/:id", h.Delete)

	if cfg.JobRetention > 0 {
		go sweepLoop(context.Background(), store, cfg.JobRetention)
	}

	log.Printf("Starting Politec v%s on port %s (model %s)", version.Version, cfg.Port, cfg.GeminiModel)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// sweepLoop bounds the in-memory job table by periodically dropping terminal
// records older than the configured retention.
func sweepLoop(ctx context.Context, store *storage.JobStore, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.SweepTerminal(retention); removed > 0 {
				log.Printf("retention sweep removed %d finished jobs", removed)
			}
		}
	}
}
