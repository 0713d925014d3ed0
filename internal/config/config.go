package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries the service settings, all overridable via environment
// variables (a .env file is honoured by the entrypoint).
type Config struct {
	Port           string
	GoogleAPIKey   string
	GeminiModel    string
	TempVideoDir   string
	MaxUploadBytes int64
	FFmpegBin      string
	FFprobeBin     string
	JobRetention   time.Duration // 0 keeps records forever
}

// Load reads settings from the environment, applying the service defaults.
func Load() Config {
	cfg := Config{
		Port:         getenv("PORT", "8000"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL_NAME", "gemini-1.5-pro"),
		TempVideoDir: getenv("TEMP_VIDEO_DIR", "temp_videos"),
		// Gemini rejects files above 2 GB.
		MaxUploadBytes: 2 << 30,
		FFmpegBin:      os.Getenv("FFMPEG_BIN"),
		FFprobeBin:     os.Getenv("FFPROBE_BIN"),
	}

	if raw := os.Getenv("MAX_UPLOAD_MB"); raw != "" {
		if mb, err := strconv.ParseInt(raw, 10, 64); err == nil && mb > 0 {
			cfg.MaxUploadBytes = mb << 20
		}
	}
	if raw := os.Getenv("JOB_RETENTION_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.JobRetention = time.Duration(hours) * time.Hour
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
