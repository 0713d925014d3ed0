package worker

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/CarlosHxH/politec/internal/analysis"
	"github.com/CarlosHxH/politec/internal/models"
	"github.com/CarlosHxH/politec/internal/storage"
	"github.com/CarlosHxH/politec/internal/video"
)

// parseErrorMarker is attached to best-effort results whose analysis text
// could not be decoded as JSON.
const parseErrorMarker = "analysis output is not valid JSON"

// Runner drives one submitted job from pending to a terminal state. One
// goroutine per job owns the whole sequence and reports back solely through
// store writes; nothing is returned to the submission handler.
type Runner struct {
	Store        *storage.JobStore
	Analyzer     analysis.Analyzer
	NewExtractor func(videoPath string) video.FrameExtractor

	// RemoveRetries and RemoveDelay tune the temp-file cleanup loop.
	RemoveRetries int
	RemoveDelay   time.Duration
}

// Run executes the full lifecycle for one job. videoPath is the temp copy of
// the upload; it is removed when the run finishes, whatever the outcome.
func (r *Runner) Run(ctx context.Context, jobID, videoPath string) {
	defer r.removeUpload(videoPath)

	r.Store.Update(jobID, func(job *models.Job) {
		job.Status = models.JobStatusProcessing
		job.Progress = "submitting video to analysis service"
	})

	raw, err := r.Analyzer.Analyze(ctx, videoPath)
	if err != nil {
		log.Printf("job %s: analysis failed: %v", jobID, err)
		r.Store.Update(jobID, func(job *models.Job) {
			job.Status = models.JobStatusFailed
			job.Error = err.Error()
			job.Progress = ""
		})
		return
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		// Best-effort delivery: hand the unparsable text to the caller
		// instead of discarding it.
		log.Printf("job %s: %s: %v", jobID, parseErrorMarker, err)
		r.Store.Update(jobID, func(job *models.Job) {
			job.Status = models.JobStatusCompleted
			job.Result = map[string]any{
				"raw_output":  raw,
				"parse_error": parseErrorMarker,
			}
			job.Progress = ""
		})
		return
	}

	r.Store.Update(jobID, func(job *models.Job) {
		job.Progress = "extracting frame previews"
	})

	enriched := video.EnrichWithFramePreviews(data, r.NewExtractor(videoPath))

	if r.Store.Update(jobID, func(job *models.Job) {
		job.Status = models.JobStatusCompleted
		job.Result = enriched
		job.Progress = ""
	}) {
		log.Printf("job %s: completed", jobID)
	} else {
		log.Printf("job %s: record gone before completion could be stored", jobID)
	}
}

// removeUpload deletes the temp copy, retrying a few times for platforms
// that keep the handle locked briefly after the last decoder exits. Failure
// is logged only.
func (r *Runner) removeUpload(path string) {
	retries := r.RemoveRetries
	if retries <= 0 {
		retries = 3
	}
	delay := r.RemoveDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	for attempt := 0; attempt < retries; attempt++ {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return
		}
		if attempt < retries-1 {
			time.Sleep(delay)
		} else {
			log.Printf("could not remove temp file %s: %v", path, err)
		}
	}
}
