package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/CarlosHxH/politec/internal/models"
	"github.com/CarlosHxH/politec/internal/storage"
	"github.com/CarlosHxH/politec/internal/worker"
)

// AnalysisHandler exposes the asynchronous job lifecycle API.
type AnalysisHandler struct {
	store     *storage.JobStore
	runner    *worker.Runner
	uploadDir string
	maxBytes  int64
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(store *storage.JobStore, runner *worker.Runner, uploadDir string, maxBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		store:     store,
		runner:    runner,
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
	}
}

// Submit accepts the multipart video upload, creates the job record and
// spawns its runner. The caller gets the job id back immediately and polls
// for the rest.
// POST /api/analyze
func (h *AnalysisHandler) Submit(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file field is required"})
	}

	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{
			"error": fmt.Sprintf("file too large (%.2f GB); the limit is %d GB", float64(fh.Size)/(1<<30), h.maxBytes>>30),
		})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to open upload"})
	}
	defer src.Close()

	job := h.store.Create(fh.Filename)

	tempPath := filepath.Join(h.uploadDir, job.ID+"_"+filepath.Base(fh.Filename))
	dst, err := os.Create(tempPath)
	if err != nil {
		h.store.Delete(job.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store upload"})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tempPath)
		h.store.Delete(job.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save upload"})
	}
	if err := dst.Close(); err != nil {
		os.Remove(tempPath)
		h.store.Delete(job.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to finalise upload"})
	}

	// Fire and forget; the runner reports back through the store.
	go h.runner.Run(context.Background(), job.ID, tempPath)

	return c.JSON(http.StatusAccepted, map[string]string{
		"job_id":   job.ID,
		"status":   string(job.Status),
		"filename": job.Filename,
	})
}

// Status returns the lifecycle envelope for one job.
// GET /api/jobs/:id/status
func (h *AnalysisHandler) Status(c echo.Context) error {
	job, ok := h.store.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}
	return c.JSON(http.StatusOK, statusEnvelope(job))
}

// Result returns the enriched report once the job completed and the failure
// diagnostic once it failed; before either it behaves like Status.
// GET /api/jobs/:id/result
func (h *AnalysisHandler) Result(c echo.Context) error {
	job, ok := h.store.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	switch job.Status {
	case models.JobStatusCompleted:
		return c.JSON(http.StatusOK, map[string]any{
			"job_id":   job.ID,
			"status":   job.Status,
			"filename": job.Filename,
			"result":   job.Result,
		})
	case models.JobStatusFailed:
		return c.JSON(http.StatusOK, map[string]any{
			"job_id": job.ID,
			"status": job.Status,
			"error":  job.Error,
		})
	default:
		return c.JSON(http.StatusOK, statusEnvelope(job))
	}
}

// List returns summaries of every known job, newest first.
// GET /api/jobs
func (h *AnalysisHandler) List(c echo.Context) error {
	jobs := h.store.List()
	summaries := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, statusEnvelope(job))
	}
	return c.JSON(http.StatusOK, summaries)
}

// Delete removes a job record. A runner still working on the job keeps
// running and its remaining writes become no-ops.
// DELETE /api/jobs/:id
func (h *AnalysisHandler) Delete(c echo.Context) error {
	if !h.store.Delete(c.Param("id")) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// statusEnvelope is the summary shape shared by Status, List and the
// non-terminal Result responses. The result payload itself is deliberately
// excluded.
func statusEnvelope(job models.Job) map[string]any {
	env := map[string]any{
		"job_id":     job.ID,
		"status":     job.Status,
		"filename":   job.Filename,
		"created_at": job.CreatedAt,
		"updated_at": job.UpdatedAt,
	}
	if job.Progress != "" {
		env["progress"] = job.Progress
	}
	if job.Error != "" {
		env["error"] = job.Error
	}
	return env
}
