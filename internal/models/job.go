package models

import "time"

// JobStatus represents the lifecycle stage of an analysis job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job tracks one uploaded video from submission to terminal state. Result is
// the enriched report and is only set on completion; Error is only set on
// failure.
type Job struct {
	ID        string    `json:"job_id"`
	Filename  string    `json:"filename"`
	Status    JobStatus `json:"status"`
	Progress  string    `json:"progress,omitempty"`
	Error     string    `json:"error,omitempty"`
	Result    any       `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
