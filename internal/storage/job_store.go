package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CarlosHxH/politec/internal/models"
)

// JobStore is the in-memory registry of analysis jobs. It is the only shared
// mutable state in the service; all access goes through its methods, which
// keep their critical sections to the single map operation plus field writes.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

// NewJobStore creates an empty store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*models.Job)}
}

// Create registers a new pending job and returns a copy of the record.
func (s *JobStore) Create(filename string) models.Job {
	now := time.Now()
	job := &models.Job{
		ID:        uuid.New().String(),
		Filename:  filename,
		Status:    models.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return *job
}

// Get returns a copy of the job, never the shared record.
func (s *JobStore) Get(id string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	return *job, true
}

// List returns copies of all known jobs, newest first.
func (s *JobStore) List() []models.Job {
	s.mu.RLock()
	jobs := make([]models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	s.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}

// Update applies mutate to the stored record and refreshes UpdatedAt under the
// same lock, so a reader never observes one without the other. Unknown ids
// (the record was deleted while its runner was still active) and terminal
// records are silent no-ops; the return value reports whether the write took
// effect.
func (s *JobStore) Update(id string, mutate func(*models.Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Status.Terminal() {
		return false
	}
	mutate(job)
	job.UpdatedAt = time.Now()
	return true
}

// Delete removes a job record and reports whether it existed.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// SweepTerminal drops completed and failed jobs whose last update is older
// than the given age, and reports how many were removed. Pending and
// processing jobs are never swept.
func (s *JobStore) SweepTerminal(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, job := range s.jobs {
		if job.Status.Terminal() && job.UpdatedAt.Before(cutoff) {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}
