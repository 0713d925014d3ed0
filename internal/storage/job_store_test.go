package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/CarlosHxH/politec/internal/models"
)

func TestCreateAssignsUniqueIDs(t *testing.T) {
	store := NewJobStore()

	const workers = 20
	const perWorker = 25

	ids := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ids <- store.Create("clip.mp4").ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate job id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != workers*perWorker {
		t.Errorf("expected %d jobs, got %d", workers*perWorker, len(seen))
	}
	if len(store.List()) != workers*perWorker {
		t.Errorf("store holds %d jobs, want %d", len(store.List()), workers*perWorker)
	}
}

func TestCreateStartsPending(t *testing.T) {
	store := NewJobStore()
	job := store.Create("evidencia.mp4")

	got, ok := store.Get(job.ID)
	if !ok {
		t.Fatal("created job not found")
	}
	if got.Status != models.JobStatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if got.Filename != "evidencia.mp4" {
		t.Errorf("filename = %s, want evidencia.mp4", got.Filename)
	}
	if got.Result != nil || got.Error != "" {
		t.Errorf("fresh job must carry neither result nor error")
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updated_at predates created_at")
	}
}

// Concurrent readers must never observe a record with one field from an older
// write and another from a newer one. Progress and Filename are written as a
// matched pair; any mismatch is a torn read.
func TestConcurrentReadsSeeConsistentRecords(t *testing.T) {
	store := NewJobStore()
	job := store.Create("pair-0")
	store.Update(job.ID, func(j *models.Job) {
		j.Progress = "pair-0"
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 500; i++ {
			v := fmt.Sprintf("pair-%d", i)
			store.Update(job.ID, func(j *models.Job) {
				j.Progress = v
				j.Filename = v
			})
		}
	}()

	var lastSeen time.Time
	for {
		got, ok := store.Get(job.ID)
		if !ok {
			t.Fatal("job vanished mid-test")
		}
		if got.Progress != got.Filename {
			t.Fatalf("torn read: progress %q, filename %q", got.Progress, got.Filename)
		}
		if got.UpdatedAt.Before(lastSeen) {
			t.Fatalf("updated_at went backwards: %v after %v", got.UpdatedAt, lastSeen)
		}
		lastSeen = got.UpdatedAt

		select {
		case <-done:
			return
		default:
		}
	}
}

func TestTerminalJobsAreImmune(t *testing.T) {
	store := NewJobStore()
	job := store.Create("clip.mp4")

	if !store.Update(job.ID, func(j *models.Job) {
		j.Status = models.JobStatusCompleted
		j.Result = "first terminal write"
	}) {
		t.Fatal("first terminal transition rejected")
	}

	// Duplicate late signals must be silent no-ops.
	if store.Update(job.ID, func(j *models.Job) {
		j.Status = models.JobStatusFailed
		j.Error = "late failure signal"
	}) {
		t.Error("terminal job accepted a second write")
	}

	got, _ := store.Get(job.ID)
	if got.Status != models.JobStatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.Result != "first terminal write" || got.Error != "" {
		t.Errorf("terminal fields changed after the first terminal write")
	}
}

func TestUpdateAfterDeleteIsNoOp(t *testing.T) {
	store := NewJobStore()
	job := store.Create("clip.mp4")

	if !store.Delete(job.ID) {
		t.Fatal("delete of existing job failed")
	}
	if store.Delete(job.ID) {
		t.Error("second delete reported success")
	}
	if store.Update(job.ID, func(j *models.Job) {
		j.Status = models.JobStatusCompleted
	}) {
		t.Error("update of deleted job reported success")
	}
	if _, ok := store.Get(job.ID); ok {
		t.Error("deleted job still readable")
	}
}

func TestListNewestFirst(t *testing.T) {
	store := NewJobStore()
	first := store.Create("a.mp4")
	time.Sleep(2 * time.Millisecond)
	second := store.Create("b.mp4")

	jobs := store.List()
	if len(jobs) != 2 {
		t.Fatalf("len = %d, want 2", len(jobs))
	}
	if jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Errorf("list not ordered newest first")
	}
}

func TestSweepTerminalKeepsActiveJobs(t *testing.T) {
	store := NewJobStore()
	finished := store.Create("done.mp4")
	running := store.Create("running.mp4")

	store.Update(finished.ID, func(j *models.Job) {
		j.Status = models.JobStatusCompleted
	})
	store.Update(running.ID, func(j *models.Job) {
		j.Status = models.JobStatusProcessing
	})

	time.Sleep(5 * time.Millisecond)
	if removed := store.SweepTerminal(time.Millisecond); removed != 1 {
		t.Errorf("sweep removed %d jobs, want 1", removed)
	}
	if _, ok := store.Get(finished.ID); ok {
		t.Error("terminal job survived the sweep")
	}
	if _, ok := store.Get(running.ID); !ok {
		t.Error("active job was swept")
	}
}
