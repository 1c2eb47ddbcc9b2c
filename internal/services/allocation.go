package services

import (
	"log"
	"math"
	"sort"

	"github.com/modernprinters/banner-tracker/internal/models"
	"github.com/modernprinters/banner-tracker/internal/store"
)

// AllocationResult is the outcome of one allocation pass. Statuses holds the
// derived status for every job visited; a job is never left out of the map.
type AllocationResult struct {
	Statuses map[uint]string
	Consumed float64 // total billed amount covered by paid + partial jobs
	Leftover float64 // pool remaining after the walk (credit toward future jobs)
	Flagged  []uint  // jobs with zero, negative or non-numeric billed amounts
}

// Allocate walks all jobs oldest-first (date_sent asc, id asc as tie-break)
// against the cumulative payment pool and derives every job's status. The
// function is pure and total: it overwrites prior statuses completely, so
// re-running it after a payment is removed reverts downstream jobs.
//
// A job with a zero, negative or NaN billed amount never consumes the pool
// and is never marked paid here; it is reported in Flagged instead.
func Allocate(jobs []models.Job, totalPaid float64) AllocationResult {
	ordered := make([]models.Job, len(jobs))
	copy(ordered, jobs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DateSent != ordered[j].DateSent {
			return ordered[i].DateSent < ordered[j].DateSent
		}
		return ordered[i].ID < ordered[j].ID
	})

	res := AllocationResult{Statuses: make(map[uint]string, len(ordered))}
	remaining := totalPaid
	for _, job := range ordered {
		amt := job.BilledAmount
		if amt <= 0 || math.IsNaN(amt) {
			res.Statuses[job.ID] = models.StatusPending
			res.Flagged = append(res.Flagged, job.ID)
			continue
		}
		switch {
		case remaining >= amt:
			res.Statuses[job.ID] = models.StatusPaid
			res.Consumed += amt
			remaining -= amt
		case remaining > 0:
			// the partial remainder is fully consumed here, it does not
			// carry into the next job
			res.Statuses[job.ID] = models.StatusPartial
			res.Consumed += remaining
			remaining = 0
		default:
			res.Statuses[job.ID] = models.StatusPending
		}
	}
	res.Leftover = remaining
	return res
}

// AllocationService re-derives job statuses from the payment pool and writes
// them back to the store. It never creates or deletes records.
type AllocationService struct {
	store *store.Store
}

func NewAllocationService(st *store.Store) *AllocationService {
	return &AllocationService{store: st}
}

// Reallocate loads the full job list and payment pool, runs Allocate and
// persists only the statuses that changed. Must run after every payment
// insert or delete, and after any reprice that shifts billed amounts.
func (s *AllocationService) Reallocate() (AllocationResult, error) {
	jobs, err := s.store.ListJobs(store.JobFilter{})
	if err != nil {
		return AllocationResult{}, err
	}
	totalPaid, err := s.store.TotalPaid()
	if err != nil {
		return AllocationResult{}, err
	}
	res := Allocate(jobs, totalPaid)
	for _, job := range jobs {
		next := res.Statuses[job.ID]
		if next == job.Status {
			continue
		}
		if err := s.store.SetJobStatus(job.ID, next); err != nil {
			return AllocationResult{}, err
		}
	}
	if len(res.Flagged) > 0 {
		log.Printf("allocation: %d job(s) with non-positive billed amount skipped: %v",
			len(res.Flagged), res.Flagged)
	}
	return res, nil
}
