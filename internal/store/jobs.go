package store

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/modernprinters/banner-tracker/internal/models"
)

var unsafeQueryChars = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)

// JobFilter constrains ListJobs. Zero values mean "no constraint".
type JobFilter struct {
	Status   string
	DateFrom string // ISO, inclusive
	DateTo   string // ISO, inclusive
	Query    string // free text over description/client/notes
}

// ListJobs returns jobs for display, newest first (date_sent desc, id desc).
// The allocation engine re-sorts ascending internally regardless.
func (s *Store) ListJobs(filter JobFilter) ([]models.Job, error) {
	dbq := s.db.Model(&models.Job{})
	if filter.Status != "" {
		dbq = dbq.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		dbq = dbq.Where("date_sent >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		dbq = dbq.Where("date_sent <= ?", filter.DateTo)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		safe := unsafeQueryChars.ReplaceAllString(q, "")
		like := "%" + strings.ToLower(safe) + "%"
		dbq = dbq.Where(
			"lower(description) LIKE ? OR lower(client_name) LIKE ? OR lower(notes) LIKE ?",
			like, like, like,
		)
	}
	var jobs []models.Job
	if err := dbq.Order("date_sent desc, id desc").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) GetJob(id uint) (models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, id).Error; err != nil {
		return models.Job{}, notFound(err, "job", id)
	}
	return job, nil
}

func (s *Store) InsertJob(job *models.Job) (uint, error) {
	if err := s.db.Create(job).Error; err != nil {
		return 0, err
	}
	return job.ID, nil
}

// UpdateJob applies a partial column update.
func (s *Store) UpdateJob(id uint, fields map[string]interface{}) error {
	res := s.db.Model(&models.Job{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteJob(id uint) error {
	res := s.db.Delete(&models.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetJobStatus is the manual override. The next allocation pass overwrites it
// according to the payment pool; this is the documented behaviour, not a bug.
func (s *Store) SetJobStatus(id uint, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.UpdateJob(id, map[string]interface{}{"status": status})
}

// RepriceJobs recomputes billed amounts at newRate for every job that is not
// custom-priced. Custom amounts are never touched by a global rate change.
func (s *Store) RepriceJobs(newRate float64) error {
	return s.db.Model(&models.Job{}).
		Where("custom_amount = ?", false).
		Updates(map[string]interface{}{
			"rate_per_sqft": newRate,
			"billed_amount": gorm.Expr("billed_area * ?", newRate),
		}).Error
}

// ClientNames returns distinct client names from past jobs for lookups.
func (s *Store) ClientNames() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Job{}).
		Where("client_name <> ''").
		Distinct("client_name").
		Order("client_name").
		Pluck("client_name", &names).Error
	return names, err
}

// LastClientRate returns the most recent non-zero client rate for a client,
// or ok=false when the client has no rate history.
func (s *Store) LastClientRate(clientName string) (float64, bool, error) {
	var job models.Job
	err := s.db.Where("client_name = ? AND client_rate > 0", clientName).
		Order("id desc").First(&job).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return job.ClientRate, true, nil
}

func (s *Store) CountJobs() (int64, error) {
	var n int64
	err := s.db.Model(&models.Job{}).Count(&n).Error
	return n, err
}

// ClearJobs removes every job record.
func (s *Store) ClearJobs() error {
	return s.db.Where("1 = 1").Delete(&models.Job{}).Error
}
