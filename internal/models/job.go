package models

import "time"

// Job statuses. Status is derived by the allocation engine; a manual override
// survives only until the next allocation pass.
const (
	StatusPending = "pending"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// Job is a single banner print order.
type Job struct {
	ID           uint    `gorm:"primaryKey"`
	Description  string  `gorm:"not null"`
	WidthFt      float64 `gorm:"not null"`
	HeightFt     float64 `gorm:"not null"`
	Pieces       int     `gorm:"not null;default:1"`
	BilledArea   float64 `gorm:"not null"` // width * height * pieces, sq ft
	RatePerSqft  float64 `gorm:"not null"`
	BilledAmount float64 `gorm:"not null"`
	CustomAmount bool    `gorm:"not null;default:false"` // exempt from global reprices
	DateSent     string  `gorm:"not null;index"`         // ISO yyyy-mm-dd
	Status       string  `gorm:"not null;default:'pending';index"`
	Notes        string
	ClientName   string `gorm:"index"`
	ClientRate   float64
	ClientAmount float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidStatus reports whether s is one of the three job statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusPartial || s == StatusPaid
}

// Profit is what the end client pays minus what the printer bills.
func (j *Job) Profit() float64 {
	return j.ClientAmount - j.BilledAmount
}

// SizeLabel renders the physical dimensions, e.g. "4x8 ft x 2pcs".
func (j *Job) SizeLabel() string {
	return fmtSize(j.WidthFt, j.HeightFt, j.Pieces)
}
