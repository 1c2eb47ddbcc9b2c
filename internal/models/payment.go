package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a payment made to the printing shop. Payments are a pool: they are
// not earmarked to specific jobs, allocation is computed from the cumulative sum.
type Payment struct {
	ID        uint    `gorm:"primaryKey"`
	Amount    float64 `gorm:"not null"` // negative = correction / debt entry
	DatePaid  string  `gorm:"not null;index"`
	Notes     string
	Reference string `gorm:"size:36;uniqueIndex"`
	CreatedAt time.Time
}

// BeforeCreate assigns a reference for receipts when none was supplied.
func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.Reference == "" {
		p.Reference = uuid.NewString()
	}
	return nil
}

// IsCorrection reports whether this entry reduces the pool.
func (p *Payment) IsCorrection() bool {
	return p.Amount < 0
}
