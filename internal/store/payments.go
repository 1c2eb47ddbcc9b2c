package store

import (
	"fmt"

	"github.com/modernprinters/banner-tracker/internal/models"
)

// PaymentOrder selects the ordering of ListPayments.
type PaymentOrder string

const (
	PaymentsNewestFirst PaymentOrder = "date_paid desc, id desc"
	PaymentsOldestFirst PaymentOrder = "date_paid asc, id asc"
)

func (s *Store) ListPayments(order PaymentOrder) ([]models.Payment, error) {
	if order == "" {
		order = PaymentsNewestFirst
	}
	var payments []models.Payment
	if err := s.db.Order(string(order)).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *Store) InsertPayment(p *models.Payment) (uint, error) {
	if err := s.db.Create(p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Store) DeletePayment(id uint) error {
	res := s.db.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	return nil
}

// TotalPaid is the allocation pool: the sum of all payment amounts,
// corrections included.
func (s *Store) TotalPaid() (float64, error) {
	var total *float64
	err := s.db.Model(&models.Payment{}).Select("SUM(amount)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (s *Store) CountPayments() (int64, error) {
	var n int64
	err := s.db.Model(&models.Payment{}).Count(&n).Error
	return n, err
}

// ClearPayments removes every payment record.
func (s *Store) ClearPayments() error {
	return s.db.Where("1 = 1").Delete(&models.Payment{}).Error
}
