package store

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/modernprinters/banner-tracker/internal/models"
)

// GetSetting returns the raw value for key, or ok=false when absent.
func (s *Store) GetSetting(key string) (string, bool, error) {
	var row models.Setting
	err := s.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *Store) SetSetting(key, value string) error {
	var row models.Setting
	err := s.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&models.Setting{}).Where("key = ?", key).
		Update("value", value).Error
}

// LoadSettings reads the settings rows into the typed value object, falling
// back to defaults for missing or malformed values. Loaded once per logical
// operation; callers pass it into the core rather than re-reading globals.
func (s *Store) LoadSettings() (models.Settings, error) {
	out := models.DefaultSettings()
	if v, ok, err := s.GetSetting(models.SettingPricePerSqft); err != nil {
		return out, err
	} else if ok {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			out.PricePerSqft = f
		}
	}
	if v, ok, err := s.GetSetting(models.SettingReminderDays); err != nil {
		return out, err
	} else if ok {
		if n, perr := strconv.Atoi(v); perr == nil {
			out.ReminderDays = n
		}
	}
	if v, ok, err := s.GetSetting(models.SettingCarryForward); err != nil {
		return out, err
	} else if ok {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			out.CarryForward = f
		}
	}
	return out, nil
}

// SaveSettings persists the typed settings object.
func (s *Store) SaveSettings(cfg models.Settings) error {
	if err := s.SetSetting(models.SettingPricePerSqft, fmt.Sprintf("%g", cfg.PricePerSqft)); err != nil {
		return err
	}
	if err := s.SetSetting(models.SettingReminderDays, strconv.Itoa(cfg.ReminderDays)); err != nil {
		return err
	}
	return s.SetSetting(models.SettingCarryForward, fmt.Sprintf("%g", cfg.CarryForward))
}

// ResetAll wipes jobs and payments. Settings survive a reset.
func (s *Store) ResetAll() error {
	if err := s.ClearJobs(); err != nil {
		return err
	}
	return s.ClearPayments()
}
