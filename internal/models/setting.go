package models

// Setting is a row of process-wide key/value state.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// Setting keys.
const (
	SettingPricePerSqft = "price_per_sqft"
	SettingReminderDays = "reminder_days"
	SettingCarryForward = "carry_forward"
)

// Settings is the typed view of the settings rows, loaded once per logical
// operation and passed into the core explicitly.
type Settings struct {
	PricePerSqft float64
	ReminderDays int
	CarryForward float64
}

// DefaultSettings are seeded on first run.
func DefaultSettings() Settings {
	return Settings{PricePerSqft: 50, ReminderDays: 10, CarryForward: 0}
}
