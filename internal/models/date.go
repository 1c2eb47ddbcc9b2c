package models

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the storage format for DateSent / DatePaid.
const ISODate = "2006-01-02"

var acceptedDateLayouts = []string{"02/01/2006", ISODate, "02-01-2006"}

// ParseDate normalizes operator input (dd/mm/yyyy, yyyy-mm-dd or dd-mm-yyyy)
// to the ISO storage form.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", s)
}

// DaysSince returns whole days elapsed between an ISO date and today.
func DaysSince(isoDate string, today time.Time) (int, error) {
	t, err := time.Parse(ISODate, dateHead(isoDate))
	if err != nil {
		return 0, err
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Sub(t).Hours() / 24), nil
}

// MonthKey returns a sortable yyyy-mm grouping key, or ok=false for dates that
// do not parse (callers group those under an explicit "Unknown" bucket).
func MonthKey(isoDate string) (string, bool) {
	t, err := time.Parse(ISODate, dateHead(isoDate))
	if err != nil {
		return "", false
	}
	return t.Format("2006-01"), true
}

// ISOWeekKey returns the ISO week label used by the payment history display.
func ISOWeekKey(isoDate string) (string, bool) {
	t, err := time.Parse(ISODate, dateHead(isoDate))
	if err != nil {
		return "", false
	}
	_, week := t.ISOWeek()
	return fmt.Sprintf("Week %d", week), true
}

// MonthLabel renders a yyyy-mm key as "Jan 2006" for display.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// dateHead trims a possible timestamp tail, keeping the yyyy-mm-dd prefix.
func dateHead(s string) string {
	if len(s) > len(ISODate) {
		return s[:len(ISODate)]
	}
	return s
}

func fmtSize(w, h float64, pieces int) string {
	return fmt.Sprintf("%gx%g ft x %dpcs", w, h, pieces)
}
