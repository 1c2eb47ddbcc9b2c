package models

import (
	"testing"
	"time"
)

func TestJob_Profit(t *testing.T) {
	j := &Job{BilledAmount: 3200, ClientAmount: 4000}
	if got := j.Profit(); got != 800 {
		t.Errorf("Profit() = %f, want 800", got)
	}
}

func TestPayment_IsCorrection(t *testing.T) {
	if (&Payment{Amount: 500}).IsCorrection() {
		t.Error("positive payment flagged as correction")
	}
	if !(&Payment{Amount: -200}).IsCorrection() {
		t.Error("negative payment not flagged as correction")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusPartial, StatusPaid} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("done") {
		t.Error(`ValidStatus("done") = true`)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15/03/2024", "2024-03-15"},
		{"2024-03-15", "2024-03-15"},
		{"15-03-2024", "2024-03-15"},
		{" 01/01/2025 ", "2025-01-01"},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Error(`ParseDate("yesterday") succeeded, want error`)
	}
}

func TestDaysSince(t *testing.T) {
	today := time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)
	got, err := DaysSince("2024-03-05", today)
	if err != nil {
		t.Fatalf("DaysSince: %v", err)
	}
	if got != 15 {
		t.Errorf("DaysSince = %d, want 15", got)
	}
}

func TestMonthKey(t *testing.T) {
	key, ok := MonthKey("2024-03-15")
	if !ok || key != "2024-03" {
		t.Errorf("MonthKey = %q, %v", key, ok)
	}
	// timestamp tails from older rows are tolerated
	key, ok = MonthKey("2024-03-15 10:22:00")
	if !ok || key != "2024-03" {
		t.Errorf("MonthKey with timestamp = %q, %v", key, ok)
	}
	if _, ok := MonthKey("not-a-date"); ok {
		t.Error("MonthKey accepted garbage")
	}
}

func TestISOWeekKey(t *testing.T) {
	key, ok := ISOWeekKey("2024-01-04")
	if !ok || key != "Week 1" {
		t.Errorf("ISOWeekKey = %q, %v", key, ok)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("2024-03"); got != "Mar 2024" {
		t.Errorf("MonthLabel = %q", got)
	}
	if got := MonthLabel("Unknown"); got != "Unknown" {
		t.Errorf("MonthLabel passthrough = %q", got)
	}
}
