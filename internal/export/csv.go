// Package export renders jobs, payments and reports to CSV and PDF files.
// Formatting only: it consumes read-only query results and never mutates.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/modernprinters/banner-tracker/internal/models"
)

// JobsCSVHeader lists every job field, one column each.
var JobsCSVHeader = []string{
	"id", "description", "width_ft", "height_ft", "pieces", "billed_area",
	"rate_per_sqft", "billed_amount", "custom_amount", "date_sent", "status",
	"notes", "client_name", "client_rate", "client_amount", "created_at",
}

// JobsCSV writes all jobs to w.
func JobsCSV(w io.Writer, jobs []models.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(JobsCSVHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		row := []string{
			strconv.FormatUint(uint64(j.ID), 10),
			j.Description,
			fmtFloat(j.WidthFt),
			fmtFloat(j.HeightFt),
			strconv.Itoa(j.Pieces),
			fmtFloat(j.BilledArea),
			fmtFloat(j.RatePerSqft),
			fmtFloat(j.BilledAmount),
			strconv.FormatBool(j.CustomAmount),
			j.DateSent,
			j.Status,
			j.Notes,
			j.ClientName,
			fmtFloat(j.ClientRate),
			fmtFloat(j.ClientAmount),
			j.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PaymentsCSVHeader lists every payment field.
var PaymentsCSVHeader = []string{"id", "amount", "date_paid", "notes", "reference", "created_at"}

// PaymentsCSV writes all payments to w.
func PaymentsCSV(w io.Writer, payments []models.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PaymentsCSVHeader); err != nil {
		return err
	}
	for _, p := range payments {
		row := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			fmtFloat(p.Amount),
			p.DatePaid,
			p.Notes,
			p.Reference,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
