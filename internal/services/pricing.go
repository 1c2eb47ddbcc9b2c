package services

import (
	"math"

	"github.com/modernprinters/banner-tracker/internal/models"
	"github.com/modernprinters/banner-tracker/internal/store"
	"github.com/modernprinters/banner-tracker/internal/validation"
)

// ComputeBilledAmount derives the billed area and amount for a job's physical
// dimensions. Pieces below 1 coerce to 1. Width and height must be positive
// finite numbers.
func ComputeBilledAmount(width, height float64, pieces int, rate float64) (area, amount float64, err error) {
	v := validation.Violations{}
	validation.FiniteFloat("width", width, v)
	validation.FiniteFloat("height", height, v)
	validation.FiniteFloat("rate", rate, v)
	if _, bad := v["width"]; !bad {
		validation.PositiveFloat("width", width, v)
	}
	if _, bad := v["height"]; !bad {
		validation.PositiveFloat("height", height, v)
	}
	if err := v.Err(); err != nil {
		return 0, 0, err
	}
	if pieces < 1 {
		pieces = 1
	}
	area = width * height * float64(pieces)
	amount = round2(area * rate)
	return area, amount, nil
}

// ClientFigures is the client-facing rate/amount pair billed to the end
// client, distinct from the printer's billed amount.
type ClientFigures struct {
	Rate   float64
	Amount float64
}

// FigureDeriver fills in the missing half of the client rate/amount pair.
// The deriving flag guards against the derivation re-triggering itself when a
// caller feeds field-change events back into it.
type FigureDeriver struct {
	deriving bool
}

// CrossDerive computes the missing figure from the given one. A nil pointer
// means "not supplied". When both are supplied neither is overwritten; when
// area is zero the rate derivation is skipped.
func (d *FigureDeriver) CrossDerive(area float64, rate, amount *float64) ClientFigures {
	out := ClientFigures{}
	if rate != nil {
		out.Rate = *rate
	}
	if amount != nil {
		out.Amount = *amount
	}
	if d.deriving {
		return out
	}
	d.deriving = true
	defer func() { d.deriving = false }()

	switch {
	case rate != nil && amount != nil:
		// both supplied: leave untouched
	case rate != nil:
		out.Amount = math.Round(area * *rate)
	case amount != nil:
		if area != 0 {
			out.Rate = round2(*amount / area)
		}
	}
	return out
}

// ApplyGlobalRateChange persists newRate as the default for future jobs and,
// when applyToExisting is set, reprices every job that is not custom-priced.
func ApplyGlobalRateChange(st *store.Store, newRate float64, applyToExisting bool) error {
	v := validation.Violations{}
	validation.FiniteFloat("rate", newRate, v)
	if _, bad := v["rate"]; !bad {
		validation.PositiveFloat("rate", newRate, v)
	}
	if err := v.Err(); err != nil {
		return err
	}
	cfg, err := st.LoadSettings()
	if err != nil {
		return err
	}
	cfg.PricePerSqft = newRate
	if err := st.SaveSettings(cfg); err != nil {
		return err
	}
	if applyToExisting {
		return st.RepriceJobs(newRate)
	}
	return nil
}

// NewJob builds a validated job record at the given rate. A customAmount of
// nil means standard area pricing; non-nil pins the billed amount and marks
// the job exempt from global reprices.
func NewJob(description string, width, height float64, pieces int, rate float64, dateSent string, customAmount *float64) (models.Job, error) {
	v := validation.Violations{}
	validation.Required("description", description, v)
	if err := v.Err(); err != nil {
		return models.Job{}, err
	}
	area, amount, err := ComputeBilledAmount(width, height, pieces, rate)
	if err != nil {
		return models.Job{}, err
	}
	iso, err := models.ParseDate(dateSent)
	if err != nil {
		v["date_sent"] = "unparseable"
		return models.Job{}, v.Err()
	}
	if pieces < 1 {
		pieces = 1
	}
	job := models.Job{
		Description:  description,
		WidthFt:      width,
		HeightFt:     height,
		Pieces:       pieces,
		BilledArea:   area,
		RatePerSqft:  rate,
		BilledAmount: amount,
		DateSent:     iso,
		Status:       models.StatusPending,
	}
	if customAmount != nil {
		job.BilledAmount = round2(*customAmount)
		job.CustomAmount = true
	}
	return job, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
