package services

import (
	"math"
	"sort"
	"time"

	"github.com/modernprinters/banner-tracker/internal/models"
	"github.com/modernprinters/banner-tracker/internal/store"
)

// UnknownBucket groups rows whose dates do not parse rather than dropping them.
const UnknownBucket = "Unknown"

// Aging bucket boundaries in days. The bucket split is fixed; the reminder
// check uses the configurable ReminderDays setting instead.
const (
	agingMediumDays = 10
	agingSevereDays = 30
)

// Summary holds the aggregate financial figures for the summary bar.
// BalanceDue is clamped at zero; the carry-forward adjustment is folded into
// EffectivePaid and also reported on its own.
type Summary struct {
	TotalBilled        float64
	TotalPaid          float64
	CarryForward       float64
	EffectivePaid      float64
	BalanceDue         float64
	TotalClientRevenue float64
	NetProfit          float64
	PaidJobCount       int
}

// Summarize computes the aggregate figures from the loaded collections.
func Summarize(jobs []models.Job, totalPaid, carryForward float64) Summary {
	sum := Summary{TotalPaid: totalPaid, CarryForward: carryForward}
	for _, j := range jobs {
		sum.TotalBilled += j.BilledAmount
		sum.TotalClientRevenue += j.ClientAmount
		if j.Status == models.StatusPaid {
			sum.PaidJobCount++
		}
	}
	sum.EffectivePaid = totalPaid + carryForward
	sum.BalanceDue = math.Max(0, sum.TotalBilled-sum.EffectivePaid)
	sum.NetProfit = sum.TotalClientRevenue - sum.TotalBilled
	return sum
}

// AgingReport classifies pending jobs by days since they were billed.
type AgingReport struct {
	OverdueMedium []uint // 10 <= days < 30
	OverdueSevere []uint // days >= 30
}

// Aging buckets pending jobs relative to today. Jobs with unparseable dates
// are left out of both buckets.
func Aging(jobs []models.Job, today time.Time) AgingReport {
	var rep AgingReport
	for _, j := range jobs {
		if j.Status != models.StatusPending {
			continue
		}
		days, err := models.DaysSince(j.DateSent, today)
		if err != nil {
			continue
		}
		switch {
		case days >= agingSevereDays:
			rep.OverdueSevere = append(rep.OverdueSevere, j.ID)
		case days >= agingMediumDays:
			rep.OverdueMedium = append(rep.OverdueMedium, j.ID)
		}
	}
	return rep
}

// ReminderCount counts pending jobs unpaid for at least reminderDays days.
// Pure read; the caller decides whether to surface a warning.
func ReminderCount(jobs []models.Job, reminderDays int, today time.Time) int {
	count := 0
	for _, j := range jobs {
		if j.Status != models.StatusPending {
			continue
		}
		days, err := models.DaysSince(j.DateSent, today)
		if err != nil {
			continue
		}
		if days >= reminderDays {
			count++
		}
	}
	return count
}

// MonthRollup aggregates jobs billed in one calendar month.
type MonthRollup struct {
	Key           string // yyyy-mm, or UnknownBucket
	Label         string
	Billed        float64
	ClientRevenue float64
	Jobs          int
}

// MonthlyJobRollups groups jobs by the calendar month of date_sent, sorted
// chronologically with the Unknown bucket last.
func MonthlyJobRollups(jobs []models.Job) []MonthRollup {
	byKey := map[string]*MonthRollup{}
	for _, j := range jobs {
		key, ok := models.MonthKey(j.DateSent)
		if !ok {
			key = UnknownBucket
		}
		r := byKey[key]
		if r == nil {
			r = &MonthRollup{Key: key, Label: models.MonthLabel(key)}
			byKey[key] = r
		}
		r.Billed += j.BilledAmount
		r.ClientRevenue += j.ClientAmount
		r.Jobs++
	}
	return sortRollups(byKey)
}

// BestMonth is the month with the highest summed client revenue. Rollup keys
// are iterated in sorted order, so a tie resolves to the earliest month.
func BestMonth(rollups []MonthRollup) (MonthRollup, bool) {
	best := MonthRollup{}
	found := false
	for _, r := range rollups {
		if r.Key == UnknownBucket {
			continue
		}
		if !found || r.ClientRevenue > best.ClientRevenue {
			best = r
			found = true
		}
	}
	return best, found
}

// WeekGroup is one ISO week of payments inside a month group.
type WeekGroup struct {
	Week     string
	Total    float64
	Payments []models.Payment
}

// MonthGroup is one calendar month of the payment history display.
type MonthGroup struct {
	Key   string
	Label string
	Total float64
	Weeks []WeekGroup
}

// PaymentHistory groups payments by calendar month, then ISO week inside the
// month, newest month first. Unparseable dates land in the Unknown bucket.
func PaymentHistory(payments []models.Payment) []MonthGroup {
	type weekAgg struct {
		total float64
		rows  []models.Payment
	}
	months := map[string]map[string]*weekAgg{}
	totals := map[string]float64{}
	for _, p := range payments {
		mkey, ok := models.MonthKey(p.DatePaid)
		wkey := UnknownBucket
		if ok {
			wkey, _ = models.ISOWeekKey(p.DatePaid)
		} else {
			mkey = UnknownBucket
		}
		if months[mkey] == nil {
			months[mkey] = map[string]*weekAgg{}
		}
		w := months[mkey][wkey]
		if w == nil {
			w = &weekAgg{}
			months[mkey][wkey] = w
		}
		w.total += p.Amount
		w.rows = append(w.rows, p)
		totals[mkey] += p.Amount
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	// newest month first, Unknown last
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == UnknownBucket {
			return false
		}
		if keys[j] == UnknownBucket {
			return true
		}
		return keys[i] > keys[j]
	})

	out := make([]MonthGroup, 0, len(keys))
	for _, mkey := range keys {
		grp := MonthGroup{Key: mkey, Label: models.MonthLabel(mkey), Total: totals[mkey]}
		wkeys := make([]string, 0, len(months[mkey]))
		for wk := range months[mkey] {
			wkeys = append(wkeys, wk)
		}
		sort.Strings(wkeys)
		for _, wk := range wkeys {
			agg := months[mkey][wk]
			grp.Weeks = append(grp.Weeks, WeekGroup{Week: wk, Total: agg.total, Payments: agg.rows})
		}
		out = append(out, grp)
	}
	return out
}

// BillVerdict classifies a shop bill against our own total.
type BillVerdict string

const (
	BillMatch       BillVerdict = "match"
	BillOvercharged BillVerdict = "overcharged"
	BillUnder       BillVerdict = "under"
)

// BillComparison is the outcome of checking the shop's bill.
type BillComparison struct {
	OurTotal float64
	ShopBill float64
	Diff     float64 // shop minus ours
	Verdict  BillVerdict
}

// CompareShopBill checks the printing shop's claimed bill against the summed
// billed amounts. Differences under one currency unit count as a match.
func CompareShopBill(jobs []models.Job, shopBill float64) BillComparison {
	var ours float64
	for _, j := range jobs {
		ours += j.BilledAmount
	}
	cmp := BillComparison{OurTotal: ours, ShopBill: shopBill, Diff: shopBill - ours}
	switch {
	case math.Abs(cmp.Diff) < 1:
		cmp.Verdict = BillMatch
	case cmp.Diff > 0:
		cmp.Verdict = BillOvercharged
	default:
		cmp.Verdict = BillUnder
	}
	return cmp
}

func sortRollups(byKey map[string]*MonthRollup) []MonthRollup {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == UnknownBucket {
			return false
		}
		if keys[j] == UnknownBucket {
			return true
		}
		return keys[i] < keys[j]
	})
	out := make([]MonthRollup, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

// ReportService loads collections from the store and computes reports.
type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// Summary loads jobs, the payment pool and settings and computes the
// aggregate figures.
func (s *ReportService) Summary() (Summary, error) {
	jobs, err := s.store.ListJobs(store.JobFilter{})
	if err != nil {
		return Summary{}, err
	}
	totalPaid, err := s.store.TotalPaid()
	if err != nil {
		return Summary{}, err
	}
	cfg, err := s.store.LoadSettings()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(jobs, totalPaid, cfg.CarryForward), nil
}

// ProfitReport bundles everything the profit report panel shows.
type ProfitReport struct {
	Summary   Summary
	Aging     AgingReport
	Months    []MonthRollup
	BestMonth MonthRollup
	HasBest   bool
}

func (s *ReportService) ProfitReport(today time.Time) (ProfitReport, error) {
	jobs, err := s.store.ListJobs(store.JobFilter{})
	if err != nil {
		return ProfitReport{}, err
	}
	totalPaid, err := s.store.TotalPaid()
	if err != nil {
		return ProfitReport{}, err
	}
	cfg, err := s.store.LoadSettings()
	if err != nil {
		return ProfitReport{}, err
	}
	rep := ProfitReport{
		Summary: Summarize(jobs, totalPaid, cfg.CarryForward),
		Aging:   Aging(jobs, today),
		Months:  MonthlyJobRollups(jobs),
	}
	rep.BestMonth, rep.HasBest = BestMonth(rep.Months)
	return rep, nil
}

// History returns the grouped payment history, newest first.
func (s *ReportService) History() ([]MonthGroup, error) {
	payments, err := s.store.ListPayments(store.PaymentsNewestFirst)
	if err != nil {
		return nil, err
	}
	return PaymentHistory(payments), nil
}

// Remind counts jobs pending longer than the configured reminder threshold.
func (s *ReportService) Remind(today time.Time) (count, reminderDays int, err error) {
	jobs, err := s.store.ListJobs(store.JobFilter{Status: models.StatusPending})
	if err != nil {
		return 0, 0, err
	}
	cfg, err := s.store.LoadSettings()
	if err != nil {
		return 0, 0, err
	}
	return ReminderCount(jobs, cfg.ReminderDays, today), cfg.ReminderDays, nil
}
