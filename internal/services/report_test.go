package services

import (
	"testing"
	"time"

	"github.com/modernprinters/banner-tracker/internal/models"
	"github.com/modernprinters/banner-tracker/internal/store"
)

func TestSummarize(t *testing.T) {
	jobs := []models.Job{
		{BilledAmount: 1000, ClientAmount: 1500, Status: models.StatusPaid},
		{BilledAmount: 2000, ClientAmount: 2400, Status: models.StatusPending},
	}
	sum := Summarize(jobs, 1000, 0)
	if sum.TotalBilled != 3000 {
		t.Errorf("TotalBilled = %f", sum.TotalBilled)
	}
	if sum.BalanceDue != 2000 {
		t.Errorf("BalanceDue = %f", sum.BalanceDue)
	}
	if sum.TotalClientRevenue != 3900 {
		t.Errorf("TotalClientRevenue = %f", sum.TotalClientRevenue)
	}
	if sum.NetProfit != 900 {
		t.Errorf("NetProfit = %f", sum.NetProfit)
	}
	if sum.PaidJobCount != 1 {
		t.Errorf("PaidJobCount = %d", sum.PaidJobCount)
	}
}

func TestSummarize_CarryForwardAndClamp(t *testing.T) {
	jobs := []models.Job{{BilledAmount: 1000}}
	// credit carry forward reduces the balance
	sum := Summarize(jobs, 500, 300)
	if sum.EffectivePaid != 800 {
		t.Errorf("EffectivePaid = %f, want 800", sum.EffectivePaid)
	}
	if sum.BalanceDue != 200 {
		t.Errorf("BalanceDue = %f, want 200", sum.BalanceDue)
	}
	// overpayment clamps at zero, never negative
	sum = Summarize(jobs, 2000, 0)
	if sum.BalanceDue != 0 {
		t.Errorf("overpaid BalanceDue = %f, want 0", sum.BalanceDue)
	}
	// debt carry forward (negative) raises the balance
	sum = Summarize(jobs, 1000, -400)
	if sum.BalanceDue != 400 {
		t.Errorf("debt BalanceDue = %f, want 400", sum.BalanceDue)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, 0, 0)
	if sum.TotalBilled != 0 || sum.BalanceDue != 0 || sum.PaidJobCount != 0 {
		t.Errorf("empty summary: %+v", sum)
	}
}

func TestAgingAndReminder(t *testing.T) {
	today := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	iso := func(daysAgo int) string {
		return today.AddDate(0, 0, -daysAgo).Format(models.ISODate)
	}
	jobs := []models.Job{
		{ID: 1, DateSent: iso(15), Status: models.StatusPending},
		{ID: 2, DateSent: iso(45), Status: models.StatusPending},
		{ID: 3, DateSent: iso(5), Status: models.StatusPending},
		{ID: 4, DateSent: iso(60), Status: models.StatusPaid}, // paid jobs never age
		{ID: 5, DateSent: "garbage", Status: models.StatusPending},
	}
	rep := Aging(jobs, today)
	if len(rep.OverdueMedium) != 1 || rep.OverdueMedium[0] != 1 {
		t.Errorf("OverdueMedium = %v, want [1]", rep.OverdueMedium)
	}
	if len(rep.OverdueSevere) != 1 || rep.OverdueSevere[0] != 2 {
		t.Errorf("OverdueSevere = %v, want [2]", rep.OverdueSevere)
	}

	if got := ReminderCount(jobs, 10, today); got != 2 {
		t.Errorf("ReminderCount(10) = %d, want 2", got)
	}
	if got := ReminderCount(jobs, 50, today); got != 0 {
		t.Errorf("ReminderCount(50) = %d, want 0", got)
	}
}

func TestMonthlyJobRollups(t *testing.T) {
	jobs := []models.Job{
		{DateSent: "2024-01-10", BilledAmount: 100, ClientAmount: 150},
		{DateSent: "2024-01-20", BilledAmount: 200, ClientAmount: 260},
		{DateSent: "2024-02-01", BilledAmount: 50, ClientAmount: 60},
		{DateSent: "bad-date", BilledAmount: 10, ClientAmount: 12},
	}
	rollups := MonthlyJobRollups(jobs)
	if len(rollups) != 3 {
		t.Fatalf("rollups = %d, want 3", len(rollups))
	}
	if rollups[0].Key != "2024-01" || rollups[0].Billed != 300 || rollups[0].Jobs != 2 {
		t.Errorf("jan rollup: %+v", rollups[0])
	}
	if rollups[1].Key != "2024-02" {
		t.Errorf("feb rollup: %+v", rollups[1])
	}
	if rollups[2].Key != UnknownBucket || rollups[2].Billed != 10 {
		t.Errorf("unknown bucket missing or wrong: %+v", rollups[2])
	}
}

func TestBestMonth(t *testing.T) {
	rollups := []MonthRollup{
		{Key: "2024-01", ClientRevenue: 410},
		{Key: "2024-02", ClientRevenue: 410}, // tie resolves to the earlier month
		{Key: "2024-03", ClientRevenue: 60},
		{Key: UnknownBucket, ClientRevenue: 9999}, // never the best month
	}
	best, ok := BestMonth(rollups)
	if !ok {
		t.Fatal("no best month")
	}
	if best.Key != "2024-01" {
		t.Errorf("best = %s, want 2024-01", best.Key)
	}

	if _, ok := BestMonth(nil); ok {
		t.Error("best month from no rollups")
	}
}

func TestPaymentHistory(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, Amount: 100, DatePaid: "2024-01-02"}, // ISO week 1
		{ID: 2, Amount: 200, DatePaid: "2024-01-10"}, // ISO week 2
		{ID: 3, Amount: 300, DatePaid: "2024-02-05"},
		{ID: 4, Amount: -50, DatePaid: "wat"},
	}
	groups := PaymentHistory(payments)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	// newest month first, Unknown last
	if groups[0].Key != "2024-02" || groups[1].Key != "2024-01" || groups[2].Key != UnknownBucket {
		t.Fatalf("order: %s, %s, %s", groups[0].Key, groups[1].Key, groups[2].Key)
	}
	jan := groups[1]
	if jan.Total != 300 {
		t.Errorf("jan total = %f, want 300", jan.Total)
	}
	if len(jan.Weeks) != 2 {
		t.Fatalf("jan weeks = %d, want 2", len(jan.Weeks))
	}
	if groups[2].Total != -50 {
		t.Errorf("unknown total = %f, want -50", groups[2].Total)
	}
}

func TestCompareShopBill(t *testing.T) {
	jobs := []models.Job{{BilledAmount: 1000}, {BilledAmount: 500}}
	tests := []struct {
		bill    float64
		verdict BillVerdict
	}{
		{1500, BillMatch},
		{1500.5, BillMatch}, // sub-unit differences count as a match
		{1700, BillOvercharged},
		{1400, BillUnder},
	}
	for _, tt := range tests {
		cmp := CompareShopBill(jobs, tt.bill)
		if cmp.Verdict != tt.verdict {
			t.Errorf("bill %f: verdict = %s, want %s", tt.bill, cmp.Verdict, tt.verdict)
		}
	}
}

func TestReportService_EndToEnd(t *testing.T) {
	db := setupTestDB(t, t.Name())
	st := store.New(db)
	rs := NewReportService(st)

	jobs := []models.Job{
		{Description: "a", WidthFt: 2, HeightFt: 3, Pieces: 1, BilledArea: 6,
			RatePerSqft: 50, BilledAmount: 300, ClientAmount: 450,
			DateSent: "2024-01-10", Status: models.StatusPending},
		{Description: "b", WidthFt: 4, HeightFt: 8, Pieces: 1, BilledArea: 32,
			RatePerSqft: 50, BilledAmount: 1600, ClientAmount: 2000,
			DateSent: "2024-02-10", Status: models.StatusPending},
	}
	for i := range jobs {
		if _, err := st.InsertJob(&jobs[i]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if _, err := st.InsertPayment(&models.Payment{Amount: 300, DatePaid: "2024-02-15"}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	sum, err := rs.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalBilled != 1900 || sum.TotalPaid != 300 || sum.BalanceDue != 1600 {
		t.Errorf("summary: %+v", sum)
	}

	rep, err := rs.ProfitReport(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("profit report: %v", err)
	}
	if !rep.HasBest || rep.BestMonth.Key != "2024-02" {
		t.Errorf("best month: %+v", rep.BestMonth)
	}
	if len(rep.Aging.OverdueSevere) != 1 {
		t.Errorf("aging severe = %v", rep.Aging.OverdueSevere)
	}
	if len(rep.Aging.OverdueMedium) != 1 {
		t.Errorf("aging medium = %v", rep.Aging.OverdueMedium)
	}

	count, days, err := rs.Remind(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	if days != 10 {
		t.Errorf("reminder days = %d, want default 10", days)
	}
	if count != 2 {
		t.Errorf("reminder count = %d, want 2", count)
	}
}
