package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/modernprinters/banner-tracker/internal/export"
	"github.com/modernprinters/banner-tracker/internal/models"
	"github.com/modernprinters/banner-tracker/internal/services"
	"github.com/modernprinters/banner-tracker/internal/store"
)

func todayInput() string { return time.Now().Format("02/01/2006") }

func (a *app) addJob(args []string) error {
	fs := flag.NewFlagSet("add-job", flag.ExitOnError)
	desc := fs.String("desc", "", "job description (required)")
	width := fs.Float64("w", 0, "width in feet")
	height := fs.Float64("h", 0, "height in feet")
	pieces := fs.Int("pieces", 1, "number of pieces")
	date := fs.String("date", todayInput(), "date sent (dd/mm/yyyy)")
	notes := fs.String("notes", "", "optional notes")
	client := fs.String("client", "", "client name")
	clientRate := fs.Float64("client-rate", 0, "client rate per sq ft")
	clientAmount := fs.Float64("client-amount", 0, "client total amount")
	customAmount := fs.Float64("amount", 0, "custom billed amount (overrides area pricing)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := a.store.LoadSettings()
	if err != nil {
		return err
	}
	var custom *float64
	if flagSet(fs, "amount") {
		custom = customAmount
	}
	job, err := services.NewJob(*desc, *width, *height, *pieces, cfg.PricePerSqft, *date, custom)
	if err != nil {
		return err
	}
	job.Notes = *notes
	job.ClientName = *client

	// fill the missing half of the client rate/amount pair; fall back to the
	// client's last used rate when neither was supplied
	var ratePtr, amountPtr *float64
	if flagSet(fs, "client-rate") {
		ratePtr = clientRate
	}
	if flagSet(fs, "client-amount") {
		amountPtr = clientAmount
	}
	if ratePtr == nil && amountPtr == nil && *client != "" {
		if last, ok, lerr := a.store.LastClientRate(*client); lerr == nil && ok {
			ratePtr = &last
		}
	}
	d := &services.FigureDeriver{}
	figures := d.CrossDerive(job.BilledArea, ratePtr, amountPtr)
	job.ClientRate = figures.Rate
	job.ClientAmount = figures.Amount

	id, err := a.store.InsertJob(&job)
	if err != nil {
		return err
	}
	if _, err := a.alloc.Reallocate(); err != nil {
		return err
	}
	fmt.Printf("Added job #%d: %s (%s, Rs %.2f)\n", id, job.Description, job.SizeLabel(), job.BilledAmount)
	return nil
}

func (a *app) addPayment(args []string) error {
	fs := flag.NewFlagSet("add-payment", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "payment amount (negative = debt entry)")
	date := fs.String("date", todayInput(), "date paid (dd/mm/yyyy)")
	notes := fs.String("notes", "", "optional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !flagSet(fs, "amount") {
		return fmt.Errorf("-amount is required")
	}
	iso, err := models.ParseDate(*date)
	if err != nil {
		return err
	}
	pay := models.Payment{Amount: *amount, DatePaid: iso, Notes: *notes}
	id, err := a.store.InsertPayment(&pay)
	if err != nil {
		return err
	}
	if _, err := a.alloc.Reallocate(); err != nil {
		return err
	}
	fmt.Printf("Payment #%d of Rs %.2f recorded (ref %s)\n", id, pay.Amount, pay.Reference)
	return nil
}

func (a *app) deleteJob(args []string) error {
	fs := flag.NewFlagSet("delete-job", flag.ExitOnError)
	id := fs.Uint("id", 0, "job id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.store.DeleteJob(uint(*id)); err != nil {
		return err
	}
	if _, err := a.alloc.Reallocate(); err != nil {
		return err
	}
	fmt.Printf("Deleted job #%d\n", *id)
	return nil
}

func (a *app) deletePayment(args []string) error {
	fs := flag.NewFlagSet("delete-payment", flag.ExitOnError)
	id := fs.Uint("id", 0, "payment id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.store.DeletePayment(uint(*id)); err != nil {
		return err
	}
	// re-derive: downstream jobs revert from paid/partial as the pool shrinks
	if _, err := a.alloc.Reallocate(); err != nil {
		return err
	}
	fmt.Printf("Deleted payment #%d\n", *id)
	return nil
}

func (a *app) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (pending/partial/paid)")
	query := fs.String("q", "", "free text over description/client/notes")
	from := fs.String("from", "", "date sent from (dd/mm/yyyy)")
	to := fs.String("to", "", "date sent to (dd/mm/yyyy)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := store.JobFilter{Status: *status, Query: *query}
	var err error
	if *from != "" {
		if filter.DateFrom, err = models.ParseDate(*from); err != nil {
			return err
		}
	}
	if *to != "" {
		if filter.DateTo, err = models.ParseDate(*to); err != nil {
			return err
		}
	}
	jobs, err := a.store.ListJobs(filter)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs recorded.")
		return nil
	}
	for _, j := range jobs {
		fmt.Printf("#%-4d %-10s %-8s Rs %10.2f  %-30s %s\n",
			j.ID, j.DateSent, j.Status, j.BilledAmount, j.Description, j.ClientName)
	}
	return nil
}

func (a *app) mark(args []string) error {
	fs := flag.NewFlagSet("mark", flag.ExitOnError)
	id := fs.Uint("id", 0, "job id")
	status := fs.String("status", "", "pending, partial or paid")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.store.SetJobStatus(uint(*id), *status); err != nil {
		return err
	}
	fmt.Printf("Job #%d marked %s (until the next allocation pass)\n", *id, *status)
	return nil
}

func (a *app) printReport() error {
	rep, err := a.report.ProfitReport(time.Now())
	if err != nil {
		return err
	}
	s := rep.Summary
	fmt.Printf("Print Cost (Total):   Rs %.2f\n", s.TotalBilled)
	fmt.Printf("Client Revenue:       Rs %.2f\n", s.TotalClientRevenue)
	fmt.Printf("Net Profit:           Rs %.2f\n", s.NetProfit)
	fmt.Printf("Paid to Printer:      Rs %.2f (%d jobs paid)\n", s.TotalPaid, s.PaidJobCount)
	if s.CarryForward < 0 {
		fmt.Printf("Carry Forward:        Debt Rs %.2f\n", -s.CarryForward)
	} else {
		fmt.Printf("Carry Forward:        Credit Rs %.2f\n", s.CarryForward)
	}
	fmt.Printf("Balance Due:          Rs %.2f\n", s.BalanceDue)
	if rep.HasBest {
		fmt.Printf("Best Month:           %s (Rs %.2f)\n", rep.BestMonth.Label, rep.BestMonth.ClientRevenue)
	}
	fmt.Printf("Overdue 10-29 days:   %d jobs\n", len(rep.Aging.OverdueMedium))
	fmt.Printf("Overdue 30+ days:     %d jobs\n", len(rep.Aging.OverdueSevere))
	return a.remind()
}

func (a *app) history() error {
	groups, err := a.report.History()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No payments recorded yet.")
		return nil
	}
	for _, m := range groups {
		fmt.Printf("%s  Rs %.2f\n", m.Label, m.Total)
		for _, w := range m.Weeks {
			fmt.Printf("  %s  Rs %.2f\n", w.Week, w.Total)
			for _, p := range w.Payments {
				fmt.Printf("    #%-4d %s  Rs %10.2f  %s\n", p.ID, p.DatePaid, p.Amount, p.Notes)
			}
		}
	}
	return nil
}

func (a *app) remind() error {
	count, days, err := a.report.Remind(time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("WARNING: %d job(s) unpaid for more than %d days. Please settle outstanding payments.\n", count, days)
	}
	return nil
}

func (a *app) compare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	bill := fs.Float64("bill", 0, "the shop's bill amount")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *bill <= 0 {
		return fmt.Errorf("-bill must be positive")
	}
	jobs, err := a.store.ListJobs(store.JobFilter{})
	if err != nil {
		return err
	}
	cmp := services.CompareShopBill(jobs, *bill)
	switch cmp.Verdict {
	case services.BillMatch:
		fmt.Printf("Bills match. Yours: Rs %.2f | Shop: Rs %.2f\n", cmp.OurTotal, cmp.ShopBill)
	case services.BillOvercharged:
		fmt.Printf("OVERCHARGED by Rs %.2f! Yours: Rs %.2f | Shop: Rs %.2f\n", cmp.Diff, cmp.OurTotal, cmp.ShopBill)
	default:
		fmt.Printf("Shop less by Rs %.2f. Yours: Rs %.2f | Shop: Rs %.2f\n", -cmp.Diff, cmp.OurTotal, cmp.ShopBill)
	}
	return nil
}

func (a *app) setRate(args []string) error {
	fs := flag.NewFlagSet("set-rate", flag.ExitOnError)
	rate := fs.Float64("rate", 0, "new price per sq ft")
	applyExisting := fs.Bool("apply-existing", false, "reprice existing non-custom jobs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := services.ApplyGlobalRateChange(a.store, *rate, *applyExisting); err != nil {
		return err
	}
	if *applyExisting {
		// repricing shifts billed amounts, so the allocation must re-run
		if _, err := a.alloc.Reallocate(); err != nil {
			return err
		}
		fmt.Printf("Rate set to Rs %.2f/sq ft and applied to existing jobs\n", *rate)
		return nil
	}
	fmt.Printf("Rate set to Rs %.2f/sq ft for new jobs\n", *rate)
	return nil
}

func (a *app) settings(args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	reminderDays := fs.Int("reminder-days", 0, "payment reminder threshold in days")
	carryForward := fs.Float64("carry-forward", 0, "carry-forward balance (negative = debt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := a.store.LoadSettings()
	if err != nil {
		return err
	}
	changed := false
	if flagSet(fs, "reminder-days") {
		cfg.ReminderDays = *reminderDays
		changed = true
	}
	if flagSet(fs, "carry-forward") {
		cfg.CarryForward = *carryForward
		changed = true
	}
	if changed {
		if err := a.store.SaveSettings(cfg); err != nil {
			return err
		}
	}
	fmt.Printf("Price per sq ft: Rs %.2f\nReminder days:   %d\nCarry forward:   Rs %.2f\n",
		cfg.PricePerSqft, cfg.ReminderDays, cfg.CarryForward)
	return nil
}

func (a *app) exportCSV(args []string) error {
	fs := flag.NewFlagSet("export-csv", flag.ExitOnError)
	dir := fs.String("out", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	jobs, err := a.store.ListJobs(store.JobFilter{})
	if err != nil {
		return err
	}
	payments, err := a.store.ListPayments(store.PaymentsNewestFirst)
	if err != nil {
		return err
	}
	jobsPath := filepath.Join(*dir, "jobs.csv")
	if err := writeFile(jobsPath, func(f *os.File) error { return export.JobsCSV(f, jobs) }); err != nil {
		return err
	}
	paymentsPath := filepath.Join(*dir, "payments.csv")
	if err := writeFile(paymentsPath, func(f *os.File) error { return export.PaymentsCSV(f, payments) }); err != nil {
		return err
	}
	fmt.Printf("Wrote %s and %s\n", jobsPath, paymentsPath)
	return nil
}

func (a *app) exportPDF(args []string) error {
	fs := flag.NewFlagSet("export-pdf", flag.ExitOnError)
	out := fs.String("out", "profit_report.pdf", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rep, err := a.report.ProfitReport(time.Now())
	if err != nil {
		return err
	}
	if err := writeFile(*out, func(f *os.File) error { return export.ProfitReportPDF(f, rep) }); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *out)
	return nil
}

func (a *app) clear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	jobs := fs.Bool("jobs", false, "clear all job records")
	payments := fs.Bool("payments", false, "clear all payments")
	all := fs.Bool("all", false, "clear jobs and payments")
	force := fs.Bool("force", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*jobs && !*payments && !*all {
		return fmt.Errorf("specify -jobs, -payments or -all")
	}
	if !*force {
		nJobs, _ := a.store.CountJobs()
		nPays, _ := a.store.CountPayments()
		fmt.Printf("This permanently deletes %d job(s) and/or %d payment(s). Re-run with -force to confirm.\n", nJobs, nPays)
		return nil
	}
	if *all {
		if err := a.store.ResetAll(); err != nil {
			return err
		}
		fmt.Println("All records cleared.")
		return nil
	}
	if *jobs {
		if err := a.store.ClearJobs(); err != nil {
			return err
		}
		fmt.Println("Job records cleared.")
	}
	if *payments {
		if err := a.store.ClearPayments(); err != nil {
			return err
		}
		if _, err := a.alloc.Reallocate(); err != nil {
			return err
		}
		fmt.Println("Payments cleared; job statuses re-derived.")
	}
	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
