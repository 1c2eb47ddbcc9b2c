package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/modernprinters/banner-tracker/internal/services"
)

// ProfitReportPDF renders the profit report (summary figures, aging, monthly
// rollups) as a one-page PDF.
func ProfitReportPDF(w io.Writer, rep services.ProfitReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Shop Profit Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	summaryRows := [][2]string{
		{"Print Cost (Total)", money(rep.Summary.TotalBilled)},
		{"Client Revenue", money(rep.Summary.TotalClientRevenue)},
		{"Net Profit", money(rep.Summary.NetProfit)},
		{"Paid to Printer", money(rep.Summary.TotalPaid)},
		{"Carry Forward", money(rep.Summary.CarryForward)},
		{"Balance Due", money(rep.Summary.BalanceDue)},
		{"Paid Jobs", fmt.Sprintf("%d", rep.Summary.PaidJobCount)},
		{"Overdue 10-29 days", fmt.Sprintf("%d jobs", len(rep.Aging.OverdueMedium))},
		{"Overdue 30+ days", fmt.Sprintf("%d jobs", len(rep.Aging.OverdueSevere))},
	}
	if rep.HasBest {
		summaryRows = append(summaryRows, [2]string{"Best Month", rep.BestMonth.Label})
	}
	for _, row := range summaryRows {
		pdf.CellFormat(70, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Monthly Rollup")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(40, 7, "Month", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Jobs", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Billed", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Client Revenue", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, m := range rep.Months {
		pdf.CellFormat(40, 7, m.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", m.Jobs), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(m.Billed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(m.ClientRevenue), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

func money(amount float64) string {
	return fmt.Sprintf("Rs %.0f", amount)
}
