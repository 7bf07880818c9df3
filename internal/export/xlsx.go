// Package export renders a bill's computed allocation to a spreadsheet so it
// can be shared outside the app.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wutcharinth/splitbill/internal/calculator"
	"github.com/wutcharinth/splitbill/internal/display"
	"github.com/wutcharinth/splitbill/internal/models"
)

const (
	breakdownSheet = "Breakdown"
	summarySheet   = "Summary"
)

// Workbook builds an .xlsx workbook with one sheet of per-person breakdowns
// and one reconciliation/settlement summary. Amounts are converted to the
// bill's display currency when a display rate is set.
func Workbook(bill *models.Bill, summary *calculator.Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	currency := bill.Currency
	var rate *models.ExchangeRate
	if bill.DisplayCurrency != "" && bill.DisplayRate != nil {
		currency = bill.DisplayCurrency
		rate = bill.DisplayRate
	}
	money := func(amount float64) string {
		return display.Format(display.Convert(amount, rate), currency)
	}

	if err := f.SetSheetName("Sheet1", breakdownSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []interface{}{"Person", "Items", "Discount", "Fees", "Tip", "Adjustment", "Total"}
	if err := f.SetSheetRow(breakdownSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, b := range summary.Breakdowns {
		person := bill.PersonByID(b.PersonID)
		name := b.PersonID
		if person != nil {
			name = person.Name
		}

		var feeTotal float64
		for _, amount := range b.FeeShares {
			feeTotal += amount
		}

		row := []interface{}{
			name,
			money(b.ItemSubtotal),
			money(-b.DiscountShare),
			money(feeTotal),
			money(b.TipShare),
			money(b.AdjustmentShare),
			money(b.Total),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(breakdownSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write breakdown row: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rec := summary.Reconciliation
	set := summary.Settlement
	rows := [][]interface{}{
		{"Bill", bill.Title},
		{"Currency", currency},
		{"Calculated total", money(rec.CalculatedTotal)},
		{"Receipt total", money(bill.ReceiptTotal)},
		{"Adjustment", money(rec.Adjustment)},
		{"Match", fmt.Sprintf("%.1f%%", rec.MatchPercentage)},
		{"Status", string(rec.Status)},
		{"Tip", money(bill.Tip.Amount)},
		{"Grand total", money(set.GrandTotal)},
		{"Paid", money(set.Paid)},
		{"Remaining", money(set.Remaining)},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return f, nil
}
