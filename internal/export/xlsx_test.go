package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutcharinth/splitbill/internal/calculator"
	"github.com/wutcharinth/splitbill/internal/models"
)

func TestWorkbook(t *testing.T) {
	bill := &models.Bill{
		Title:    "Dinner",
		Currency: "THB",
		People: []models.Person{
			{ID: "p1", Name: "Alice"},
			{ID: "p2", Name: "Bob"},
		},
		Items: []models.Item{
			{ID: "i1", Name: "Set", Price: 100, Shares: map[string]int{"p1": 1, "p2": 1}},
		},
		ReceiptTotal: 100,
	}
	summary, err := calculator.Summarize(bill)
	require.NoError(t, err)

	f, err := Workbook(bill, summary)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Breakdown", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	total, err := f.GetCellValue("Breakdown", "G2")
	require.NoError(t, err)
	assert.Equal(t, "฿50.00", total)

	status, err := f.GetCellValue("Summary", "B7")
	require.NoError(t, err)
	assert.Equal(t, "perfect_match", status)
}

func TestWorkbookDisplayConversion(t *testing.T) {
	bill := &models.Bill{
		Title:    "Dinner",
		Currency: "THB",
		People:   []models.Person{{ID: "p1", Name: "Alice"}},
		Items: []models.Item{
			{ID: "i1", Name: "Set", Price: 100, Shares: map[string]int{"p1": 1}},
		},
		DisplayCurrency: "USD",
		DisplayRate:     &models.ExchangeRate{Rate: 0.03, AsOfDate: "2025-03-01"},
	}
	summary, err := calculator.Summarize(bill)
	require.NoError(t, err)

	f, err := Workbook(bill, summary)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Breakdown", "G2")
	require.NoError(t, err)
	assert.Equal(t, "$3.00", total)
}
