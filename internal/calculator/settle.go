package calculator

import (
	"math"

	"github.com/wutcharinth/splitbill/internal/models"
)

// Settlement tracks how much of the final grand total has actually been paid.
type Settlement struct {
	// GrandTotal is calculatedTotal + adjustment + tip.
	GrandTotal float64 `json:"grand_total"`

	// Paid is the sum of all recorded payments.
	Paid float64 `json:"paid"`

	// Remaining is GrandTotal - Paid. Negative means overpayment.
	Remaining float64 `json:"remaining"`

	// IsSinglePayer reports the degenerate case where exactly one payment
	// covers the whole bill. It only affects how the UI presents the
	// settlement; the underlying model is the same.
	IsSinglePayer bool `json:"is_single_payer"`

	// Settled is true once the remaining balance is within Epsilon of zero.
	Settled bool `json:"settled"`

	// Entries lists each person's settled/owed position, in people order.
	Entries []SettlementEntry `json:"entries,omitempty"`
}

// SettlementEntry is one person's settlement position: what their breakdown
// says they owe against what they have actually paid.
type SettlementEntry struct {
	PersonID string  `json:"person_id"`
	Total    float64 `json:"total"`
	Paid     float64 `json:"paid"`

	// Delta is Total - Paid. Positive means the person still owes money,
	// negative means they are owed change back.
	Delta float64 `json:"delta"`

	// Settled is true once the delta is within Epsilon of zero.
	Settled bool `json:"settled"`
}

// Settle computes the remaining balance from the grand total and the recorded
// payments.
func Settle(grandTotal float64, payments []models.Payment) Settlement {
	var paid float64
	positive := 0
	var largest float64
	for _, p := range payments {
		paid += p.Amount
		if p.Amount > 0 {
			positive++
			if p.Amount > largest {
				largest = p.Amount
			}
		}
	}

	return Settlement{
		GrandTotal:    grandTotal,
		Paid:          paid,
		Remaining:     grandTotal - paid,
		IsSinglePayer: positive == 1 && math.Abs(largest-grandTotal) < Epsilon,
		Settled:       math.Abs(grandTotal-paid) < Epsilon,
	}
}

// SettleBreakdowns computes the settlement including each person's position,
// pairing their breakdown total with their recorded payments. Payments from
// IDs absent from the breakdowns still count toward the aggregate Paid.
func SettleBreakdowns(grandTotal float64, breakdowns []Breakdown, payments []models.Payment) Settlement {
	s := Settle(grandTotal, payments)

	paidBy := make(map[string]float64, len(payments))
	for _, p := range payments {
		paidBy[p.PersonID] += p.Amount
	}

	entries := make([]SettlementEntry, len(breakdowns))
	for i, b := range breakdowns {
		delta := b.Total - paidBy[b.PersonID]
		entries[i] = SettlementEntry{
			PersonID: b.PersonID,
			Total:    b.Total,
			Paid:     paidBy[b.PersonID],
			Delta:    delta,
			Settled:  math.Abs(delta) < Epsilon,
		}
	}
	s.Entries = entries
	return s
}
