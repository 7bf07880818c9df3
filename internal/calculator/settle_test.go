package calculator

import (
	"math"
	"testing"

	"github.com/wutcharinth/splitbill/internal/models"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name           string
		grandTotal     float64
		payments       []models.Payment
		wantRemaining  float64
		wantSingle     bool
		wantSettled    bool
	}{
		{
			name:          "no payments yet",
			grandTotal:    80,
			payments:      nil,
			wantRemaining: 80,
		},
		{
			name:       "partial payments from two people",
			grandTotal: 80,
			payments: []models.Payment{
				{PersonID: "p1", Amount: 30},
				{PersonID: "p2", Amount: 20},
			},
			wantRemaining: 30,
		},
		{
			name:       "single payer covers the whole bill",
			grandTotal: 80,
			payments: []models.Payment{
				{PersonID: "p1", Amount: 80},
				{PersonID: "p2", Amount: 0},
			},
			wantRemaining: 0,
			wantSingle:    true,
			wantSettled:   true,
		},
		{
			name:       "single payment short of the total is not single payer",
			grandTotal: 80,
			payments: []models.Payment{
				{PersonID: "p1", Amount: 50},
			},
			wantRemaining: 30,
		},
		{
			name:       "two payers fully settled is not single payer",
			grandTotal: 80,
			payments: []models.Payment{
				{PersonID: "p1", Amount: 40},
				{PersonID: "p2", Amount: 40},
			},
			wantRemaining: 0,
			wantSettled:   true,
		},
		{
			name:       "overpayment goes negative",
			grandTotal: 80,
			payments: []models.Payment{
				{PersonID: "p1", Amount: 100},
			},
			wantRemaining: -20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settle(tt.grandTotal, tt.payments)
			if math.Abs(s.Remaining-tt.wantRemaining) > 1e-9 {
				t.Errorf("remaining = %v, want %v", s.Remaining, tt.wantRemaining)
			}
			if s.IsSinglePayer != tt.wantSingle {
				t.Errorf("isSinglePayer = %v, want %v", s.IsSinglePayer, tt.wantSingle)
			}
			if s.Settled != tt.wantSettled {
				t.Errorf("settled = %v, want %v", s.Settled, tt.wantSettled)
			}
		})
	}
}

func TestSettleBreakdowns(t *testing.T) {
	breakdowns := []Breakdown{
		{PersonID: "p1", Total: 60},
		{PersonID: "p2", Total: 40},
	}

	tests := []struct {
		name       string
		payments   []models.Payment
		wantDeltas []float64
		wantPaid   []float64
	}{
		{
			name:       "nobody has paid",
			payments:   nil,
			wantDeltas: []float64{60, 40},
			wantPaid:   []float64{0, 0},
		},
		{
			name: "one partial payer",
			payments: []models.Payment{
				{PersonID: "p1", Amount: 25},
			},
			wantDeltas: []float64{35, 40},
			wantPaid:   []float64{25, 0},
		},
		{
			name: "split payments accumulate per person",
			payments: []models.Payment{
				{PersonID: "p1", Amount: 30},
				{PersonID: "p1", Amount: 30},
				{PersonID: "p2", Amount: 10},
			},
			wantDeltas: []float64{0, 30},
			wantPaid:   []float64{60, 10},
		},
		{
			name: "overpayment goes negative",
			payments: []models.Payment{
				{PersonID: "p2", Amount: 100},
			},
			wantDeltas: []float64{60, -60},
			wantPaid:   []float64{0, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SettleBreakdowns(100, breakdowns, tt.payments)
			if len(s.Entries) != len(breakdowns) {
				t.Fatalf("entries = %d, want %d", len(s.Entries), len(breakdowns))
			}
			for i, e := range s.Entries {
				if e.PersonID != breakdowns[i].PersonID {
					t.Errorf("entry %d person = %q, want %q", i, e.PersonID, breakdowns[i].PersonID)
				}
				if math.Abs(e.Paid-tt.wantPaid[i]) > 1e-9 {
					t.Errorf("entry %d paid = %v, want %v", i, e.Paid, tt.wantPaid[i])
				}
				if math.Abs(e.Delta-tt.wantDeltas[i]) > 1e-9 {
					t.Errorf("entry %d delta = %v, want %v", i, e.Delta, tt.wantDeltas[i])
				}
				if e.Settled != (math.Abs(tt.wantDeltas[i]) < Epsilon) {
					t.Errorf("entry %d settled = %v", i, e.Settled)
				}
			}
		})
	}
}

func TestSettleBreakdowns_PaymentFromUnknownIDCountsTowardTotal(t *testing.T) {
	breakdowns := []Breakdown{{PersonID: "p1", Total: 50}}
	payments := []models.Payment{{PersonID: "someone-removed", Amount: 50}}

	s := SettleBreakdowns(50, breakdowns, payments)
	if math.Abs(s.Remaining) > 1e-9 {
		t.Errorf("remaining = %v, want 0", s.Remaining)
	}
	if s.Entries[0].Paid != 0 || math.Abs(s.Entries[0].Delta-50) > 1e-9 {
		t.Errorf("p1 entry = %+v, want unpaid with delta 50", s.Entries[0])
	}
}
