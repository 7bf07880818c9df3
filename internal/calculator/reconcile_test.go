package calculator

import (
	"math"
	"testing"

	"github.com/wutcharinth/splitbill/internal/models"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name           string
		in             ReconcileInput
		wantStatus     Status
		wantCalculated float64
		wantAdjustment float64
	}{
		{
			name: "no receipt total is not applicable",
			in: ReconcileInput{
				AssignableSubtotal: 90,
				Fees:               []models.Fee{{ID: "vat", Amount: 9, Enabled: true}},
				AssignedItems:      1,
			},
			wantStatus:     StatusNotApplicable,
			wantCalculated: 99,
			wantAdjustment: 0,
		},
		{
			name: "split evenly wins over everything",
			in: ReconcileInput{
				AssignableSubtotal: 100,
				ReceiptTotal:       100,
				SplitEvenly:        true,
				AssignedItems:      2,
			},
			wantStatus:     StatusEvenlySplit,
			wantCalculated: 100,
			wantAdjustment: 0,
		},
		{
			name: "nothing assigned yet",
			in: ReconcileInput{
				ReceiptTotal:    100,
				UnassignedItems: 3,
			},
			wantStatus:     StatusNoAssignment,
			wantCalculated: 0,
			wantAdjustment: 100,
		},
		{
			name: "partial assignment reported before match quality",
			in: ReconcileInput{
				AssignableSubtotal: 80,
				ReceiptTotal:       80,
				AssignedItems:      2,
				UnassignedItems:    1,
			},
			wantStatus:     StatusPartialAssignment,
			wantCalculated: 80,
			wantAdjustment: 0,
		},
		{
			name: "perfect match within a cent",
			in: ReconcileInput{
				AssignableSubtotal: 100,
				ReceiptTotal:       100.005,
				AssignedItems:      1,
			},
			wantStatus:     StatusPerfectMatch,
			wantCalculated: 100,
			wantAdjustment: 0.005,
		},
		{
			name: "near match is rounding noise",
			in: ReconcileInput{
				AssignableSubtotal: 100,
				ReceiptTotal:       100.05,
				AssignedItems:      1,
			},
			wantStatus:     StatusNearMatch,
			wantCalculated: 100,
			wantAdjustment: 0.05,
		},
		{
			name: "large discrepancy below 90 percent",
			in: ReconcileInput{
				AssignableSubtotal: 100,
				ReceiptTotal:       200,
				AssignedItems:      1,
			},
			wantStatus:     StatusLargeDiscrepancy,
			wantCalculated: 100,
			wantAdjustment: 100,
		},
		{
			name: "shortfall",
			in: ReconcileInput{
				AssignableSubtotal: 100,
				ReceiptTotal:       110,
				AssignedItems:      1,
			},
			wantStatus:     StatusShortfall,
			wantCalculated: 100,
			wantAdjustment: 10,
		},
		{
			name: "surplus",
			in: ReconcileInput{
				AssignableSubtotal: 120,
				ReceiptTotal:       110,
				AssignedItems:      1,
			},
			wantStatus:     StatusSurplus,
			wantCalculated: 120,
			wantAdjustment: -10,
		},
		{
			name: "disabled fees excluded from calculated total",
			in: ReconcileInput{
				AssignableSubtotal: 100,
				Fees: []models.Fee{
					{ID: "svc", Amount: 10, Enabled: true},
					{ID: "vat", Amount: 7, Enabled: false},
				},
				ReceiptTotal:  110,
				AssignedItems: 1,
			},
			wantStatus:     StatusPerfectMatch,
			wantCalculated: 110,
			wantAdjustment: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Reconcile(tt.in)
			if rec.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", rec.Status, tt.wantStatus)
			}
			if math.Abs(rec.CalculatedTotal-tt.wantCalculated) > 1e-9 {
				t.Errorf("calculatedTotal = %v, want %v", rec.CalculatedTotal, tt.wantCalculated)
			}
			if math.Abs(rec.Adjustment-tt.wantAdjustment) > 1e-9 {
				t.Errorf("adjustment = %v, want %v", rec.Adjustment, tt.wantAdjustment)
			}
		})
	}
}

func TestReconcileSurplusMatchesFee(t *testing.T) {
	// Calculated 120 vs receipt 110: the 10 surplus is within 10% of the
	// 9.5 fee, hinting the extraction double-counted the fee as an item.
	rec := Reconcile(ReconcileInput{
		AssignableSubtotal: 110.5,
		Fees:               []models.Fee{{ID: "svc", Amount: 9.5, Enabled: true}},
		ReceiptTotal:       110,
		AssignedItems:      1,
	})
	if rec.Status != StatusSurplus {
		t.Fatalf("status = %s, want %s", rec.Status, StatusSurplus)
	}
	if rec.SurplusMatchesFeeID != "svc" {
		t.Errorf("surplusMatchesFeeID = %q, want %q", rec.SurplusMatchesFeeID, "svc")
	}

	// A surplus far from any fee amount carries no hint.
	rec = Reconcile(ReconcileInput{
		AssignableSubtotal: 130,
		Fees:               []models.Fee{{ID: "svc", Amount: 5, Enabled: true}},
		ReceiptTotal:       110,
		AssignedItems:      1,
	})
	if rec.SurplusMatchesFeeID != "" {
		t.Errorf("surplusMatchesFeeID = %q, want empty", rec.SurplusMatchesFeeID)
	}
}

func TestReconcileMatchPercentage(t *testing.T) {
	rec := Reconcile(ReconcileInput{
		AssignableSubtotal: 100,
		ReceiptTotal:       110,
		AssignedItems:      1,
	})
	want := (1 - 10.0/110) * 100
	if math.Abs(rec.MatchPercentage-want) > 1e-9 {
		t.Errorf("matchPercentage = %v, want %v", rec.MatchPercentage, want)
	}

	rec = Reconcile(ReconcileInput{AssignableSubtotal: 50})
	if rec.MatchPercentage != 100 {
		t.Errorf("matchPercentage without receipt = %v, want 100", rec.MatchPercentage)
	}
}
