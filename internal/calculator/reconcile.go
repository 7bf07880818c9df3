package calculator

import (
	"math"

	"github.com/wutcharinth/splitbill/internal/models"
)

// Status classifies the reconciliation outcome for user feedback.
type Status string

const (
	// StatusNotApplicable means no receipt total was supplied, so there is
	// nothing to reconcile against.
	StatusNotApplicable Status = "not_applicable"
	// StatusEvenlySplit means the bill is in split-evenly mode, where
	// reconciliation against per-item shares is not meaningful.
	StatusEvenlySplit Status = "evenly_split"
	// StatusNoAssignment means no item shares have been assigned yet.
	StatusNoAssignment Status = "no_assignment"
	// StatusPartialAssignment means some items are still unassigned.
	StatusPartialAssignment Status = "partial_assignment"
	// StatusPerfectMatch means the calculated total matches the receipt
	// within Epsilon.
	StatusPerfectMatch Status = "perfect_match"
	// StatusNearMatch means the discrepancy is rounding noise (< 0.10);
	// the adjustment is still distributed but framed as cosmetic.
	StatusNearMatch Status = "near_match"
	// StatusLargeDiscrepancy means the match percentage fell below 90,
	// which usually indicates a data-entry or extraction error.
	StatusLargeDiscrepancy Status = "large_discrepancy"
	// StatusShortfall means the receipt total exceeds the calculated total.
	StatusShortfall Status = "shortfall"
	// StatusSurplus means the calculated total exceeds the receipt total.
	StatusSurplus Status = "surplus"
)

// nearMatchLimit is the absolute discrepancy below which a mismatch is
// treated as rounding noise.
const nearMatchLimit = 0.10

// largeDiscrepancyPct is the match percentage below which a mismatch is
// flagged as a likely data-entry or extraction error.
const largeDiscrepancyPct = 90.0

// surplusFeeTolerance is the relative tolerance for the surplus-matches-fee
// hint: a surplus within 10% of a single enabled fee's amount suggests the
// extraction double-counted that fee as a line item.
const surplusFeeTolerance = 0.10

// ReconcileInput carries the aggregates the analyzer needs. All amounts are
// in the bill's base currency.
type ReconcileInput struct {
	// AssignableSubtotal is the sum of prices of items with at least one
	// share assigned (all items in split-evenly mode).
	AssignableSubtotal float64

	// DiscountTotal is the absolute value of all applied discounts.
	DiscountTotal float64

	// Fees is the full fee list; disabled fees are ignored.
	Fees []models.Fee

	// ReceiptTotal is the externally supplied receipt total, 0 if absent.
	ReceiptTotal float64

	// SplitEvenly mirrors the bill's split-evenly flag.
	SplitEvenly bool

	// AssignedItems and UnassignedItems count items with and without
	// assigned shares.
	AssignedItems   int
	UnassignedItems int
}

// Reconciliation is the analyzer's report: the calculated total, the signed
// adjustment to redistribute, and a qualitative status.
type Reconciliation struct {
	CalculatedTotal float64 `json:"calculated_total"`

	// Adjustment is receiptTotal - calculatedTotal when a receipt total is
	// present, else 0. Positive = shortfall, negative = surplus.
	Adjustment float64 `json:"adjustment"`

	// MatchPercentage is (1 - |adjustment| / receiptTotal) * 100, or 100
	// when no receipt total is present.
	MatchPercentage float64 `json:"match_percentage"`

	Status Status `json:"status"`

	// UnassignedItems is reported with StatusPartialAssignment so the user
	// knows how many items still need resolving.
	UnassignedItems int `json:"unassigned_items,omitempty"`

	// SurplusMatchesFeeID is set with StatusSurplus when the surplus
	// magnitude is within 10% of a single enabled fee's amount.
	SurplusMatchesFeeID string `json:"surplus_matches_fee_id,omitempty"`
}

// Reconcile compares the calculated total against the receipt total and
// classifies the discrepancy. It is a deterministic classifier with no hidden
// state: the same input always yields the same report.
func Reconcile(in ReconcileInput) Reconciliation {
	var feeTotal float64
	for _, fee := range in.Fees {
		if fee.Enabled {
			feeTotal += fee.Amount
		}
	}

	rec := Reconciliation{
		CalculatedTotal: in.AssignableSubtotal - in.DiscountTotal + feeTotal,
		MatchPercentage: 100,
		UnassignedItems: in.UnassignedItems,
	}
	if in.ReceiptTotal > 0 {
		rec.Adjustment = in.ReceiptTotal - rec.CalculatedTotal
		rec.MatchPercentage = (1 - math.Abs(rec.Adjustment)/in.ReceiptTotal) * 100
	}

	rec.Status = classify(in, rec)
	if rec.Status == StatusSurplus {
		rec.SurplusMatchesFeeID = surplusFeeMatch(math.Abs(rec.Adjustment), in.Fees)
	}
	return rec
}

// classify walks the status ladder in priority order; the first match wins.
func classify(in ReconcileInput, rec Reconciliation) Status {
	itemCount := in.AssignedItems + in.UnassignedItems

	switch {
	case in.SplitEvenly:
		return StatusEvenlySplit
	case itemCount > 0 && in.AssignedItems == 0:
		return StatusNoAssignment
	case in.UnassignedItems > 0:
		return StatusPartialAssignment
	case in.ReceiptTotal <= 0:
		return StatusNotApplicable
	case math.Abs(rec.Adjustment) < Epsilon:
		return StatusPerfectMatch
	case math.Abs(rec.Adjustment) < nearMatchLimit:
		return StatusNearMatch
	case rec.MatchPercentage < largeDiscrepancyPct:
		return StatusLargeDiscrepancy
	case rec.Adjustment > 0:
		return StatusShortfall
	default:
		return StatusSurplus
	}
}

// surplusFeeMatch returns the ID of the first enabled fee whose amount is
// within 10% of the surplus magnitude, or "" if none matches.
func surplusFeeMatch(surplus float64, fees []models.Fee) string {
	for _, fee := range fees {
		if !fee.Enabled || fee.Amount <= 0 {
			continue
		}
		if math.Abs(surplus-fee.Amount)/fee.Amount < surplusFeeTolerance {
			return fee.ID
		}
	}
	return ""
}
