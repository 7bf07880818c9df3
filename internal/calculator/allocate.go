package calculator

import (
	"errors"
	"fmt"

	"github.com/wutcharinth/splitbill/internal/models"
)

// ErrUnknownPerson is returned when item or discount shares reference a person
// ID that is not on the bill. This indicates a caller bug (the state layer
// failed to prune shares when a person was removed), so the allocator fails
// fast instead of silently dropping the share.
var ErrUnknownPerson = errors.New("shares reference unknown person")

// Breakdown is one person's computed share of the bill.
type Breakdown struct {
	PersonID string `json:"person_id"`

	// ItemSubtotal is the sum of this person's assigned item shares.
	ItemSubtotal float64 `json:"item_subtotal"`

	// DiscountShare is this person's portion of all discounts, stored as a
	// positive amount to subtract.
	DiscountShare float64 `json:"discount_share"`

	// FeeShares maps fee ID to this person's portion of that fee.
	FeeShares map[string]float64 `json:"fee_shares,omitempty"`

	TipShare        float64 `json:"tip_share"`
	AdjustmentShare float64 `json:"adjustment_share"`

	// Total = ItemSubtotal - DiscountShare + sum(FeeShares) +
	// AdjustmentShare + TipShare. Not clamped: a discount larger than the
	// subtotal can drive a total negative, surfacing the true arithmetic
	// for the user to correct upstream.
	Total float64 `json:"total"`
}

// Summary bundles the per-person breakdowns with the reconciliation report
// and settlement state derived from one bill snapshot.
type Summary struct {
	Breakdowns     []Breakdown    `json:"breakdowns"`
	Reconciliation Reconciliation `json:"reconciliation"`
	Settlement     Settlement     `json:"settlement"`
}

// Summarize computes the full allocation for a bill snapshot: per-person
// breakdowns, the reconciliation report, and the settlement state. It is a
// pure function; the snapshot is never mutated and identical input yields
// identical output.
//
// Distribution policy: unassigned items are excluded from everyone's total
// and surfaced via the reconciliation report; fees, the adjustment, and a
// proportional tip follow each person's consumption weight (their share of
// the assignable subtotal), with equal-split fallbacks whenever a weight pool
// is zero.
func Summarize(bill *models.Bill) (*Summary, error) {
	if err := validateShares(bill); err != nil {
		return nil, err
	}

	n := len(bill.People)
	subtotals, assigned, unassigned := itemSubtotals(bill)

	var assignableSubtotal float64
	for _, s := range subtotals {
		assignableSubtotal += s
	}

	discShares, discountTotal := discountShares(bill, subtotals)

	rec := Reconcile(ReconcileInput{
		AssignableSubtotal: assignableSubtotal,
		DiscountTotal:      discountTotal,
		Fees:               bill.Fees,
		ReceiptTotal:       bill.ReceiptTotal,
		SplitEvenly:        bill.SplitEvenly,
		AssignedItems:      assigned,
		UnassignedItems:    unassigned,
	})

	grandTotal := rec.CalculatedTotal + rec.Adjustment + bill.Tip.Amount
	summary := &Summary{Reconciliation: rec}
	if n == 0 {
		summary.Settlement = Settle(grandTotal, bill.Payments)
		return summary, nil
	}

	adjustmentShares := DistributeProportionally(rec.Adjustment, subtotals)
	tips := tipShares(bill.Tip, subtotals)

	breakdowns := make([]Breakdown, n)
	for i, person := range bill.People {
		b := Breakdown{
			PersonID:        person.ID,
			ItemSubtotal:    subtotals[i],
			DiscountShare:   discShares[i],
			FeeShares:       make(map[string]float64),
			TipShare:        tips[i],
			AdjustmentShare: adjustmentShares[i],
		}
		b.Total = b.ItemSubtotal - b.DiscountShare + b.TipShare + b.AdjustmentShare
		breakdowns[i] = b
	}

	for _, fee := range bill.Fees {
		if !fee.Enabled {
			continue
		}
		shares := DistributeProportionally(fee.Amount, subtotals)
		for i := range breakdowns {
			breakdowns[i].FeeShares[fee.ID] = shares[i]
			breakdowns[i].Total += shares[i]
		}
	}

	// Conservation: the breakdown totals must sum to
	// calculatedTotal + adjustment + tip. Assign any floating-point
	// residual to the last person in list order.
	var sum float64
	for i := range breakdowns {
		sum += breakdowns[i].Total
	}
	breakdowns[n-1].Total += grandTotal - sum

	summary.Breakdowns = breakdowns
	summary.Settlement = SettleBreakdowns(grandTotal, breakdowns, bill.Payments)
	return summary, nil
}

// validateShares fails fast when any share map or discount sharer set
// references a person that is not on the bill.
func validateShares(bill *models.Bill) error {
	for _, item := range bill.Items {
		for personID := range item.Shares {
			if !bill.HasPerson(personID) {
				return fmt.Errorf("item %q: %w: %s", item.Name, ErrUnknownPerson, personID)
			}
		}
	}
	if bill.Discount != nil {
		for _, personID := range bill.Discount.SharedBy {
			if !bill.HasPerson(personID) {
				return fmt.Errorf("discount: %w: %s", ErrUnknownPerson, personID)
			}
		}
	}
	for _, nd := range bill.NamedDiscounts {
		for personID := range nd.Shares {
			if !bill.HasPerson(personID) {
				return fmt.Errorf("discount %q: %w: %s", nd.Name, ErrUnknownPerson, personID)
			}
		}
	}
	return nil
}

// itemSubtotals computes each person's item subtotal (indexed in people list
// order) plus the counts of assigned and unassigned items.
//
// In split-evenly mode every item counts and the combined price is divided
// per head. Otherwise each item is divided by its assigned share counts, and
// items with zero total shares contribute to nobody.
func itemSubtotals(bill *models.Bill) (subtotals []float64, assigned, unassigned int) {
	n := len(bill.People)
	subtotals = make([]float64, n)

	index := make(map[string]int, n)
	for i, person := range bill.People {
		index[person.ID] = i
	}

	if bill.SplitEvenly {
		var total float64
		for _, item := range bill.Items {
			total += item.Price
		}
		if n > 0 {
			perHead := total / float64(n)
			for i := range subtotals {
				subtotals[i] = perHead
			}
		}
		return subtotals, len(bill.Items), 0
	}

	for _, item := range bill.Items {
		totalShares := item.TotalShares()
		if totalShares == 0 {
			unassigned++
			continue
		}
		assigned++
		for personID, count := range item.Shares {
			if count <= 0 {
				continue
			}
			subtotals[index[personID]] += item.Price * float64(count) / float64(totalShares)
		}
	}
	return subtotals, assigned, unassigned
}

// discountShares computes each person's combined discount share and the total
// discount amount applied to the bill.
//
// The bill-level discount is distributed across its sharer set by each
// sharer's portion of the subset's subtotal pool, falling back to an equal
// split when that pool is zero. Named discounts mirror the item share
// mechanism; with all-zero shares they fall back to consumption weight across
// everyone.
func discountShares(bill *models.Bill, subtotals []float64) ([]float64, float64) {
	n := len(bill.People)
	shares := make([]float64, n)
	var total float64

	var assignableSubtotal float64
	for _, s := range subtotals {
		assignableSubtotal += s
	}

	if d := bill.Discount; d != nil && d.Value > 0 {
		amount := d.Value
		if d.Type == models.DiscountPercentage {
			amount = d.Value * assignableSubtotal / 100
		}
		total += amount

		subset := d.SharedBy
		if len(subset) == 0 {
			subset = make([]string, n)
			for i, person := range bill.People {
				subset[i] = person.ID
			}
		}

		index := make(map[string]int, n)
		for i, person := range bill.People {
			index[person.ID] = i
		}

		weights := make([]float64, len(subset))
		for i, personID := range subset {
			weights[i] = subtotals[index[personID]]
		}
		for i, portion := range DistributeProportionally(amount, weights) {
			shares[index[subset[i]]] += portion
		}
	}

	for _, nd := range bill.NamedDiscounts {
		if nd.Amount <= 0 {
			continue
		}
		total += nd.Amount

		weights := make([]float64, n)
		explicit := false
		for i, person := range bill.People {
			if count := nd.Shares[person.ID]; count > 0 {
				weights[i] = float64(count)
				explicit = true
			}
		}
		if !explicit {
			// No explicit shares: follow consumption weight, which
			// DistributeProportionally downgrades to an equal split
			// when nothing is assigned yet.
			copy(weights, subtotals)
		}
		for i, portion := range DistributeProportionally(nd.Amount, weights) {
			shares[i] += portion
		}
	}

	return shares, total
}

// tipShares distributes the tip either by consumption weight or per head.
func tipShares(tip models.Tip, subtotals []float64) []float64 {
	if tip.SplitMode == models.TipEqual {
		// Zero weights trigger the equal-split fallback.
		return DistributeProportionally(tip.Amount, make([]float64, len(subtotals)))
	}
	return DistributeProportionally(tip.Amount, subtotals)
}
