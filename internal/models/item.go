package models

// Item represents a single line item on a bill.
//
// Shares maps person ID to the number of units of this item assigned to that
// person, supporting uneven splits (e.g., 2 units to one person, 1 to another).
// An item whose shares are all zero (or whose map is empty) is unassigned: it
// contributes to nobody's total and is excluded from the assignable subtotal.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the item description as read from the receipt.
	Name string `json:"name"`

	// TranslatedName is an optional translation of Name for display.
	TranslatedName string `json:"translated_name,omitempty"`

	// Price is the item price in the bill's base currency. Non-negative by
	// convention; the engine does not validate and treats values as given.
	Price float64 `json:"price"`

	// Shares maps person ID to assigned share count.
	Shares map[string]int `json:"shares,omitempty"`
}

// TotalShares returns the sum of all share counts assigned to this item.
func (i *Item) TotalShares() int {
	total := 0
	for _, n := range i.Shares {
		total += n
	}
	return total
}

// Assigned reports whether at least one share of this item is assigned.
func (i *Item) Assigned() bool {
	return i.TotalShares() > 0
}
