package models

// Visibility controls who can load a persisted bill.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityShared  Visibility = "shared"
)

// ExchangeRate is the display-layer conversion rate supplied by an external
// provider. The engine itself always computes in the base currency; conversion
// is a multiplication performed by the display layer.
type ExchangeRate struct {
	Rate     float64 `json:"rate"`
	AsOfDate string  `json:"as_of_date,omitempty"`
}

// Bill is the full state snapshot of one shared bill.
//
// ReceiptTotal is the ground truth from the physical receipt; zero means
// there is no reconciliation target and the calculated total is authoritative.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name for the bill, auto-generated from
	// the restaurant name or participants when not provided.
	Title string `json:"title"`

	// RestaurantName and Date come from receipt extraction when available.
	RestaurantName string `json:"restaurant_name,omitempty"`
	Date           string `json:"date,omitempty"`

	// People is the ordered list of participants. At least one person must
	// always exist; the reducer rejects removing the last one.
	People []Person `json:"people"`

	Items          []Item          `json:"items"`
	Fees           []Fee           `json:"fees,omitempty"`
	Discount       *Discount       `json:"discount,omitempty"`
	NamedDiscounts []NamedDiscount `json:"named_discounts,omitempty"`
	Tip            Tip             `json:"tip"`
	Payments       []Payment       `json:"payments,omitempty"`

	// SplitEvenly puts the bill in "split evenly" mode: item totals are
	// divided per head and per-item share assignment is ignored.
	SplitEvenly bool `json:"split_evenly,omitempty"`

	// ReceiptTotal is the externally supplied receipt total, 0 if absent.
	ReceiptTotal float64 `json:"receipt_total,omitempty"`

	// Currency is the base currency code all amounts are stored in.
	Currency string `json:"currency,omitempty"`

	// DisplayCurrency and DisplayRate drive display-layer conversion only.
	DisplayCurrency string        `json:"display_currency,omitempty"`
	DisplayRate     *ExchangeRate `json:"display_rate,omitempty"`

	OwnerID    string     `json:"owner_id,omitempty"`
	Visibility Visibility `json:"visibility,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps maintained by storage.
	CreatedAt int64 `json:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// PersonByID returns the person with the given ID, or nil if absent.
func (b *Bill) PersonByID(id string) *Person {
	for i := range b.People {
		if b.People[i].ID == id {
			return &b.People[i]
		}
	}
	return nil
}

// HasPerson reports whether a person with the given ID participates.
func (b *Bill) HasPerson(id string) bool {
	return b.PersonByID(id) != nil
}

// Clone returns a deep copy of the bill. Reducers operate on a clone so the
// original snapshot is never mutated.
func (b *Bill) Clone() Bill {
	c := *b

	c.People = append([]Person(nil), b.People...)

	c.Items = make([]Item, len(b.Items))
	for i, item := range b.Items {
		c.Items[i] = item
		c.Items[i].Shares = cloneShares(item.Shares)
	}

	c.Fees = append([]Fee(nil), b.Fees...)

	if b.Discount != nil {
		d := *b.Discount
		d.SharedBy = append([]string(nil), b.Discount.SharedBy...)
		c.Discount = &d
	}

	c.NamedDiscounts = make([]NamedDiscount, len(b.NamedDiscounts))
	for i, nd := range b.NamedDiscounts {
		c.NamedDiscounts[i] = nd
		c.NamedDiscounts[i].Shares = cloneShares(nd.Shares)
	}

	c.Payments = append([]Payment(nil), b.Payments...)

	if b.DisplayRate != nil {
		r := *b.DisplayRate
		c.DisplayRate = &r
	}

	return c
}

func cloneShares(shares map[string]int) map[string]int {
	if shares == nil {
		return nil
	}
	out := make(map[string]int, len(shares))
	for k, v := range shares {
		out[k] = v
	}
	return out
}
