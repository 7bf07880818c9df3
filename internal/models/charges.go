package models

// FeeKind classifies where a fee came from.
type FeeKind string

const (
	FeeServiceCharge FeeKind = "service_charge"
	FeeVAT           FeeKind = "vat"
	FeeOther         FeeKind = "other"
	FeeUserAdded     FeeKind = "user_added"
)

// Fee is a bill-level charge (service charge, VAT, etc.). Disabled fees are
// excluded from all totals but retained in state so they stay editable and can
// be re-enabled.
type Fee struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TranslatedName string  `json:"translated_name,omitempty"`
	Kind           FeeKind `json:"kind,omitempty"`
	Amount         float64 `json:"amount"`
	Enabled        bool    `json:"enabled"`
}

// DiscountType distinguishes percentage from fixed-amount discounts.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is the single bill-level discount. Value is always stored as a
// positive number representing a reduction. A percentage discount is computed
// against the assignable subtotal.
//
// SharedBy lists the person IDs the discount is distributed across; an empty
// list means everyone.
type Discount struct {
	Value    float64      `json:"value"`
	Type     DiscountType `json:"type"`
	SharedBy []string     `json:"shared_by,omitempty"`
}

// NamedDiscount is an additional itemized discount (e.g., a voucher printed as
// its own receipt line). Shares mirror the item share mechanism; all-zero
// shares mean the discount applies to everyone by consumption weight.
type NamedDiscount struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	TranslatedName string         `json:"translated_name,omitempty"`
	Amount         float64        `json:"amount"`
	Shares         map[string]int `json:"shares,omitempty"`
}

// TipSplitMode selects how the tip is divided.
type TipSplitMode string

const (
	// TipProportional distributes the tip by each person's share of the
	// pre-tip subtotal.
	TipProportional TipSplitMode = "proportional"
	// TipEqual divides the tip evenly across all people regardless of
	// consumption.
	TipEqual TipSplitMode = "equal"
)

// Tip is the gratuity added on top of the reconciled total.
type Tip struct {
	Amount    float64      `json:"amount"`
	SplitMode TipSplitMode `json:"split_mode"`
}
