package reducer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wutcharinth/splitbill/internal/models"
)

// AddPerson appends a new participant. ID is generated when not supplied.
type AddPerson struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (a *AddPerson) Kind() string { return "add_person" }

func (a *AddPerson) apply(b *models.Bill) error {
	if a.Name == "" {
		return fmt.Errorf("person name is required")
	}
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	if b.HasPerson(id) {
		return fmt.Errorf("person %s already exists", id)
	}
	b.People = append(b.People, models.Person{ID: id, Name: a.Name, Color: a.Color})
	return nil
}

// RemovePerson removes a participant and prunes every reference to them:
// item shares, discount sharer sets, named discount shares, and payments.
// Removing the last person is rejected.
type RemovePerson struct {
	PersonID string `json:"person_id"`
}

func (a *RemovePerson) Kind() string { return "remove_person" }

func (a *RemovePerson) apply(b *models.Bill) error {
	if err := requirePerson(b, a.PersonID); err != nil {
		return err
	}
	if len(b.People) == 1 {
		return ErrLastPerson
	}

	people := b.People[:0]
	for _, p := range b.People {
		if p.ID != a.PersonID {
			people = append(people, p)
		}
	}
	b.People = people

	for i := range b.Items {
		delete(b.Items[i].Shares, a.PersonID)
	}
	for i := range b.NamedDiscounts {
		delete(b.NamedDiscounts[i].Shares, a.PersonID)
	}
	if b.Discount != nil {
		shared := b.Discount.SharedBy[:0]
		for _, id := range b.Discount.SharedBy {
			if id != a.PersonID {
				shared = append(shared, id)
			}
		}
		b.Discount.SharedBy = shared
	}
	payments := b.Payments[:0]
	for _, p := range b.Payments {
		if p.PersonID != a.PersonID {
			payments = append(payments, p)
		}
	}
	b.Payments = payments
	return nil
}

// RenamePerson updates a participant's display name and color.
type RenamePerson struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
}

func (a *RenamePerson) Kind() string { return "rename_person" }

func (a *RenamePerson) apply(b *models.Bill) error {
	p := b.PersonByID(a.PersonID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, a.PersonID)
	}
	if a.Name != "" {
		p.Name = a.Name
	}
	if a.Color != "" {
		p.Color = a.Color
	}
	return nil
}

// AddItem appends a new line item, unassigned until shares are set.
type AddItem struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	TranslatedName string  `json:"translated_name,omitempty"`
	Price          float64 `json:"price"`
}

func (a *AddItem) Kind() string { return "add_item" }

func (a *AddItem) apply(b *models.Bill) error {
	if a.Name == "" {
		return fmt.Errorf("item name is required")
	}
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	b.Items = append(b.Items, models.Item{
		ID:             id,
		Name:           a.Name,
		TranslatedName: a.TranslatedName,
		Price:          a.Price,
	})
	return nil
}

// UpdateItem edits an item's fields. Nil fields are left unchanged.
type UpdateItem struct {
	ItemID         string   `json:"item_id"`
	Name           *string  `json:"name,omitempty"`
	TranslatedName *string  `json:"translated_name,omitempty"`
	Price          *float64 `json:"price,omitempty"`
}

func (a *UpdateItem) Kind() string { return "update_item" }

func (a *UpdateItem) apply(b *models.Bill) error {
	item, err := findItem(b, a.ItemID)
	if err != nil {
		return err
	}
	if a.Name != nil {
		item.Name = *a.Name
	}
	if a.TranslatedName != nil {
		item.TranslatedName = *a.TranslatedName
	}
	if a.Price != nil {
		item.Price = *a.Price
	}
	return nil
}

// RemoveItem deletes a line item.
type RemoveItem struct {
	ItemID string `json:"item_id"`
}

func (a *RemoveItem) Kind() string { return "remove_item" }

func (a *RemoveItem) apply(b *models.Bill) error {
	for i := range b.Items {
		if b.Items[i].ID == a.ItemID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, a.ItemID)
}

// SetItemShare assigns a person's share count on an item. Count zero removes
// the person's share.
type SetItemShare struct {
	ItemID   string `json:"item_id"`
	PersonID string `json:"person_id"`
	Count    int    `json:"count"`
}

func (a *SetItemShare) Kind() string { return "set_item_share" }

func (a *SetItemShare) apply(b *models.Bill) error {
	if a.Count < 0 {
		return fmt.Errorf("share count must be non-negative, got %d", a.Count)
	}
	if err := requirePerson(b, a.PersonID); err != nil {
		return err
	}
	item, err := findItem(b, a.ItemID)
	if err != nil {
		return err
	}
	if a.Count == 0 {
		delete(item.Shares, a.PersonID)
		return nil
	}
	if item.Shares == nil {
		item.Shares = make(map[string]int)
	}
	item.Shares[a.PersonID] = a.Count
	return nil
}

// AddFee appends a new enabled fee.
type AddFee struct {
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name"`
	FeeKind models.FeeKind `json:"fee_kind,omitempty"`
	Amount  float64        `json:"amount"`
}

func (a *AddFee) Kind() string { return "add_fee" }

func (a *AddFee) apply(b *models.Bill) error {
	if a.Name == "" {
		return fmt.Errorf("fee name is required")
	}
	if a.Amount < 0 {
		return fmt.Errorf("fee amount must be non-negative, got %v", a.Amount)
	}
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	kind := a.FeeKind
	if kind == "" {
		kind = models.FeeUserAdded
	}
	b.Fees = append(b.Fees, models.Fee{ID: id, Name: a.Name, Kind: kind, Amount: a.Amount, Enabled: true})
	return nil
}

// UpdateFee edits a fee's fields. Nil fields are left unchanged.
type UpdateFee struct {
	FeeID  string   `json:"fee_id"`
	Name   *string  `json:"name,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

func (a *UpdateFee) Kind() string { return "update_fee" }

func (a *UpdateFee) apply(b *models.Bill) error {
	fee, err := findFee(b, a.FeeID)
	if err != nil {
		return err
	}
	if a.Name != nil {
		fee.Name = *a.Name
	}
	if a.Amount != nil {
		if *a.Amount < 0 {
			return fmt.Errorf("fee amount must be non-negative, got %v", *a.Amount)
		}
		fee.Amount = *a.Amount
	}
	return nil
}

// ToggleFee flips a fee's enabled flag. Disabled fees drop out of all totals
// but stay editable.
type ToggleFee struct {
	FeeID string `json:"fee_id"`
}

func (a *ToggleFee) Kind() string { return "toggle_fee" }

func (a *ToggleFee) apply(b *models.Bill) error {
	fee, err := findFee(b, a.FeeID)
	if err != nil {
		return err
	}
	fee.Enabled = !fee.Enabled
	return nil
}

// RemoveFee deletes a fee.
type RemoveFee struct {
	FeeID string `json:"fee_id"`
}

func (a *RemoveFee) Kind() string { return "remove_fee" }

func (a *RemoveFee) apply(b *models.Bill) error {
	for i := range b.Fees {
		if b.Fees[i].ID == a.FeeID {
			b.Fees = append(b.Fees[:i], b.Fees[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrFeeNotFound, a.FeeID)
}

// SetDiscount sets or replaces the bill-level discount.
type SetDiscount struct {
	Value    float64             `json:"value"`
	Type     models.DiscountType `json:"type"`
	SharedBy []string            `json:"shared_by,omitempty"`
}

func (a *SetDiscount) Kind() string { return "set_discount" }

func (a *SetDiscount) apply(b *models.Bill) error {
	if a.Value < 0 {
		return fmt.Errorf("discount value must be non-negative, got %v", a.Value)
	}
	if a.Type != models.DiscountPercentage && a.Type != models.DiscountFixed {
		return fmt.Errorf("unknown discount type %q", a.Type)
	}
	for _, id := range a.SharedBy {
		if err := requirePerson(b, id); err != nil {
			return err
		}
	}
	b.Discount = &models.Discount{
		Value:    a.Value,
		Type:     a.Type,
		SharedBy: append([]string(nil), a.SharedBy...),
	}
	return nil
}

// ClearDiscount removes the bill-level discount.
type ClearDiscount struct{}

func (a *ClearDiscount) Kind() string { return "clear_discount" }

func (a *ClearDiscount) apply(b *models.Bill) error {
	b.Discount = nil
	return nil
}

// AddNamedDiscount appends an itemized discount.
type AddNamedDiscount struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func (a *AddNamedDiscount) Kind() string { return "add_named_discount" }

func (a *AddNamedDiscount) apply(b *models.Bill) error {
	if a.Name == "" {
		return fmt.Errorf("discount name is required")
	}
	if a.Amount < 0 {
		return fmt.Errorf("discount amount must be non-negative, got %v", a.Amount)
	}
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	b.NamedDiscounts = append(b.NamedDiscounts, models.NamedDiscount{ID: id, Name: a.Name, Amount: a.Amount})
	return nil
}

// SetNamedDiscountShare assigns a person's share count on a named discount.
type SetNamedDiscountShare struct {
	DiscountID string `json:"discount_id"`
	PersonID   string `json:"person_id"`
	Count      int    `json:"count"`
}

func (a *SetNamedDiscountShare) Kind() string { return "set_named_discount_share" }

func (a *SetNamedDiscountShare) apply(b *models.Bill) error {
	if a.Count < 0 {
		return fmt.Errorf("share count must be non-negative, got %d", a.Count)
	}
	if err := requirePerson(b, a.PersonID); err != nil {
		return err
	}
	for i := range b.NamedDiscounts {
		if b.NamedDiscounts[i].ID != a.DiscountID {
			continue
		}
		if a.Count == 0 {
			delete(b.NamedDiscounts[i].Shares, a.PersonID)
			return nil
		}
		if b.NamedDiscounts[i].Shares == nil {
			b.NamedDiscounts[i].Shares = make(map[string]int)
		}
		b.NamedDiscounts[i].Shares[a.PersonID] = a.Count
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDiscountNotFound, a.DiscountID)
}

// RemoveNamedDiscount deletes an itemized discount.
type RemoveNamedDiscount struct {
	DiscountID string `json:"discount_id"`
}

func (a *RemoveNamedDiscount) Kind() string { return "remove_named_discount" }

func (a *RemoveNamedDiscount) apply(b *models.Bill) error {
	for i := range b.NamedDiscounts {
		if b.NamedDiscounts[i].ID == a.DiscountID {
			b.NamedDiscounts = append(b.NamedDiscounts[:i], b.NamedDiscounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrDiscountNotFound, a.DiscountID)
}

// SetTip sets the tip amount.
type SetTip struct {
	Amount float64 `json:"amount"`
}

func (a *SetTip) Kind() string { return "set_tip" }

func (a *SetTip) apply(b *models.Bill) error {
	if a.Amount < 0 {
		return fmt.Errorf("tip must be non-negative, got %v", a.Amount)
	}
	b.Tip.Amount = a.Amount
	return nil
}

// SetTipSplitMode selects proportional or equal tip splitting.
type SetTipSplitMode struct {
	Mode models.TipSplitMode `json:"mode"`
}

func (a *SetTipSplitMode) Kind() string { return "set_tip_split_mode" }

func (a *SetTipSplitMode) apply(b *models.Bill) error {
	if a.Mode != models.TipProportional && a.Mode != models.TipEqual {
		return fmt.Errorf("unknown tip split mode %q", a.Mode)
	}
	b.Tip.SplitMode = a.Mode
	return nil
}

// SetReceiptTotal sets the externally known receipt total. Zero clears the
// reconciliation target.
type SetReceiptTotal struct {
	Amount float64 `json:"amount"`
}

func (a *SetReceiptTotal) Kind() string { return "set_receipt_total" }

func (a *SetReceiptTotal) apply(b *models.Bill) error {
	if a.Amount < 0 {
		return fmt.Errorf("receipt total must be non-negative, got %v", a.Amount)
	}
	b.ReceiptTotal = a.Amount
	return nil
}

// SetSplitEvenly toggles split-evenly mode.
type SetSplitEvenly struct {
	Enabled bool `json:"enabled"`
}

func (a *SetSplitEvenly) Kind() string { return "set_split_evenly" }

func (a *SetSplitEvenly) apply(b *models.Bill) error {
	b.SplitEvenly = a.Enabled
	return nil
}

// RecordPayment upserts a person's payment toward settling the bill.
type RecordPayment struct {
	PersonID string  `json:"person_id"`
	Amount   float64 `json:"amount"`
}

func (a *RecordPayment) Kind() string { return "record_payment" }

func (a *RecordPayment) apply(b *models.Bill) error {
	if a.Amount < 0 {
		return fmt.Errorf("payment must be non-negative, got %v", a.Amount)
	}
	if err := requirePerson(b, a.PersonID); err != nil {
		return err
	}
	for i := range b.Payments {
		if b.Payments[i].PersonID == a.PersonID {
			b.Payments[i].Amount = a.Amount
			return nil
		}
	}
	b.Payments = append(b.Payments, models.Payment{PersonID: a.PersonID, Amount: a.Amount})
	return nil
}

// ClearPayments removes all recorded payments.
type ClearPayments struct{}

func (a *ClearPayments) Kind() string { return "clear_payments" }

func (a *ClearPayments) apply(b *models.Bill) error {
	b.Payments = nil
	return nil
}

// SetDisplayCurrency sets the display currency and its conversion rate. The
// rate only affects display; stored amounts stay in the base currency.
type SetDisplayCurrency struct {
	Currency string               `json:"currency"`
	Rate     *models.ExchangeRate `json:"rate,omitempty"`
}

func (a *SetDisplayCurrency) Kind() string { return "set_display_currency" }

func (a *SetDisplayCurrency) apply(b *models.Bill) error {
	b.DisplayCurrency = a.Currency
	if a.Rate != nil {
		r := *a.Rate
		b.DisplayRate = &r
	} else {
		b.DisplayRate = nil
	}
	return nil
}
