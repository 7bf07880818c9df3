// Package reducer mutates bill state exclusively through explicit, named
// actions. Each action is a pure transition: applying it to a snapshot
// produces a new snapshot and never touches the original, so the calculator
// can safely re-run on every change.
package reducer

import (
	"errors"
	"fmt"

	"github.com/wutcharinth/splitbill/internal/models"
)

var (
	// ErrLastPerson is returned when an action would remove the only
	// remaining person. At least one person must always exist.
	ErrLastPerson = errors.New("cannot remove the last person")

	ErrPersonNotFound   = errors.New("person not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrFeeNotFound      = errors.New("fee not found")
	ErrDiscountNotFound = errors.New("discount not found")
)

// Action is a single named state transition.
type Action interface {
	// Kind returns the action's wire tag (e.g., "add_person").
	Kind() string

	// apply mutates the cloned snapshot. Only Apply calls it.
	apply(b *models.Bill) error
}

// Apply runs the actions in order against a clone of the snapshot and returns
// the new state. On any error the original snapshot remains the current
// state; partial application is never exposed.
func Apply(b models.Bill, actions ...Action) (models.Bill, error) {
	next := b.Clone()
	for _, a := range actions {
		if err := a.apply(&next); err != nil {
			return models.Bill{}, fmt.Errorf("%s: %w", a.Kind(), err)
		}
	}
	return next, nil
}

func findItem(b *models.Bill, id string) (*models.Item, error) {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return &b.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func findFee(b *models.Bill, id string) (*models.Fee, error) {
	for i := range b.Fees {
		if b.Fees[i].ID == id {
			return &b.Fees[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFeeNotFound, id)
}

func requirePerson(b *models.Bill, id string) error {
	if !b.HasPerson(id) {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	return nil
}
