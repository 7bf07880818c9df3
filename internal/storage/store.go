// Package storage provides abstractions for persistent bill storage.
package storage

import (
	"context"
	"errors"

	"github.com/wutcharinth/splitbill/internal/models"
)

// ErrNotFound is returned when no bill exists for the given ID.
var ErrNotFound = errors.New("bill not found")

// Store defines the interface for bill persistence. The engine is agnostic to
// how or whether state is persisted; a bill is saved and loaded as an opaque
// snapshot keyed by ID, with owner and visibility metadata for sharing.
//
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// SaveBill persists a new bill snapshot. The bill's ID and timestamps
	// are populated when unset.
	SaveBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill snapshot by ID.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces an existing bill snapshot and bumps UpdatedAt.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill by ID.
	DeleteBill(ctx context.Context, billID string) error

	// ListBillsByOwner returns all bills for an owner, newest first.
	ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error)

	// SetPINHash stores the bcrypt hash of the bill's owner edit PIN.
	SetPINHash(ctx context.Context, billID, hash string) error

	// GetPINHash returns the stored PIN hash, "" when no PIN is set.
	GetPINHash(ctx context.Context, billID string) (string, error)

	// Close releases any resources held by the store.
	Close() error
}
