// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/wutcharinth/splitbill/internal/models"
	"github.com/wutcharinth/splitbill/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBill persists a new bill snapshot.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	if bill.Title == "" {
		bill.Title = generateTitle(bill)
	}
	if bill.Visibility == "" {
		bill.Visibility = models.VisibilityPrivate
	}

	state, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("failed to encode bill state: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bills (id, title, owner_id, visibility, currency, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Title, bill.OwnerID, string(bill.Visibility), bill.Currency,
		string(state), bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill retrieves a bill snapshot by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	var state string
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM bills WHERE id = ?", billID,
	).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	bill := &models.Bill{}
	if err := json.Unmarshal([]byte(state), bill); err != nil {
		return nil, fmt.Errorf("failed to decode bill state: %w", err)
	}
	return bill, nil
}

// UpdateBill replaces an existing bill snapshot.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()

	state, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("failed to encode bill state: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET title = ?, owner_id = ?, visibility = ?, currency = ?, state = ?, updated_at = ?
		 WHERE id = ?`,
		bill.Title, bill.OwnerID, string(bill.Visibility), bill.Currency,
		string(state), bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, bill.ID)
	}
	return nil
}

// DeleteBill removes a bill by ID.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	return nil
}

// ListBillsByOwner returns all bills for an owner, newest first.
func (s *SQLiteStore) ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT state FROM bills WHERE owner_id = ? ORDER BY updated_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill := &models.Bill{}
		if err := json.Unmarshal([]byte(state), bill); err != nil {
			return nil, fmt.Errorf("failed to decode bill state: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// SetPINHash stores the bcrypt hash of the bill's owner edit PIN.
func (s *SQLiteStore) SetPINHash(ctx context.Context, billID, hash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET pin_hash = ? WHERE id = ?", hash, billID,
	)
	if err != nil {
		return fmt.Errorf("failed to set pin hash: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check pin update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	return nil
}

// GetPINHash returns the stored PIN hash, "" when no PIN is set.
func (s *SQLiteStore) GetPINHash(ctx context.Context, billID string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT pin_hash FROM bills WHERE id = ?", billID,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get pin hash: %w", err)
	}
	return hash, nil
}

// generateTitle creates an auto-generated title from the restaurant name or
// the participant list.
func generateTitle(bill *models.Bill) string {
	if bill.RestaurantName != "" {
		return bill.RestaurantName
	}
	names := make([]string, 0, len(bill.People))
	for _, p := range bill.People {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
