package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/wutcharinth/splitbill/internal/models"
	"github.com/wutcharinth/splitbill/internal/storage"
)

// setupTestStore creates a store backed by a temp database file.
func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return store, cleanup
}

func sampleBill() *models.Bill {
	return &models.Bill{
		RestaurantName: "Som Tam Paradise",
		Currency:       "THB",
		OwnerID:        "owner-1",
		People: []models.Person{
			{ID: "p1", Name: "Alice", Color: "#ff6b6b"},
			{ID: "p2", Name: "Bob"},
		},
		Items: []models.Item{
			{ID: "i1", Name: "Som Tam", Price: 120, Shares: map[string]int{"p1": 1, "p2": 1}},
			{ID: "i2", Name: "Sticky Rice", Price: 40, Shares: map[string]int{"p2": 2}},
		},
		Fees: []models.Fee{
			{ID: "f1", Name: "Service", Kind: models.FeeServiceCharge, Amount: 16, Enabled: true},
		},
		Tip:          models.Tip{Amount: 20, SplitMode: models.TipProportional},
		ReceiptTotal: 176,
	}
}

func TestSaveAndGetBill(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	bill := sampleBill()

	if err := store.SaveBill(ctx, bill); err != nil {
		t.Fatalf("SaveBill() error = %v", err)
	}
	if bill.ID == "" {
		t.Fatal("SaveBill() did not assign an ID")
	}
	if bill.CreatedAt == 0 || bill.UpdatedAt == 0 {
		t.Error("SaveBill() did not set timestamps")
	}
	if bill.Title != "Som Tam Paradise" {
		t.Errorf("title = %q, want restaurant name", bill.Title)
	}

	got, err := store.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill() error = %v", err)
	}
	if len(got.People) != 2 || got.People[0].Name != "Alice" {
		t.Errorf("people round-trip failed: %+v", got.People)
	}
	if got.Items[1].Shares["p2"] != 2 {
		t.Errorf("item shares round-trip failed: %+v", got.Items[1].Shares)
	}
	if got.ReceiptTotal != 176 {
		t.Errorf("receiptTotal = %v, want 176", got.ReceiptTotal)
	}
	if got.Visibility != models.VisibilityPrivate {
		t.Errorf("visibility = %q, want default private", got.Visibility)
	}
}

func TestGetBillNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetBill(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetBill() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateBill(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	bill := sampleBill()
	if err := store.SaveBill(ctx, bill); err != nil {
		t.Fatalf("SaveBill() error = %v", err)
	}

	bill.ReceiptTotal = 200
	bill.Visibility = models.VisibilityShared
	if err := store.UpdateBill(ctx, bill); err != nil {
		t.Fatalf("UpdateBill() error = %v", err)
	}

	got, err := store.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill() error = %v", err)
	}
	if got.ReceiptTotal != 200 {
		t.Errorf("receiptTotal = %v, want 200", got.ReceiptTotal)
	}
	if got.Visibility != models.VisibilityShared {
		t.Errorf("visibility = %q, want shared", got.Visibility)
	}

	missing := sampleBill()
	missing.ID = "missing"
	if err := store.UpdateBill(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateBill(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteBill(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	bill := sampleBill()
	if err := store.SaveBill(ctx, bill); err != nil {
		t.Fatalf("SaveBill() error = %v", err)
	}

	if err := store.DeleteBill(ctx, bill.ID); err != nil {
		t.Fatalf("DeleteBill() error = %v", err)
	}
	if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetBill() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteBill() twice error = %v, want ErrNotFound", err)
	}
}

func TestListBillsByOwner(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		bill := sampleBill()
		if i == 2 {
			bill.OwnerID = "someone-else"
		}
		if err := store.SaveBill(ctx, bill); err != nil {
			t.Fatalf("SaveBill() error = %v", err)
		}
	}

	bills, err := store.ListBillsByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListBillsByOwner() error = %v", err)
	}
	if len(bills) != 2 {
		t.Errorf("listed %d bills, want 2", len(bills))
	}

	none, err := store.ListBillsByOwner(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListBillsByOwner() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("listed %d bills for unknown owner, want 0", len(none))
	}
}

func TestPINHashRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	bill := sampleBill()
	if err := store.SaveBill(ctx, bill); err != nil {
		t.Fatalf("SaveBill() error = %v", err)
	}

	hash, err := store.GetPINHash(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetPINHash() error = %v", err)
	}
	if hash != "" {
		t.Errorf("initial pin hash = %q, want empty", hash)
	}

	if err := store.SetPINHash(ctx, bill.ID, "bcrypt-hash"); err != nil {
		t.Fatalf("SetPINHash() error = %v", err)
	}
	hash, err = store.GetPINHash(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetPINHash() error = %v", err)
	}
	if hash != "bcrypt-hash" {
		t.Errorf("pin hash = %q, want stored value", hash)
	}

	if err := store.SetPINHash(ctx, "missing", "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SetPINHash(missing) error = %v, want ErrNotFound", err)
	}
}
