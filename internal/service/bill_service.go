// Package service orchestrates bill creation, editing, and retrieval against
// the storage backend. All bill mutations flow through the action reducer and
// every mutation recomputes the allocation summary.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wutcharinth/splitbill/internal/auth"
	"github.com/wutcharinth/splitbill/internal/calculator"
	"github.com/wutcharinth/splitbill/internal/export"
	"github.com/wutcharinth/splitbill/internal/extraction"
	"github.com/wutcharinth/splitbill/internal/metrics"
	"github.com/wutcharinth/splitbill/internal/models"
	"github.com/wutcharinth/splitbill/internal/reducer"
	"github.com/wutcharinth/splitbill/internal/storage"
)

// ErrNoPIN is returned when verifying a PIN against a bill that has none set.
var ErrNoPIN = errors.New("bill has no PIN set")

// personColors is the palette cycled through when creating participants.
var personColors = []string{
	"#ff6b6b", "#4ecdc4", "#ffd93d", "#6c5ce7",
	"#fd9644", "#26de81", "#a55eea", "#45aaf2",
}

// BillService coordinates storage, receipt extraction, and the allocation
// engine behind the HTTP handlers.
type BillService struct {
	store     storage.Store
	extractor extraction.Extractor
}

// NewBillService creates a new BillService. The extractor may be nil, in
// which case receipt images are ignored and bills start empty.
func NewBillService(store storage.Store, extractor extraction.Extractor) *BillService {
	return &BillService{store: store, extractor: extractor}
}

// CreateBillInput carries everything needed to start a bill. ReceiptImage is
// optional; when present and an extractor is configured, items and fees are
// pre-populated from the receipt.
type CreateBillInput struct {
	Title        string
	Currency     string
	PeopleNames  []string
	OwnerID      string
	ReceiptImage []byte
}

// CreateBill creates and persists a new bill. Extraction failures are
// logged and the bill falls back to manual entry rather than erroring out.
func (s *BillService) CreateBill(ctx context.Context, in CreateBillInput) (*models.Bill, error) {
	bill := &models.Bill{
		Title:      in.Title,
		Currency:   in.Currency,
		OwnerID:    in.OwnerID,
		Visibility: models.VisibilityPrivate,
		Tip:        models.Tip{SplitMode: models.TipProportional},
	}

	for i, name := range in.PeopleNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		bill.People = append(bill.People, models.Person{
			ID:    uuid.New().String(),
			Name:  name,
			Color: personColors[i%len(personColors)],
		})
	}
	// A bill always has at least one participant.
	if len(bill.People) == 0 {
		bill.People = append(bill.People, models.Person{
			ID:    uuid.New().String(),
			Name:  "Me",
			Color: personColors[0],
		})
	}

	if len(in.ReceiptImage) > 0 && s.extractor != nil {
		result, err := s.extractor.Extract(ctx, in.ReceiptImage)
		if err != nil {
			slog.Warn("Receipt extraction failed, falling back to manual entry", "error", err)
			metrics.Extractions.WithLabelValues("error").Inc()
		} else {
			metrics.Extractions.WithLabelValues("ok").Inc()
			applyExtraction(bill, result)
		}
	}

	if err := s.store.SaveBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}
	slog.Info("Bill created", "bill_id", bill.ID, "people", len(bill.People), "items", len(bill.Items))
	return bill, nil
}

// applyExtraction merges structured receipt content into a fresh bill.
func applyExtraction(bill *models.Bill, result *extraction.Result) {
	for _, item := range result.Items {
		bill.Items = append(bill.Items, models.Item{
			ID:             uuid.New().String(),
			Name:           item.Name,
			TranslatedName: item.TranslatedName,
			Price:          item.Price,
		})
	}
	for _, fee := range result.Fees {
		bill.Fees = append(bill.Fees, models.Fee{
			ID:      uuid.New().String(),
			Name:    fee.Name,
			Kind:    classifyFee(fee.Name),
			Amount:  fee.Amount,
			Enabled: true,
		})
	}
	for _, disc := range result.Discounts {
		bill.NamedDiscounts = append(bill.NamedDiscounts, models.NamedDiscount{
			ID:     uuid.New().String(),
			Name:   disc.Name,
			Amount: disc.Amount,
		})
	}
	bill.ReceiptTotal = result.Total
	if result.Currency != "" && bill.Currency == "" {
		bill.Currency = result.Currency
	}
	bill.RestaurantName = result.RestaurantName
	bill.Date = result.Date
}

// classifyFee guesses the fee kind from its receipt label.
func classifyFee(name string) models.FeeKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "service"):
		return models.FeeServiceCharge
	case strings.Contains(lower, "vat"), strings.Contains(lower, "tax"):
		return models.FeeVAT
	default:
		return models.FeeOther
	}
}

// GetBill retrieves a bill by ID.
func (s *BillService) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	return s.store.GetBill(ctx, billID)
}

// DeleteBill removes a bill by ID.
func (s *BillService) DeleteBill(ctx context.Context, billID string) error {
	return s.store.DeleteBill(ctx, billID)
}

// ListBillsByOwner returns all bills for an owner, newest first.
func (s *BillService) ListBillsByOwner(ctx context.Context, ownerID string) ([]*models.Bill, error) {
	return s.store.ListBillsByOwner(ctx, ownerID)
}

// ApplyActions loads a bill, applies the given actions through the reducer,
// recomputes the allocation summary, and persists the result. The stored
// snapshot is untouched when any action fails.
func (s *BillService) ApplyActions(ctx context.Context, billID string, actions []reducer.Action) (*models.Bill, *calculator.Summary, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}

	next, err := reducer.Apply(*bill, actions...)
	if err != nil {
		return nil, nil, err
	}

	summary, err := calculator.Summarize(&next)
	if err != nil {
		return nil, nil, err
	}
	metrics.Recomputes.Inc()

	if err := s.store.UpdateBill(ctx, &next); err != nil {
		return nil, nil, fmt.Errorf("failed to save bill: %w", err)
	}
	slog.Debug("Actions applied", "bill_id", billID, "actions", len(actions), "status", summary.Reconciliation.Status)
	return &next, summary, nil
}

// Summary recomputes the allocation summary for a bill without mutating it.
func (s *BillService) Summary(ctx context.Context, billID string) (*calculator.Summary, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	metrics.Recomputes.Inc()
	return calculator.Summarize(bill)
}

// Export renders a bill and its summary as an xlsx workbook.
func (s *BillService) Export(ctx context.Context, billID string) ([]byte, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	summary, err := calculator.Summarize(bill)
	if err != nil {
		return nil, err
	}

	wb, err := export.Workbook(bill, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	defer wb.Close()

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MarkShared flips a bill to shared visibility so share links resolve.
func (s *BillService) MarkShared(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.Visibility == models.VisibilityShared {
		return bill, nil
	}
	bill.Visibility = models.VisibilityShared
	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// SetPIN hashes and stores the owner edit PIN for a bill.
func (s *BillService) SetPIN(ctx context.Context, billID, pin string) error {
	if err := auth.ValidatePIN(pin); err != nil {
		return err
	}
	if _, err := s.store.GetBill(ctx, billID); err != nil {
		return err
	}
	hash, err := auth.HashPIN(pin)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	return s.store.SetPINHash(ctx, billID, hash)
}

// VerifyPIN checks the given PIN against the bill's stored hash.
func (s *BillService) VerifyPIN(ctx context.Context, billID, pin string) error {
	hash, err := s.store.GetPINHash(ctx, billID)
	if err != nil {
		return err
	}
	if hash == "" {
		return ErrNoPIN
	}
	return auth.VerifyPIN(hash, pin)
}
