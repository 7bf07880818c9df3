package dto

import (
	"github.com/wutcharinth/splitbill/internal/calculator"
	"github.com/wutcharinth/splitbill/internal/models"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// BillResponse wraps a bill snapshot, optionally with its computed summary.
type BillResponse struct {
	Bill    *models.Bill        `json:"bill"`
	Summary *calculator.Summary `json:"summary,omitempty"`
}

// CreateBillResponse returns the new bill together with an edit token. The
// token is the creator's capability: it is minted once here and never
// recoverable, so clients must hold on to it.
type CreateBillResponse struct {
	Bill  *models.Bill `json:"bill"`
	Token string       `json:"token"`
}

// ShareResponse carries a freshly minted share token and the resolved link.
type ShareResponse struct {
	Token    string `json:"token"`
	ReadOnly bool   `json:"read_only"`
	URL      string `json:"url"`
}

// ClaimResponse carries the editable token granted after PIN verification.
type ClaimResponse struct {
	Token string `json:"token"`
}

// CurrenciesResponse lists the supported currency codes, pinned ones first.
type CurrenciesResponse struct {
	Currencies []string `json:"currencies"`
}

// RateResponse is the display-layer exchange rate for a currency pair.
type RateResponse struct {
	Base   string  `json:"base"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
	Date   string  `json:"date,omitempty"`
}
