// Package rates fetches display exchange rates from an external provider.
// The engine never converts currency; rates only reach the display layer.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wutcharinth/splitbill/internal/models"
)

// Provider defines the interface for exchange-rate lookups. A nil rate with a
// nil error means "no rate available, assume 1 and skip conversion".
type Provider interface {
	GetRate(ctx context.Context, base, target string) (*models.ExchangeRate, error)
}

// HTTPProvider fetches rates from a frankfurter-style JSON API
// (GET {base}/latest?base=X&symbols=Y).
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider for the given API base URL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// GetRate fetches the conversion rate from base to target. Identical
// currencies short-circuit to rate 1 without a network call.
func (p *HTTPProvider) GetRate(ctx context.Context, base, target string) (*models.ExchangeRate, error) {
	if base == target || base == "" || target == "" {
		return &models.ExchangeRate{Rate: 1}, nil
	}

	u := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		p.baseURL, url.QueryEscape(base), url.QueryEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := body.Rates[target]
	if !ok {
		return nil, fmt.Errorf("rate provider has no rate for %s", target)
	}
	return &models.ExchangeRate{Rate: rate, AsOfDate: body.Date}, nil
}
