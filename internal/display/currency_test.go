package display

import (
	"testing"

	"github.com/wutcharinth/splitbill/internal/models"
)

func TestConvert(t *testing.T) {
	if got := Convert(100, nil); got != 100 {
		t.Errorf("Convert(100, nil) = %v, want 100", got)
	}
	rate := &models.ExchangeRate{Rate: 0.025, AsOfDate: "2025-03-01"}
	if got := Convert(100, rate); got != 2.5 {
		t.Errorf("Convert(100, 0.025) = %v, want 2.5", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.5, "THB", "฿1234.50"},
		{1234.5, "USD", "$1234.50"},
		{1234.5, "JPY", "¥1235"},
		{9.99, "XXX", "XXX 9.99"},
	}
	for _, tt := range tests {
		if got := Format(tt.amount, tt.currency); got != tt.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestCurrenciesPinnedFirst(t *testing.T) {
	got := Currencies([]string{"JPY", "THB", "NOPE"})
	if len(got) < 3 {
		t.Fatalf("too few currencies: %v", got)
	}
	if got[0] != "JPY" || got[1] != "THB" {
		t.Errorf("pinned order wrong: %v", got[:2])
	}
	for _, code := range got[2:] {
		if code == "JPY" || code == "THB" {
			t.Errorf("pinned currency %s repeated in tail", code)
		}
		if code == "NOPE" {
			t.Error("unknown pinned code leaked into the list")
		}
	}
}
