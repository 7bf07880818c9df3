// Package extraction turns receipt photos into structured bill data using an
// OpenAI vision model. The engine never talks to this package: extraction
// results are converted into a bill snapshot before the engine runs, and an
// extraction failure simply falls back to manual entry.
package extraction

import "context"

// Item is a single line item read off the receipt.
type Item struct {
	Name           string  `json:"name"`
	TranslatedName string  `json:"translated_name,omitempty"`
	Price          float64 `json:"price"`
}

// Charge is a fee or discount line read off the receipt.
type Charge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Result is the structured content of one receipt.
type Result struct {
	Items          []Item   `json:"items"`
	Fees           []Charge `json:"fees,omitempty"`
	Discounts      []Charge `json:"discounts,omitempty"`
	Total          float64  `json:"total"`
	Currency       string   `json:"currency,omitempty"`
	RestaurantName string   `json:"restaurant_name,omitempty"`
	Date           string   `json:"date,omitempty"`
}

// Extractor defines the interface for receipt data extraction.
type Extractor interface {
	// Extract analyzes a receipt image and returns its structured content.
	Extract(ctx context.Context, image []byte) (*Result, error)
}
