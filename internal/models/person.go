package models

// Person is one participant splitting the bill.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// Name is the display name of the person.
	Name string `json:"name"`

	// Color is a display-only hint for the UI (e.g., "#ff6b6b").
	// The engine never interprets it.
	Color string `json:"color,omitempty"`
}

// Payment records money actually contributed by a person toward settling the
// bill. It is independent of that person's computed share.
type Payment struct {
	PersonID string  `json:"person_id"`
	Amount   float64 `json:"amount"`
}
