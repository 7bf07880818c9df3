package dto

import "encoding/json"

// CreateBillRequest starts a new bill. When the request is multipart, these
// fields arrive as form values alongside an optional "receipt" image part.
type CreateBillRequest struct {
	Title    string   `json:"title" form:"title"`
	Currency string   `json:"currency" form:"currency"`
	People   []string `json:"people" form:"people"`
	OwnerID  string   `json:"owner_id" form:"owner_id"`
}

// ActionsRequest carries a batch of edit actions. Each element is a tagged
// JSON object with a "kind" field; the batch is atomic.
type ActionsRequest struct {
	Actions []json.RawMessage `json:"actions"`
}

// ShareRequest mints a share token for a bill. ReadOnly tokens grant view
// access only; setting a PIN lets viewers claim edit rights later.
type ShareRequest struct {
	ReadOnly bool   `json:"read_only"`
	PIN      string `json:"pin,omitempty"`
}

// ClaimRequest exchanges the owner PIN for an editable share token.
type ClaimRequest struct {
	PIN string `json:"pin"`
}
