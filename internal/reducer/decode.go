package reducer

import (
	"encoding/json"
	"fmt"
)

// registry maps wire tags to action constructors for JSON decoding.
var registry = map[string]func() Action{
	(&AddPerson{}).Kind():             func() Action { return &AddPerson{} },
	(&RemovePerson{}).Kind():          func() Action { return &RemovePerson{} },
	(&RenamePerson{}).Kind():          func() Action { return &RenamePerson{} },
	(&AddItem{}).Kind():               func() Action { return &AddItem{} },
	(&UpdateItem{}).Kind():            func() Action { return &UpdateItem{} },
	(&RemoveItem{}).Kind():            func() Action { return &RemoveItem{} },
	(&SetItemShare{}).Kind():          func() Action { return &SetItemShare{} },
	(&AddFee{}).Kind():                func() Action { return &AddFee{} },
	(&UpdateFee{}).Kind():             func() Action { return &UpdateFee{} },
	(&ToggleFee{}).Kind():             func() Action { return &ToggleFee{} },
	(&RemoveFee{}).Kind():             func() Action { return &RemoveFee{} },
	(&SetDiscount{}).Kind():           func() Action { return &SetDiscount{} },
	(&ClearDiscount{}).Kind():         func() Action { return &ClearDiscount{} },
	(&AddNamedDiscount{}).Kind():      func() Action { return &AddNamedDiscount{} },
	(&SetNamedDiscountShare{}).Kind(): func() Action { return &SetNamedDiscountShare{} },
	(&RemoveNamedDiscount{}).Kind():   func() Action { return &RemoveNamedDiscount{} },
	(&SetTip{}).Kind():                func() Action { return &SetTip{} },
	(&SetTipSplitMode{}).Kind():       func() Action { return &SetTipSplitMode{} },
	(&SetReceiptTotal{}).Kind():       func() Action { return &SetReceiptTotal{} },
	(&SetSplitEvenly{}).Kind():        func() Action { return &SetSplitEvenly{} },
	(&RecordPayment{}).Kind():         func() Action { return &RecordPayment{} },
	(&ClearPayments{}).Kind():         func() Action { return &ClearPayments{} },
	(&SetDisplayCurrency{}).Kind():    func() Action { return &SetDisplayCurrency{} },
}

// Decode turns one JSON action envelope ({"kind": "...", ...fields}) into a
// typed Action.
func Decode(data json.RawMessage) (Action, error) {
	var envelope struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode action envelope: %w", err)
	}

	newAction, ok := registry[envelope.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %q", envelope.Kind)
	}

	action := newAction()
	if err := json.Unmarshal(data, action); err != nil {
		return nil, fmt.Errorf("failed to decode %s action: %w", envelope.Kind, err)
	}
	return action, nil
}

// DecodeAll decodes a JSON array of action envelopes.
func DecodeAll(raw []json.RawMessage) ([]Action, error) {
	actions := make([]Action, 0, len(raw))
	for i, data := range raw {
		action, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}
