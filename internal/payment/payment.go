package payment

import (
	"context"
)

// ChargeRequest describes a single create-and-confirm charge.
type ChargeRequest struct {
	// AmountMinor is the charge amount in minor currency units (cents).
	AmountMinor  int64
	Currency     string
	MethodToken  string
	ReceiptEmail string
	Description  string
}

// ChargeResult is the gateway's answer to a charge request.
type ChargeResult struct {
	Status         string
	MaskedLast4    string
	FailureMessage string
}

// Succeeded reports whether the gateway explicitly confirmed the charge.
// Anything else, including in-between statuses, counts as not charged.
func (r *ChargeResult) Succeeded() bool {
	return r.Status == "succeeded"
}

// Gateway charges payment cards. Implementations must never persist card
// data beyond the masked last four digits.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
