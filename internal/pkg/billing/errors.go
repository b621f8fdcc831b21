package billing

import "errors"

var (
	// ErrDuplicateReference is returned when a payment reference was already
	// recorded. Gateway callbacks replaying the same reference hit this.
	ErrDuplicateReference = errors.New("payment reference already recorded")

	// ErrAmbiguousTarget is returned when a transaction names more than one
	// of event, subscription and ticket.
	ErrAmbiguousTarget = errors.New("payment transaction may target at most one of event, subscription or ticket")

	// ErrDuplicateTransfer is returned when a payout reuses a transfer ID.
	ErrDuplicateTransfer = errors.New("paystack transfer id already recorded")

	// ErrPayoutNotPending is returned when dispatching a payout that already
	// settled.
	ErrPayoutNotPending = errors.New("payout is not pending")

	// ErrRetriesExhausted is returned when dispatching a payout that failed
	// terminally after using up the platform retry budget.
	ErrRetriesExhausted = errors.New("payout retry attempts exhausted")

	// ErrInvalidInvoiceStatus is returned when an invoice status change does
	// not apply to the invoice's current status.
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status transition")

	// ErrReferralNotFound is returned when recording a charge against an
	// unknown or inactive referral code.
	ErrReferralNotFound = errors.New("referral link not found")
)
