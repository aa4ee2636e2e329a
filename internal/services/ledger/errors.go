package ledger

import "errors"

// Service errors
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidWallet      = errors.New("invalid wallet kind")
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrDuplicateReference = errors.New("operation already recorded")

	// ErrTransient marks timeouts and connection failures. Callers may
	// retry with backoff; the idempotency reference makes replays safe.
	ErrTransient = errors.New("transient storage error")
)
