package request

import "errors"

// Service errors
var (
	ErrNotFound               = errors.New("request not found")
	ErrInvalidStateTransition = errors.New("request is not pending")
	ErrAmountBelowMinimum     = errors.New("withdrawal amount below minimum")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrMissingUTR             = errors.New("recharge UTR is required")
	ErrMissingPayoutDetails   = errors.New("payout method and details are required")
)
