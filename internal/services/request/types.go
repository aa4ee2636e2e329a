package request

import "time"

// Config holds the withdrawal policy.
type Config struct {
	// MinWithdrawal is the smallest amount a user may request.
	MinWithdrawal float64
	// GstPercent is deducted from the requested amount; the user receives
	// the remainder. The ledger debit is always the full amount.
	GstPercent        float64
	ProcessingTimeout time.Duration
}

const (
	DefaultMinWithdrawal = 100.0
	DefaultGstPercent    = 18.0
)

// WithdrawalInput is a user's payout request before policy is applied.
type WithdrawalInput struct {
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Details string  `json:"details"`
}

// RechargeInput is a user's manual deposit claim.
type RechargeInput struct {
	Amount float64 `json:"amount"`
	UTR    string  `json:"utr"`
}
