package ledger

import "time"

// Operation describes one wallet mutation. Amount is always positive; the
// entry type decides the sign the ledger stores.
type Operation struct {
	UserID    uint
	Wallet    string // models.WalletDeposit or models.WalletWithdrawable
	Amount    float64
	Type      string // one of the models.Entry* types
	Reference string // idempotency key, unique across all entries
	RefID     uint   // originating investment/withdrawal/recharge id
}

// Config holds ledger service configuration.
type Config struct {
	// ProcessingTimeout bounds every standalone ledger transaction.
	ProcessingTimeout time.Duration
}

// ReconcileReport compares the denormalized wallet balances against the
// signed sum of the user's ledger entries.
type ReconcileReport struct {
	UserID              uint    `json:"user_id"`
	DepositBalance      float64 `json:"deposit_balance"`
	DepositLedgerSum    float64 `json:"deposit_ledger_sum"`
	WithdrawableBalance float64 `json:"withdrawable_balance"`
	WithdrawableSum     float64 `json:"withdrawable_ledger_sum"`
	Consistent          bool    `json:"consistent"`
}

// Default configuration values
const DefaultTimeout = 10 * time.Second
