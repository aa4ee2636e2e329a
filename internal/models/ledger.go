package models

import "time"

// Ledger entry types. The sign convention is fixed per type: credits are
// stored with positive amounts, debits with negative amounts, so the signed
// sum of a user's entries per wallet reconstructs the balance.
const (
	EntryPurchaseDebit   = "purchase_debit"
	EntryClaimCredit     = "claim_credit"
	EntryReferralCredit  = "referral_credit"
	EntryWithdrawalDebit = "withdrawal_debit"
	EntryRechargeCredit  = "recharge_credit"
	EntrySignupCredit    = "signup_credit"
	EntryAdjustCredit    = "adjust_credit"
	EntryAdjustDebit     = "adjust_debit"
)

// LedgerEntry is an immutable record of one wallet mutation. Rows are only
// ever inserted. Reference is the idempotency key: replays of the same
// logical operation collide on the unique index instead of double-posting.
type LedgerEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Wallet    string    `gorm:"size:20;not null" json:"wallet"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Amount    float64   `gorm:"not null" json:"amount"` // signed
	Reference string    `gorm:"size:80;uniqueIndex;not null" json:"reference"`
	RefID     uint      `gorm:"index" json:"ref_id"` // originating investment/withdrawal/recharge id
	CreatedAt time.Time `json:"created_at"`
}

// IsCredit reports whether the entry type credits the wallet.
func IsCredit(entryType string) bool {
	switch entryType {
	case EntryClaimCredit, EntryReferralCredit, EntryRechargeCredit,
		EntrySignupCredit, EntryAdjustCredit:
		return true
	}
	return false
}
