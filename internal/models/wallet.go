package models

import (
	"time"
)

// Wallet kinds. Deposit funds can only buy plans; withdrawable funds are
// eligible for payout once a withdrawal request is approved.
const (
	WalletDeposit      = "deposit"
	WalletWithdrawable = "withdrawable"
)

// Wallet holds the denormalized balances for one user. The ledger is the
// source of truth: the signed sum of a user's entries per wallet kind must
// always equal the matching column here.
type Wallet struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	UserID              uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DepositBalance      float64   `gorm:"not null;default:0" json:"deposit_balance"`
	WithdrawableBalance float64   `gorm:"not null;default:0" json:"withdrawable_balance"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}

// BalanceFor returns the balance of the given wallet kind.
func (w *Wallet) BalanceFor(kind string) float64 {
	if kind == WalletWithdrawable {
		return w.WithdrawableBalance
	}
	return w.DepositBalance
}

// SetBalance overwrites the balance of the given wallet kind.
func (w *Wallet) SetBalance(kind string, amount float64) {
	if kind == WalletWithdrawable {
		w.WithdrawableBalance = amount
		return
	}
	w.DepositBalance = amount
}
