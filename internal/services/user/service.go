// Package user exposes profile reads, the financial summary and the admin
// balance adjustment.
package user

import (
	"context"
	"errors"
	"fmt"

	"investplus/internal/models"
	"investplus/internal/repositories"
	"investplus/internal/services/ledger"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidWallet = errors.New("unknown wallet kind")
)

// FinancialSummary aggregates a user's money at a glance. Sums come straight
// from the ledger, so they agree with the wallet balances by construction.
type FinancialSummary struct {
	UserID              uint    `json:"user_id"`
	DepositBalance      float64 `json:"deposit_balance"`
	WithdrawableBalance float64 `json:"withdrawable_balance"`
	TotalInvested       float64 `json:"total_invested"`
	TotalEarned         float64 `json:"total_earned"`
	ReferralEarnings    float64 `json:"referral_earnings"`
	TotalWithdrawn      float64 `json:"total_withdrawn"`
	TotalRecharged      float64 `json:"total_recharged"`
}

type Service interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Summary(ctx context.Context, userID uint) (*FinancialSummary, error)

	// List is the admin user listing, newest first.
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)

	// AdjustBalance is the admin escape hatch for support corrections. It
	// posts a regular ledger entry so the adjustment shows up in the user's
	// transaction history and reconciliation.
	AdjustBalance(ctx context.Context, userID uint, wallet string, amount float64, credit bool) (*models.LedgerEntry, error)
}

type service struct {
	users   repositories.UserRepository
	entries repositories.LedgerRepository
	ledger  ledger.Service
}

func NewService(users repositories.UserRepository, entries repositories.LedgerRepository, ledgerSvc ledger.Service) Service {
	if users == nil {
		panic("user repo is required")
	}
	if entries == nil {
		panic("ledger repo is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{users: users, entries: entries, ledger: ledgerSvc}
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Summary(ctx context.Context, userID uint) (*FinancialSummary, error) {
	wallet, err := s.ledger.BalanceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{
		UserID:              userID,
		DepositBalance:      wallet.DepositBalance,
		WithdrawableBalance: wallet.WithdrawableBalance,
	}

	// Debit entries are stored negative; flip the sign for display.
	sums := []struct {
		entryType string
		dst       *float64
		negate    bool
	}{
		{models.EntryPurchaseDebit, &summary.TotalInvested, true},
		{models.EntryClaimCredit, &summary.TotalEarned, false},
		{models.EntryReferralCredit, &summary.ReferralEarnings, false},
		{models.EntryWithdrawalDebit, &summary.TotalWithdrawn, true},
		{models.EntryRechargeCredit, &summary.TotalRecharged, false},
	}
	for _, sum := range sums {
		total, err := s.entries.SumByType(ctx, userID, sum.entryType)
		if err != nil {
			return nil, err
		}
		if sum.negate {
			total = -total
		}
		*sum.dst = total
	}
	return summary, nil
}

func (s *service) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	return s.users.List(ctx, offset, limit)
}

func (s *service) AdjustBalance(ctx context.Context, userID uint, wallet string, amount float64, credit bool) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if wallet != models.WalletDeposit && wallet != models.WalletWithdrawable {
		return nil, ErrInvalidWallet
	}
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	op := ledger.Operation{
		UserID:    userID,
		Wallet:    wallet,
		Amount:    amount,
		Reference: fmt.Sprintf("adjust:%s", uuid.NewString()),
		RefID:     userID,
	}
	if credit {
		op.Type = models.EntryAdjustCredit
		return s.ledger.Credit(ctx, op)
	}
	op.Type = models.EntryAdjustDebit
	return s.ledger.Debit(ctx, op)
}
