// Package referral pays the one-time commission a referrer earns when
// someone they brought in purchases a plan.
package referral

import (
	"context"
	"errors"
	"fmt"
	"log"

	"investplus/internal/models"
	"investplus/internal/repositories"
	"investplus/internal/services/ledger"
)

// Config holds referral policy.
type Config struct {
	// CommissionPercent of the investment price credited to the referrer.
	CommissionPercent float64
	// BaseURL is the public site root used to build referral links.
	BaseURL string
}

const DefaultCommissionPercent = 10.0

// Service is the referral contract. PayCommission runs inside the caller's
// purchase transaction so the commission commits or aborts with it.
type Service interface {
	PayCommission(ctx context.Context, invRepo repositories.InvestmentRepository, ledRepo repositories.LedgerRepository, buyer *models.User, inv *models.Investment) error
	Link(user *models.User) string
}

type service struct {
	users  repositories.UserRepository
	ledger ledger.Service
	config Config
}

func NewService(users repositories.UserRepository, ledgerSvc ledger.Service, config Config) Service {
	if users == nil {
		panic("user repo is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if config.CommissionPercent == 0 {
		config.CommissionPercent = DefaultCommissionPercent
	}
	return &service{users: users, ledger: ledgerSvc, config: config}
}

// PayCommission credits the buyer's referrer, at most once per investment.
// Two guards make it idempotent: the referral_paid compare-and-swap on the
// investment and the unique ledger reference. A buyer without a referrer is
// a no-op, not an error.
func (s *service) PayCommission(ctx context.Context, invRepo repositories.InvestmentRepository, ledRepo repositories.LedgerRepository, buyer *models.User, inv *models.Investment) error {
	if buyer.ReferredBy == nil {
		return nil
	}

	referrer, err := s.users.GetByID(ctx, *buyer.ReferredBy)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			log.Printf("referrer %d for user %d no longer exists, skipping commission", *buyer.ReferredBy, buyer.ID)
			return nil
		}
		return fmt.Errorf("failed to resolve referrer: %w", err)
	}

	applied, err := invRepo.MarkReferralPaid(ctx, inv.ID)
	if err != nil {
		return err
	}
	if !applied {
		return nil // commission already paid for this investment
	}

	commission := inv.Price * s.config.CommissionPercent / 100
	_, err = s.ledger.ApplyIn(ctx, ledRepo, ledger.Operation{
		UserID:    referrer.ID,
		Wallet:    models.WalletWithdrawable,
		Amount:    commission,
		Type:      models.EntryReferralCredit,
		Reference: fmt.Sprintf("referral:%d", inv.ID),
		RefID:     inv.ID,
	})
	if errors.Is(err, ledger.ErrDuplicateReference) {
		return nil
	}
	return err
}

// Link builds the deterministic signup URL for a user's referral code.
func (s *service) Link(user *models.User) string {
	return fmt.Sprintf("%s/register?ref=%d", s.config.BaseURL, user.ReferralCode())
}
