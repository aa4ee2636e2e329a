package repositories

import (
	"context"
	"errors"
	"time"

	"investplus/internal/models"
)

var ErrInvestmentNotFound = errors.New("investment not found")

// InvestmentRepository defines investment persistence. ApplyClaim and
// MarkReferralPaid are compare-and-swap updates: they report whether the row
// actually changed, which is how racing duplicate requests are rejected
// without a read-then-write window.
type InvestmentRepository interface {
	Create(ctx context.Context, inv *models.Investment) error
	GetByID(ctx context.Context, id uint) (*models.Investment, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Investment, error)

	// ApplyClaim decrements days_left and stamps last_claim_date in one
	// statement, guarded on days_left > 0 and last_claim_date < day.
	ApplyClaim(ctx context.Context, invID uint, day time.Time) (bool, error)

	// MarkReferralPaid flips referral_paid only if it is still false.
	MarkReferralPaid(ctx context.Context, invID uint) (bool, error)

	MarkCompleted(ctx context.Context, invID uint) error

	// ExecuteInTransaction runs fn with transaction-scoped investment and
	// ledger repositories sharing one database transaction bounded by ctx.
	ExecuteInTransaction(ctx context.Context, fn func(InvestmentRepository, LedgerRepository) error) error
}
