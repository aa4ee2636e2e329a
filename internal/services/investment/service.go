// Package investment implements the plan purchase flow and the daily
// income accrual engine. Accrual is request-driven: days_left moves only
// when a claim lands, never from a background job.
package investment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"investplus/internal/models"
	"investplus/internal/repositories"
	"investplus/internal/repositories/cache"
	"investplus/internal/services/ledger"
	"investplus/internal/services/referral"

	"github.com/google/uuid"
)

// Service is the investment contract.
type Service interface {
	// Purchase buys a plan for the user: debits the deposit wallet,
	// snapshots the plan terms and pays the referral commission, all in
	// one transaction.
	Purchase(ctx context.Context, userID, planID uint) (*models.Investment, error)

	// Claim collects one day of income as of the given server time.
	Claim(ctx context.Context, userID, invID uint, asOf time.Time) (*models.Investment, error)

	// List returns the user's investments with derived view fields.
	List(ctx context.Context, userID uint) ([]View, error)
}

type service struct {
	investments repositories.InvestmentRepository
	plans       repositories.PlanRepository
	users       repositories.UserRepository
	ledger      ledger.Service
	referral    referral.Service
	cache       *cache.CacheService
	timeout     time.Duration
}

func NewService(
	investments repositories.InvestmentRepository,
	plans repositories.PlanRepository,
	users repositories.UserRepository,
	ledgerSvc ledger.Service,
	referralSvc referral.Service,
	cacheSvc *cache.CacheService,
	timeout time.Duration,
) Service {
	if investments == nil || plans == nil || users == nil {
		panic("repositories are required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if referralSvc == nil {
		panic("referral service is required")
	}
	if timeout == 0 {
		timeout = ledger.DefaultTimeout
	}
	return &service{
		investments: investments,
		plans:       plans,
		users:       users,
		ledger:      ledgerSvc,
		referral:    referralSvc,
		cache:       cacheSvc,
		timeout:     timeout,
	}
}

func (s *service) Purchase(ctx context.Context, userID, planID uint) (*models.Investment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, ErrPlanUnavailable
		}
		return nil, err
	}
	if plan.Status != "active" {
		return nil, ErrPlanUnavailable
	}

	buyer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	inv := &models.Investment{
		UserID:       userID,
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		OrderID:      uuid.NewString(),
		Price:        plan.Price,
		DailyIncome:  plan.DailyIncome,
		DurationDays: plan.DurationDays,
		DaysLeft:     plan.DurationDays,
		PurchaseDate: DateOnly(time.Now()),
		Status:       models.InvestmentRunning,
	}

	err = s.investments.ExecuteInTransaction(ctx, func(invTx repositories.InvestmentRepository, ledTx repositories.LedgerRepository) error {
		if err := invTx.Create(ctx, inv); err != nil {
			return err
		}
		if _, err := s.ledger.ApplyIn(ctx, ledTx, ledger.Operation{
			UserID:    userID,
			Wallet:    models.WalletDeposit,
			Amount:    plan.Price,
			Type:      models.EntryPurchaseDebit,
			Reference: "purchase:" + inv.OrderID,
			RefID:     inv.ID,
		}); err != nil {
			return err
		}
		return s.referral.PayCommission(ctx, invTx, ledTx, buyer, inv)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallets(ctx, buyer)
	return inv, nil
}

func (s *service) Claim(ctx context.Context, userID, invID uint, asOf time.Time) (*models.Investment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	inv, err := s.investments.GetByID(ctx, invID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvestmentNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if inv.UserID != userID {
		return nil, ErrNotOwner
	}

	day := DateOnly(asOf)
	err = s.investments.ExecuteInTransaction(ctx, func(invTx repositories.InvestmentRepository, ledTx repositories.LedgerRepository) error {
		applied, err := invTx.ApplyClaim(ctx, inv.ID, day)
		if err != nil {
			return err
		}
		if !applied {
			// The guard rejected the update: either the investment ran
			// out of days or today's income was already collected.
			current, err := invTx.GetByID(ctx, inv.ID)
			if err != nil {
				return err
			}
			if current.Exhausted() {
				return ErrInvestmentExhausted
			}
			return ErrAlreadyClaimedToday
		}

		if _, err := s.ledger.ApplyIn(ctx, ledTx, ledger.Operation{
			UserID:    userID,
			Wallet:    models.WalletWithdrawable,
			Amount:    inv.DailyIncome,
			Type:      models.EntryClaimCredit,
			Reference: fmt.Sprintf("claim:%d:%s", inv.ID, day.Format(time.DateOnly)),
			RefID:     inv.ID,
		}); err != nil {
			return err
		}
		return invTx.MarkCompleted(ctx, inv.ID)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
			log.Printf("failed to invalidate wallet cache for user %d: %v", userID, err)
		}
	}
	return s.investments.GetByID(ctx, invID)
}

func (s *service) List(ctx context.Context, userID uint) ([]View, error) {
	investments, err := s.investments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := DateOnly(time.Now())
	views := make([]View, 0, len(investments))
	for _, inv := range investments {
		views = append(views, View{
			Investment:   inv,
			ClaimedToday: inv.ClaimedOn(today),
			TotalEarned:  float64(inv.DurationDays-inv.DaysLeft) * inv.DailyIncome,
		})
	}
	return views, nil
}

func (s *service) invalidateWallets(ctx context.Context, buyer *models.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, buyer.ID); err != nil {
		log.Printf("failed to invalidate wallet cache for user %d: %v", buyer.ID, err)
	}
	if buyer.ReferredBy != nil {
		if err := s.cache.InvalidateWallet(ctx, *buyer.ReferredBy); err != nil {
			log.Printf("failed to invalidate wallet cache for referrer %d: %v", *buyer.ReferredBy, err)
		}
	}
}
