// Package ledger owns every wallet mutation. Each credit or debit appends
// exactly one immutable entry and updates the denormalized balance under a
// row lock, in one database transaction, so the signed sum of a user's
// entries always reconstructs the wallet balances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"investplus/internal/models"
	"investplus/internal/repositories"
	"investplus/internal/repositories/cache"
)

// Service is the ledger contract. ApplyIn is the transaction-scoped core:
// the investment and request services call it with their own tx-bound
// repository so the ledger mutation commits or aborts with theirs.
type Service interface {
	Credit(ctx context.Context, op Operation) (*models.LedgerEntry, error)
	Debit(ctx context.Context, op Operation) (*models.LedgerEntry, error)
	ApplyIn(ctx context.Context, repo repositories.LedgerRepository, op Operation) (*models.LedgerEntry, error)

	BalanceFor(ctx context.Context, userID uint) (*models.Wallet, error)
	EntriesFor(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, int64, error)
	Reconcile(ctx context.Context, userID uint) (*ReconcileReport, error)
}

type service struct {
	repo    repositories.LedgerRepository
	cache   *cache.CacheService
	config  Config
	metrics MetricsCollector
}

// NewService creates a new ledger service.
func NewService(repo repositories.LedgerRepository, cache *cache.CacheService, config Config, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = DefaultTimeout
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{repo: repo, cache: cache, config: config, metrics: metrics}
}

func (s *service) Credit(ctx context.Context, op Operation) (*models.LedgerEntry, error) {
	if !models.IsCredit(op.Type) {
		return nil, ErrInvalidEntryType
	}
	return s.apply(ctx, op)
}

func (s *service) Debit(ctx context.Context, op Operation) (*models.LedgerEntry, error) {
	if models.IsCredit(op.Type) {
		return nil, ErrInvalidEntryType
	}
	return s.apply(ctx, op)
}

func (s *service) apply(ctx context.Context, op Operation) (*models.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	var entry *models.LedgerEntry
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		var applyErr error
		entry, applyErr = s.applyLocked(ctx, tx, op)
		return applyErr
	})
	if err != nil {
		s.metrics.RecordError(op.Type, errKind(err))
		return nil, s.translate(err)
	}

	s.invalidate(ctx, op.UserID)
	s.metrics.RecordOperation(op.Type, op.Amount)
	return entry, nil
}

// ApplyIn runs the mutation against an already-open transaction, under the
// caller's deadline. Cache invalidation is the caller's concern once its
// transaction commits; the sign convention and balance checks are identical
// to the standalone path.
func (s *service) ApplyIn(ctx context.Context, repo repositories.LedgerRepository, op Operation) (*models.LedgerEntry, error) {
	entry, err := s.applyLocked(ctx, repo, op)
	if err != nil {
		s.metrics.RecordError(op.Type, errKind(err))
		return nil, s.translate(err)
	}
	s.metrics.RecordOperation(op.Type, op.Amount)
	return entry, nil
}

func (s *service) applyLocked(ctx context.Context, repo repositories.LedgerRepository, op Operation) (*models.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if op.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if op.Wallet != models.WalletDeposit && op.Wallet != models.WalletWithdrawable {
		return nil, ErrInvalidWallet
	}
	if op.Reference == "" {
		return nil, fmt.Errorf("%w: missing reference", ErrInvalidEntryType)
	}

	wallet, err := repo.WalletForUpdate(ctx, op.UserID)
	if err != nil {
		return nil, err
	}

	signed := op.Amount
	if !models.IsCredit(op.Type) {
		if wallet.BalanceFor(op.Wallet) < op.Amount {
			return nil, ErrInsufficientFunds
		}
		signed = -op.Amount
	}

	entry := &models.LedgerEntry{
		UserID:    op.UserID,
		Wallet:    op.Wallet,
		Type:      op.Type,
		Amount:    signed,
		Reference: op.Reference,
		RefID:     op.RefID,
	}
	if err := repo.AppendEntry(ctx, entry); err != nil {
		return nil, err
	}

	wallet.SetBalance(op.Wallet, wallet.BalanceFor(op.Wallet)+signed)
	if err := repo.SaveWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) BalanceFor(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
	}

	wallet, err := s.repo.WalletFor(ctx, userID)
	if err != nil {
		return nil, s.translate(err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, wallet); err != nil {
			log.Printf("failed to cache wallet for user %d: %v", userID, err)
		}
	}
	return wallet, nil
}

func (s *service) EntriesFor(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	entries, total, err := s.repo.EntriesFor(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, s.translate(err)
	}
	return entries, total, nil
}

// Reconcile recomputes both wallet balances from the ledger and reports any
// drift. Drift means a bug: balances are only ever written alongside an
// entry, in the same transaction.
func (s *service) Reconcile(ctx context.Context, userID uint) (*ReconcileReport, error) {
	wallet, err := s.repo.WalletFor(ctx, userID)
	if err != nil {
		return nil, s.translate(err)
	}
	depositSum, err := s.repo.SumEntries(ctx, userID, models.WalletDeposit)
	if err != nil {
		return nil, s.translate(err)
	}
	withdrawableSum, err := s.repo.SumEntries(ctx, userID, models.WalletWithdrawable)
	if err != nil {
		return nil, s.translate(err)
	}

	return &ReconcileReport{
		UserID:              userID,
		DepositBalance:      wallet.DepositBalance,
		DepositLedgerSum:    depositSum,
		WithdrawableBalance: wallet.WithdrawableBalance,
		WithdrawableSum:     withdrawableSum,
		Consistent: wallet.DepositBalance == depositSum &&
			wallet.WithdrawableBalance == withdrawableSum,
	}, nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		log.Printf("failed to invalidate wallet cache for user %d: %v", userID, err)
	}
}

// translate maps storage errors onto the service taxonomy. Deadline and
// cancellation failures become ErrTransient so callers know a retry is safe.
func (s *service) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidWallet),
		errors.Is(err, ErrInvalidEntryType),
		errors.Is(err, repositories.ErrWalletNotFound):
		return err
	case errors.Is(err, repositories.ErrDuplicateReference):
		return ErrDuplicateReference
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrTransient, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
}

func errKind(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, repositories.ErrDuplicateReference), errors.Is(err, ErrDuplicateReference):
		return "duplicate_reference"
	default:
		return "storage"
	}
}
