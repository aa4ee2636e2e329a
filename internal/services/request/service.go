// Package request implements the admin-settled withdrawal and recharge
// workflows. Money never moves at submission time: the ledger is touched
// only when an admin approves, inside the same transaction that flips the
// request out of pending.
package request

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
)

// Service is the request workflow contract.
type Service interface {
	SubmitWithdrawal(ctx context.Context, userID uint, in WithdrawalInput) (*models.WithdrawalRequest, error)
	SubmitRecharge(ctx context.Context, userID uint, in RechargeInput) (*models.RechargeRequest, error)

	WithdrawalsFor(ctx context.Context, userID uint) ([]models.WithdrawalRequest, error)
	RechargesFor(ctx context.Context, userID uint) ([]models.RechargeRequest, error)
	PendingWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error)
	PendingRecharges(ctx context.Context) ([]models.RechargeRequest, error)

	ApproveWithdrawal(ctx context.Context, id, adminID uint) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id, adminID uint) (*models.WithdrawalRequest, error)
	ApproveRecharge(ctx context.Context, id, adminID uint) (*models.RechargeRequest, error)
	RejectRecharge(ctx context.Context, id, adminID uint) (*models.RechargeRequest, error)
}

type service struct {
	requests repositories.RequestRepository
	ledger   ledger.Service
	cache    *cache.CacheService
	config   Config
}

func NewService(requests repositories.RequestRepository, ledgerSvc ledger.Service, cacheSvc *cache.CacheService, config Config) Service {
	if requests == nil {
		panic("request repo is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if config.MinWithdrawal == 0 {
		config.MinWithdrawal = DefaultMinWithdrawal
	}
	if config.GstPercent == 0 {
		config.GstPercent = DefaultGstPercent
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = ledger.DefaultTimeout
	}
	return &service{requests: requests, ledger: ledgerSvc, cache: cacheSvc, config: config}
}

func (s *service) SubmitWithdrawal(ctx context.Context, userID uint, in WithdrawalInput) (*models.WithdrawalRequest, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Amount < s.config.MinWithdrawal {
		return nil, fmt.Errorf("%w: minimum is %.2f", ErrAmountBelowMinimum, s.config.MinWithdrawal)
	}
	if in.Method == "" || in.Details == "" {
		return nil, ErrMissingPayoutDetails
	}

	// Balance is checked again at approval; this early check just rejects
	// requests that cannot possibly succeed.
	wallet, err := s.ledger.BalanceFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.WithdrawableBalance < in.Amount {
		return nil, ledger.ErrInsufficientFunds
	}

	gst := in.Amount * s.config.GstPercent / 100
	req := &models.WithdrawalRequest{
		UserID:    userID,
		Amount:    in.Amount,
		GstAmount: gst,
		NetAmount: in.Amount - gst,
		Method:    in.Method,
		Details:   in.Details,
		Status:    models.RequestPending,
	}
	if err := s.requests.CreateWithdrawal(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) SubmitRecharge(ctx context.Context, userID uint, in RechargeInput) (*models.RechargeRequest, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.UTR == "" {
		return nil, ErrMissingUTR
	}

	req := &models.RechargeRequest{
		UserID: userID,
		Amount: in.Amount,
		UTR:    in.UTR,
		Status: models.RequestPending,
	}
	if err := s.requests.CreateRecharge(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) WithdrawalsFor(ctx context.Context, userID uint) ([]models.WithdrawalRequest, error) {
	return s.requests.WithdrawalsByUser(ctx, userID)
}

func (s *service) RechargesFor(ctx context.Context, userID uint) ([]models.RechargeRequest, error) {
	return s.requests.RechargesByUser(ctx, userID)
}

func (s *service) PendingWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return s.requests.PendingWithdrawals(ctx)
}

func (s *service) PendingRecharges(ctx context.Context) ([]models.RechargeRequest, error) {
	return s.requests.PendingRecharges(ctx)
}

// ApproveWithdrawal settles a pending withdrawal and debits the user's
// withdrawable wallet for the full requested amount in the same transaction.
// An insufficient balance aborts the whole thing: the request stays pending
// so the admin can retry or reject.
func (s *service) ApproveWithdrawal(ctx context.Context, id, adminID uint) (*models.WithdrawalRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	req, err := s.getWithdrawal(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.requests.ExecuteInTransaction(ctx, func(reqTx repositories.RequestRepository, ledTx repositories.LedgerRepository) error {
		settled, err := reqTx.SettleWithdrawal(ctx, id, models.RequestApproved, adminID, now)
		if err != nil {
			return err
		}
		if !settled {
			return ErrInvalidStateTransition
		}
		_, err = s.ledger.ApplyIn(ctx, ledTx, ledger.Operation{
			UserID:    req.UserID,
			Wallet:    models.WalletWithdrawable,
			Amount:    req.Amount,
			Type:      models.EntryWithdrawalDebit,
			Reference: fmt.Sprintf("withdrawal:%d", req.ID),
			RefID:     req.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	return s.getWithdrawal(ctx, id)
}

// RejectWithdrawal flips a pending withdrawal to rejected. No ledger entry:
// submission never reserved funds, so there is nothing to return.
func (s *service) RejectWithdrawal(ctx context.Context, id, adminID uint) (*models.WithdrawalRequest, error) {
	settled, err := s.requests.SettleWithdrawal(ctx, id, models.RequestRejected, adminID, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !settled {
		return nil, ErrInvalidStateTransition
	}
	return s.getWithdrawal(ctx, id)
}

// ApproveRecharge settles a pending recharge and credits the user's deposit
// wallet in the same transaction.
func (s *service) ApproveRecharge(ctx context.Context, id, adminID uint) (*models.RechargeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	req, err := s.getRecharge(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.requests.ExecuteInTransaction(ctx, func(reqTx repositories.RequestRepository, ledTx repositories.LedgerRepository) error {
		settled, err := reqTx.SettleRecharge(ctx, id, models.RequestApproved, adminID, now)
		if err != nil {
			return err
		}
		if !settled {
			return ErrInvalidStateTransition
		}
		_, err = s.ledger.ApplyIn(ctx, ledTx, ledger.Operation{
			UserID:    req.UserID,
			Wallet:    models.WalletDeposit,
			Amount:    req.Amount,
			Type:      models.EntryRechargeCredit,
			Reference: fmt.Sprintf("recharge:%d", req.ID),
			RefID:     req.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	return s.getRecharge(ctx, id)
}

func (s *service) RejectRecharge(ctx context.Context, id, adminID uint) (*models.RechargeRequest, error) {
	settled, err := s.requests.SettleRecharge(ctx, id, models.RequestRejected, adminID, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !settled {
		return nil, ErrInvalidStateTransition
	}
	return s.getRecharge(ctx, id)
}

func (s *service) getWithdrawal(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	req, err := s.requests.GetWithdrawal(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *service) getRecharge(ctx context.Context, id uint) (*models.RechargeRequest, error) {
	req, err := s.requests.GetRecharge(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		log.Printf("failed to invalidate wallet cache for user %d: %v", userID, err)
	}
}
