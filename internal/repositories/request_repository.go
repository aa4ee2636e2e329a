package repositories

import (
	"context"
	"errors"
	"time"

	"investplus/internal/models"
)

var ErrRequestNotFound = errors.New("request not found")

// RequestRepository defines withdrawal/recharge request persistence. The
// Settle methods are compare-and-swap transitions out of pending: they
// report false when the request was already settled, which the workflow
// service turns into ErrInvalidStateTransition.
type RequestRepository interface {
	CreateWithdrawal(ctx context.Context, req *models.WithdrawalRequest) error
	CreateRecharge(ctx context.Context, req *models.RechargeRequest) error
	GetWithdrawal(ctx context.Context, id uint) (*models.WithdrawalRequest, error)
	GetRecharge(ctx context.Context, id uint) (*models.RechargeRequest, error)
	WithdrawalsByUser(ctx context.Context, userID uint) ([]models.WithdrawalRequest, error)
	RechargesByUser(ctx context.Context, userID uint) ([]models.RechargeRequest, error)
	PendingWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error)
	PendingRecharges(ctx context.Context) ([]models.RechargeRequest, error)

	SettleWithdrawal(ctx context.Context, id uint, status string, adminID uint, at time.Time) (bool, error)
	SettleRecharge(ctx context.Context, id uint, status string, adminID uint, at time.Time) (bool, error)

	ExecuteInTransaction(ctx context.Context, fn func(RequestRepository, LedgerRepository) error) error
}
