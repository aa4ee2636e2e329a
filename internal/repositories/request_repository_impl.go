package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investplus/internal/models"

	"gorm.io/gorm"
)

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreateWithdrawal(ctx context.Context, req *models.WithdrawalRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal request: %w", err)
	}
	return nil
}

func (r *requestRepository) CreateRecharge(ctx context.Context, req *models.RechargeRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create recharge request: %w", err)
	}
	return nil
}

func (r *requestRepository) GetWithdrawal(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal request: %w", err)
	}
	return &req, nil
}

func (r *requestRepository) GetRecharge(ctx context.Context, id uint) (*models.RechargeRequest, error) {
	var req models.RechargeRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get recharge request: %w", err)
	}
	return &req, nil
}

func (r *requestRepository) WithdrawalsByUser(ctx context.Context, userID uint) ([]models.WithdrawalRequest, error) {
	var reqs []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	return reqs, nil
}

func (r *requestRepository) RechargesByUser(ctx context.Context, userID uint) ([]models.RechargeRequest, error) {
	var reqs []models.RechargeRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recharge requests: %w", err)
	}
	return reqs, nil
}

func (r *requestRepository) PendingWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	var reqs []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RequestPending).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}
	return reqs, nil
}

func (r *requestRepository) PendingRecharges(ctx context.Context) ([]models.RechargeRequest, error) {
	var reqs []models.RechargeRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RequestPending).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending recharges: %w", err)
	}
	return reqs, nil
}

func (r *requestRepository) SettleWithdrawal(ctx context.Context, id uint, status string, adminID uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": at,
			"processed_by": adminID,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to settle withdrawal: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *requestRepository) SettleRecharge(ctx context.Context, id uint, status string, adminID uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RechargeRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": at,
			"processed_by": adminID,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to settle recharge: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *requestRepository) ExecuteInTransaction(ctx context.Context, fn func(RequestRepository, LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&requestRepository{db: tx}, &ledgerRepository{db: tx})
	})
}
