package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investplus/internal/models"

	"gorm.io/gorm"
)

type investmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) Create(ctx context.Context, inv *models.Investment) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

func (r *investmentRepository) GetByID(ctx context.Context, id uint) (*models.Investment, error) {
	var inv models.Investment
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return &inv, nil
}

func (r *investmentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Investment, error) {
	var investments []models.Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&investments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}

func (r *investmentRepository) ApplyClaim(ctx context.Context, invID uint, day time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Investment{}).
		Where("id = ? AND days_left > 0 AND (last_claim_date IS NULL OR last_claim_date < ?)", invID, day).
		Updates(map[string]interface{}{
			"days_left":       gorm.Expr("days_left - 1"),
			"last_claim_date": day,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to apply claim: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *investmentRepository) MarkReferralPaid(ctx context.Context, invID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Investment{}).
		Where("id = ? AND referral_paid = ?", invID, false).
		Update("referral_paid", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark referral paid: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *investmentRepository) MarkCompleted(ctx context.Context, invID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Investment{}).
		Where("id = ? AND days_left = 0", invID).
		Update("status", models.InvestmentCompleted).Error
	if err != nil {
		return fmt.Errorf("failed to mark investment completed: %w", err)
	}
	return nil
}

func (r *investmentRepository) ExecuteInTransaction(ctx context.Context, fn func(InvestmentRepository, LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&investmentRepository{db: tx}, &ledgerRepository{db: tx})
	})
}
