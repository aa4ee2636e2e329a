package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"investplus/internal/models"
	"investplus/internal/repositories/cache"

	"gorm.io/gorm"
)

type planRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewPlanRepository(db *gorm.DB, cache *cache.CacheService) PlanRepository {
	return &planRepository{db: db, cache: cache}
}

func (r *planRepository) Create(ctx context.Context, plan *models.ProductPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id uint) (*models.ProductPlan, error) {
	var plan models.ProductPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

func (r *planRepository) ListActive(ctx context.Context) ([]models.ProductPlan, error) {
	if plans, err := r.cache.GetPlans(ctx); err == nil {
		return plans, nil
	}

	var plans []models.ProductPlan
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	if err := r.cache.CachePlans(ctx, plans); err != nil {
		log.Printf("failed to cache plans: %v", err)
	}
	return plans, nil
}

func (r *planRepository) List(ctx context.Context) ([]models.ProductPlan, error) {
	var plans []models.ProductPlan
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *models.ProductPlan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *planRepository) invalidate(ctx context.Context) {
	if err := r.cache.InvalidatePlans(ctx); err != nil {
		log.Printf("failed to invalidate plan cache: %v", err)
	}
}
