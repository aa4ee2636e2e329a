package repositories

import (
	"context"
	"errors"

	"investplus/internal/models"
)

var ErrPlanNotFound = errors.New("product plan not found")

// PlanRepository defines catalog persistence. Plans are soft-immutable from
// the investor's point of view: investments snapshot the terms, so Update
// only affects future purchases.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.ProductPlan) error
	GetByID(ctx context.Context, id uint) (*models.ProductPlan, error)
	ListActive(ctx context.Context) ([]models.ProductPlan, error)
	List(ctx context.Context) ([]models.ProductPlan, error)
	Update(ctx context.Context, plan *models.ProductPlan) error
}
