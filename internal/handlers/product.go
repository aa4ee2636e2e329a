package handlers

import (
	"errors"

	"investplus/internal/repositories"
	"investplus/internal/services/demo"
	"investplus/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	plans repositories.PlanRepository
	demo  demo.Service
}

func NewProductHandler(plans repositories.PlanRepository, demoSvc demo.Service) *ProductHandler {
	return &ProductHandler{plans: plans, demo: demoSvc}
}

// ListPlans returns the active catalog. Public, cached.
func (h *ProductHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.plans.ListActive(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"plans": plans})
}

// GetPlan returns one plan by id, active or not.
func (h *ProductHandler) GetPlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid plan ID")
	}
	plan, err := h.plans.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return utils.NotFound(c, "Plan not found")
		}
		return fail(c, err)
	}
	return utils.Success(c, plan)
}

// WithdrawalFeed returns the synthetic landing-page ticker.
func (h *ProductHandler) WithdrawalFeed(c *fiber.Ctx) error {
	count := c.QueryInt("count", 10)
	if count > 50 {
		count = 50
	}
	return utils.Success(c, fiber.Map{"withdrawals": h.demo.Feed(count)})
}
