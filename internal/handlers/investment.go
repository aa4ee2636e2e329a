package handlers

import (
	"time"

	"investplus/internal/models"
	"investplus/internal/services/investment"
	"investplus/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type InvestmentHandler struct {
	investments investment.Service
}

func NewInvestmentHandler(investments investment.Service) *InvestmentHandler {
	return &InvestmentHandler{investments: investments}
}

// Purchase buys a plan with deposit-wallet funds.
func (h *InvestmentHandler) Purchase(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		PlanID uint `json:"plan_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.PlanID == 0 {
		return utils.BadRequest(c, "plan_id is required")
	}

	inv, err := h.investments.Purchase(c.Context(), claims.UserID, input.PlanID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, inv)
}

// Claim collects today's income for one investment.
func (h *InvestmentHandler) Claim(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid investment ID")
	}

	inv, err := h.investments.Claim(c.Context(), claims.UserID, uint(id), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, inv)
}

// List returns the user's investments with claim status.
func (h *InvestmentHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	views, err := h.investments.List(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"investments": views})
}
