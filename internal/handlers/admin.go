package handlers

import (
	"errors"

	"investplus/internal/models"
	"investplus/internal/repositories"
	"investplus/internal/services/ledger"
	"investplus/internal/services/request"
	"investplus/internal/services/user"
	"investplus/internal/utils"
	"investplus/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler covers the back office: user listing, request settlement,
// catalog management, balance adjustments and ledger reconciliation.
type AdminHandler struct {
	users    user.Service
	requests request.Service
	plans    repositories.PlanRepository
	ledger   ledger.Service
}

func NewAdminHandler(users user.Service, requests request.Service, plans repositories.PlanRepository, ledgerSvc ledger.Service) *AdminHandler {
	return &AdminHandler{users: users, requests: requests, plans: plans, ledger: ledgerSvc}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 20)
	users, total, err := h.users.List(c.Context(), p.Offset, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(users, p))
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid user ID")
	}
	u, err := h.users.GetByID(c.Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	summary, err := h.users.Summary(c.Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"user": u, "summary": summary})
}

// AdjustBalance posts a manual ledger correction against a user's wallet.
func (h *AdminHandler) AdjustBalance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Wallet string  `json:"wallet"`
		Amount float64 `json:"amount"`
		Credit bool    `json:"credit"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	entry, err := h.users.AdjustBalance(c.Context(), uint(id), input.Wallet, input.Amount, input.Credit)
	if err != nil {
		return fail(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, entry)
}

// Reconcile recomputes a user's balances from the ledger and reports drift.
func (h *AdminHandler) Reconcile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid user ID")
	}
	report, err := h.ledger.Reconcile(c.Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, report)
}

// Request settlement

func (h *AdminHandler) PendingWithdrawals(c *fiber.Ctx) error {
	reqs, err := h.requests.PendingWithdrawals(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"withdrawals": reqs})
}

func (h *AdminHandler) PendingRecharges(c *fiber.Ctx) error {
	reqs, err := h.requests.PendingRecharges(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"recharges": reqs})
}

func (h *AdminHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	return h.settleWithdrawal(c, true)
}

func (h *AdminHandler) RejectWithdrawal(c *fiber.Ctx) error {
	return h.settleWithdrawal(c, false)
}

func (h *AdminHandler) ApproveRecharge(c *fiber.Ctx) error {
	return h.settleRecharge(c, true)
}

func (h *AdminHandler) RejectRecharge(c *fiber.Ctx) error {
	return h.settleRecharge(c, false)
}

func (h *AdminHandler) settleWithdrawal(c *fiber.Ctx, approve bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid request ID")
	}
	claims := c.Locals("claims").(*models.UserClaims)

	var req *models.WithdrawalRequest
	if approve {
		req, err = h.requests.ApproveWithdrawal(c.Context(), uint(id), claims.UserID)
	} else {
		req, err = h.requests.RejectWithdrawal(c.Context(), uint(id), claims.UserID)
	}
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, req)
}

func (h *AdminHandler) settleRecharge(c *fiber.Ctx, approve bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid request ID")
	}
	claims := c.Locals("claims").(*models.UserClaims)

	var req *models.RechargeRequest
	if approve {
		req, err = h.requests.ApproveRecharge(c.Context(), uint(id), claims.UserID)
	} else {
		req, err = h.requests.RejectRecharge(c.Context(), uint(id), claims.UserID)
	}
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, req)
}

// Catalog management

func (h *AdminHandler) CreatePlan(c *fiber.Ctx) error {
	var plan models.ProductPlan
	if err := c.BodyParser(&plan); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.Plan(&plan)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}
	if plan.Status == "" {
		plan.Status = "active"
	}
	if err := h.plans.Create(c.Context(), &plan); err != nil {
		return fail(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, plan)
}

func (h *AdminHandler) UpdatePlan(c *fiber.Ctx) error {
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

	if err := c.BodyParser(plan); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	plan.ID = uint(id)

	v := validation.New()
	v.Plan(plan)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}
	if err := h.plans.Update(c.Context(), plan); err != nil {
		return fail(c, err)
	}
	return utils.Success(c, plan)
}

func (h *AdminHandler) ListAllPlans(c *fiber.Ctx) error {
	plans, err := h.plans.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"plans": plans})
}
