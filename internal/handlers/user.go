package handlers

import (
	"investplus/internal/models"
	"investplus/internal/services/ledger"
	"investplus/internal/services/referral"
	"investplus/internal/services/user"
	"investplus/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users    user.Service
	ledger   ledger.Service
	referral referral.Service
}

func NewUserHandler(users user.Service, ledgerSvc ledger.Service, referralSvc referral.Service) *UserHandler {
	return &UserHandler{users: users, ledger: ledgerSvc, referral: referralSvc}
}

// Me returns the authenticated user's profile and wallet balances.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	u, err := h.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	wallet, err := h.ledger.BalanceFor(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user":          u,
		"wallet":        wallet,
		"referral_code": u.ReferralCode(),
	})
}

// FinancialSummary returns ledger-derived lifetime totals.
func (h *UserHandler) FinancialSummary(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	summary, err := h.users.Summary(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, summary)
}

// ReferralLink returns the user's shareable signup URL.
func (h *UserHandler) ReferralLink(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	u, err := h.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{
		"referral_code": u.ReferralCode(),
		"referral_link": h.referral.Link(u),
	})
}

// Transactions returns the user's ledger history, newest first.
func (h *UserHandler) Transactions(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := utils.GetPagination(c, 1, 20)

	entries, total, err := h.ledger.EntriesFor(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(entries, p))
}
