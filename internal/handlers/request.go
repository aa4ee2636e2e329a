package handlers

import (
	"investplus/internal/models"
	"investplus/internal/services/request"
	"investplus/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	requests request.Service
}

func NewRequestHandler(requests request.Service) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// SubmitWithdrawal files a payout request for admin review.
func (h *RequestHandler) SubmitWithdrawal(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input request.WithdrawalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	req, err := h.requests.SubmitWithdrawal(c.Context(), claims.UserID, input)
	if err != nil {
		return fail(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, req)
}

// SubmitRecharge files a manual deposit claim identified by UTR.
func (h *RequestHandler) SubmitRecharge(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input request.RechargeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	req, err := h.requests.SubmitRecharge(c.Context(), claims.UserID, input)
	if err != nil {
		return fail(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, req)
}

// MyWithdrawals lists the user's withdrawal requests, newest first.
func (h *RequestHandler) MyWithdrawals(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	reqs, err := h.requests.WithdrawalsFor(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"withdrawals": reqs})
}

// MyRecharges lists the user's recharge requests, newest first.
func (h *RequestHandler) MyRecharges(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	reqs, err := h.requests.RechargesFor(c.Context(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"recharges": reqs})
}
