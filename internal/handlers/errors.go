package handlers

import (
	"errors"
	"log"

	"investplus/internal/services/auth"
	"investplus/internal/services/investment"
	"investplus/internal/services/ledger"
	"investplus/internal/services/request"
	"investplus/internal/services/user"
	"investplus/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// fail maps service errors onto stable HTTP codes. Clients branch on the
// "code" field, not the message.
func fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		return utils.Fail(c, status, code, "internal error")
	}
	return utils.Fail(c, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, investment.ErrNotOwner):
		return fiber.StatusForbidden, "NOT_OWNER"
	case errors.Is(err, investment.ErrAlreadyClaimedToday):
		return fiber.StatusConflict, "ALREADY_CLAIMED_TODAY"
	case errors.Is(err, investment.ErrInvestmentExhausted):
		return fiber.StatusConflict, "INVESTMENT_EXHAUSTED"
	case errors.Is(err, investment.ErrPlanUnavailable):
		return fiber.StatusUnprocessableEntity, "PLAN_UNAVAILABLE"
	case errors.Is(err, investment.ErrNotFound),
		errors.Is(err, request.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"
	case errors.Is(err, ledger.ErrDuplicateReference):
		return fiber.StatusConflict, "DUPLICATE_REFERENCE"
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidWallet),
		errors.Is(err, user.ErrInvalidAmount),
		errors.Is(err, user.ErrInvalidWallet),
		errors.Is(err, request.ErrInvalidAmount),
		errors.Is(err, request.ErrAmountBelowMinimum),
		errors.Is(err, request.ErrMissingUTR),
		errors.Is(err, request.ErrMissingPayoutDetails):
		return fiber.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, request.ErrInvalidStateTransition):
		return fiber.StatusConflict, "INVALID_STATE_TRANSITION"
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrTokenVersionMismatch):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, auth.ErrAccountDisabled):
		return fiber.StatusForbidden, "ACCOUNT_DISABLED"
	case errors.Is(err, auth.ErrMobileTaken):
		return fiber.StatusConflict, "MOBILE_TAKEN"
	case errors.Is(err, auth.ErrInvalidReferralCode):
		return fiber.StatusBadRequest, "INVALID_REFERRAL_CODE"
	case errors.Is(err, auth.ErrWeakPassword):
		return fiber.StatusBadRequest, "WEAK_PASSWORD"
	case errors.Is(err, ledger.ErrTransient):
		return fiber.StatusServiceUnavailable, "TRANSIENT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}
