package handlers

import (
	"time"

	"investplus/internal/config"
	"investplus/internal/models"
	"investplus/internal/services/auth"
	"investplus/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. The referral code, when present, must be
// an existing user's numeric id.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	// Accept the code from the ?ref= query too, so referral links work
	// without client-side plumbing.
	if input.ReferralCode == "" {
		input.ReferralCode = c.Query("ref")
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return fail(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"user":          user,
		"referral_code": user.ReferralCode(),
	})
}

// Login authenticates by mobile number and returns JWT tokens.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Mobile == "" || input.Password == "" {
		return utils.BadRequest(c, "Mobile and password are required")
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.Context(), input.Mobile, input.Password)
	if err != nil {
		return fail(c, err)
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":     user.ID,
			"name":   user.Name,
			"mobile": user.Mobile,
			"role":   user.Role,
		},
	})
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&input); err != nil {
			return utils.Unauthorized(c, "Refresh token not provided")
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		return utils.Unauthorized(c, "Refresh token not provided")
	}

	accessToken, newRefreshToken, err := h.authService.RefreshTokens(c.Context(), refreshToken)
	if err != nil {
		return fail(c, err)
	}

	h.setAuthCookies(c, accessToken, newRefreshToken)
	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
	})
}

// Logout bumps the token version, revoking every outstanding token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}
	if err := h.authService.Logout(c.Context(), claims.UserID); err != nil {
		return fail(c, err)
	}

	h.clearAuthCookies(c)
	return utils.Success(c, fiber.Map{"message": "Successfully logged out"})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}
	if err := h.authService.ChangePassword(c.Context(), claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Password changed successfully"})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   15 * 60,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
		SameSite: "Strict",
		MaxAge:   7 * 24 * 60 * 60,
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   config.IsProduction(),
			Path:     "/",
		})
	}
}
