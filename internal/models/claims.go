package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Mobile       string `json:"mobile"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// IsAdmin reports whether the token belongs to an admin account.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == "admin"
}
