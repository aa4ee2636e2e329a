package auth

import "errors"

// Service errors
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrMobileTaken          = errors.New("mobile number already registered")
	ErrInvalidReferralCode  = errors.New("referral code does not match any user")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrTokenVersionMismatch = errors.New("token has been revoked")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrWeakPassword         = errors.New("password does not meet requirements")
)
