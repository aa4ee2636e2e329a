package investment

import "errors"

// Service errors
var (
	ErrNotFound            = errors.New("investment not found")
	ErrNotOwner            = errors.New("investment belongs to another user")
	ErrAlreadyClaimedToday = errors.New("daily income already claimed today")
	ErrInvestmentExhausted = errors.New("investment has no days left")
	ErrPlanUnavailable     = errors.New("product plan is not available")
)
