package validation

import (
	"investplus/internal/models"
)

// Registration validates a signup request.
func (v *Validator) Registration(name, mobile, email, password string) {
	v.Required("name", name)
	v.MaxLength("name", name, MaxNameLength)
	v.Phone("mobile", mobile)
	if email != "" {
		v.Email("email", email)
	}
	v.Password("password", password)
}

// Withdrawal validates a payout request against policy.
func (v *Validator) Withdrawal(amount, minAmount float64, method, details string) {
	v.Check(amount >= minAmount, "amount", "below the minimum withdrawal amount")
	v.Required("method", method)
	v.Required("details", details)
	v.MaxLength("details", details, MaxDetailsLength)
}

// Recharge validates a manual deposit claim.
func (v *Validator) Recharge(amount float64, utr string) {
	v.Range("amount", amount, MinRechargeAmount, MaxRechargeAmount)
	v.Required("utr", utr)
	v.MaxLength("utr", utr, MaxUTRLength)
}

// Plan validates an admin-submitted product plan.
func (v *Validator) Plan(p *models.ProductPlan) {
	v.Required("name", p.Name)
	v.MaxLength("name", p.Name, MaxNameLength)
	v.Check(p.Price > 0, "price", "must be positive")
	v.Check(p.DailyIncome > 0, "daily_income", "must be positive")
	v.Check(p.DurationDays > 0, "duration_days", "must be positive")
}
