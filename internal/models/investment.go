package models

import "time"

// Investment statuses
const (
	InvestmentRunning   = "running"
	InvestmentCompleted = "completed"
)

// Investment is one purchased plan. Price, DailyIncome and DurationDays are
// copied from the plan at purchase time; later plan edits must not change
// them. DaysLeft only ever decreases, one step per successful claim.
type Investment struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	PlanID        uint       `gorm:"not null;index" json:"plan_id"`
	PlanName      string     `gorm:"size:100;not null" json:"plan_name"`
	OrderID       string     `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	Price         float64    `json:"price"`
	DailyIncome   float64    `json:"daily_income"`
	DurationDays  int        `json:"duration_days"`
	DaysLeft      int        `gorm:"not null" json:"days_left"`
	PurchaseDate  time.Time  `gorm:"not null" json:"purchase_date"`
	LastClaimDate *time.Time `json:"last_claim_date,omitempty"` // UTC date-truncated; nil until first claim
	ReferralPaid  bool       `gorm:"not null;default:false" json:"-"`
	Status        string     `gorm:"default:'running'" json:"status"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

// ClaimedOn reports whether the daily income was already collected on the
// given calendar day.
func (i *Investment) ClaimedOn(day time.Time) bool {
	if i.LastClaimDate == nil {
		return false
	}
	y1, m1, d1 := i.LastClaimDate.UTC().Date()
	y2, m2, d2 := day.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Exhausted reports whether the investment has paid out all its days.
func (i *Investment) Exhausted() bool {
	return i.DaysLeft <= 0
}
