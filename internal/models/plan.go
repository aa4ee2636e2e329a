package models

import "time"

// ProductPlan is a catalog entry. Investments copy its terms at purchase
// time, so editing a plan never changes what existing investors earn.
type ProductPlan struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category     string    `gorm:"size:50;default:'beginner'" json:"category"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DailyIncome  float64   `gorm:"type:decimal(10,2);not null" json:"daily_income"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Status       string    `gorm:"default:'active'" json:"status"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TotalReturn is the payout over the whole plan lifetime.
func (p *ProductPlan) TotalReturn() float64 {
	return p.DailyIncome * float64(p.DurationDays)
}
