package investment

import (
	"time"

	"investplus/internal/models"
)

// View is an investment plus the fields the client derives its UI from.
type View struct {
	models.Investment
	ClaimedToday bool    `json:"claimed_today"`
	TotalEarned  float64 `json:"total_earned"`
}

// DateOnly truncates t to its UTC calendar day. Claims compare dates, never
// timestamps: one claim per calendar day, on the server's clock.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
