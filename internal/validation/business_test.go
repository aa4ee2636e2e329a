package validation

import (
	"testing"

	"investplus/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegistration(t *testing.T) {
	tests := []struct {
		name     string
		mobile   string
		password string
		valid    bool
	}{
		{"valid", "9876543210", "Str0ng!pass", true},
		{"short mobile", "98765", "Str0ng!pass", false},
		{"mobile with letters", "98765abc10", "Str0ng!pass", false},
		{"weak password", "9876543210", "password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Registration("Asha", tt.mobile, "asha@example.com", tt.password)
			assert.Equal(t, tt.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}

func TestPlanValidation(t *testing.T) {
	v := New()
	v.Plan(&models.ProductPlan{Name: "Starter", Price: 490, DailyIncome: 80, DurationDays: 9})
	assert.True(t, v.Valid())

	v = New()
	v.Plan(&models.ProductPlan{Name: "", Price: 0, DailyIncome: 0, DurationDays: 0})
	assert.False(t, v.Valid())
	assert.Contains(t, v.Errors, "name")
	assert.Contains(t, v.Errors, "price")
}

func TestRechargeValidation(t *testing.T) {
	v := New()
	v.Recharge(500, "UTR123")
	assert.True(t, v.Valid())

	v = New()
	v.Recharge(0, "")
	assert.False(t, v.Valid())
}
