package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string `gorm:"not null"`
	Mobile              string `gorm:"uniqueIndex;not null"` // 10-digit login identifier
	Email               string `gorm:"index"` // optional, mobile is the login identifier
	Password            string `gorm:"not null" json:"-"`
	Role                string `gorm:"default:'user'"`
	Status              string `gorm:"default:'active'"`
	ReferredBy          *uint  `gorm:"index;default:null"` // back-reference to the referring user
	TokenVersion        int    `gorm:"default:1"`
	FailedLoginAttempts int    `gorm:"default:0"`
	LastLoginAt         time.Time
	Wallet              *Wallet `gorm:"foreignKey:UserID"`
}

// ReferralCode is the deterministic code handed out in referral links.
// The numeric user id doubles as the code, matching what registration accepts.
func (u *User) ReferralCode() uint {
	return u.ID
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
