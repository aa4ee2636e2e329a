package models

import "time"

// Request states. Approved and rejected are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// WithdrawalRequest is a user-submitted payout request. Approval is the only
// path that touches the ledger: it debits the withdrawable wallet for the
// full amount. GstAmount and NetAmount are computed once at submission.
type WithdrawalRequest struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	GstAmount   float64    `gorm:"type:decimal(10,2);not null" json:"gst_amount"`
	NetAmount   float64    `gorm:"type:decimal(10,2);not null" json:"net_amount"`
	Method      string     `gorm:"size:30;not null" json:"method"`
	Details     string     `gorm:"size:255;not null" json:"details"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *uint      `json:"processed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}

// RechargeRequest is a user-submitted deposit claim identified by the bank
// transfer UTR. Approval credits the deposit wallet.
type RechargeRequest struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	UTR         string     `gorm:"size:64;not null" json:"utr"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *uint      `json:"processed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}
