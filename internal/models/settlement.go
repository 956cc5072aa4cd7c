package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus represents the state of one user's payment for a settlement
type PaymentStatus string

const (
	PaymentUnpaid       PaymentStatus = "UNPAID"
	PaymentPaidReported PaymentStatus = "PAID_REPORTED"
	PaymentConfirmed    PaymentStatus = "CONFIRMED"
)

// PaymentMethod represents how the user paid
type PaymentMethod string

const (
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodPayPay PaymentMethod = "PAYPAY"
)

// ValidPaymentMethod reports whether m is an accepted method
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodBank || m == PaymentMethodPayPay
}

// Settlement is a monetary charge raised against a set of target users,
// either for an event or a general purpose. The target list is fixed at
// creation; title, amount and due date stay editable.
type Settlement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CircleID      uint      `gorm:"index" json:"circle_id"`
	EventID       *uint     `gorm:"index" json:"event_id,omitempty"`
	Title         string    `gorm:"type:varchar(255)" json:"title"`
	Amount        int       `json:"amount"` // smallest currency unit, > 0
	DueAt         time.Time `json:"due_at"`
	TargetUserIDs []uint    `gorm:"serializer:json" json:"target_user_ids"`
	BankInfo      *string   `gorm:"type:text" json:"bank_info,omitempty"`
	PayPayInfo    *string   `gorm:"type:text" json:"paypay_info,omitempty"`

	// Relationships
	Payments []Payment `gorm:"foreignKey:SettlementID" json:"payments,omitempty"`
}

// HasTarget reports whether userID is in the settlement's target list
func (s Settlement) HasTarget(userID uint) bool {
	for _, id := range s.TargetUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Payment is one user's payment-status record against one settlement.
// Exactly one row exists per (settlement, target user); ReportedAt is nil
// iff the status is UNPAID.
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	SettlementID uint          `gorm:"uniqueIndex:idx_payments_settlement_user" json:"settlement_id"`
	UserID       uint          `gorm:"uniqueIndex:idx_payments_settlement_user" json:"user_id"`
	Status       PaymentStatus `gorm:"type:varchar(20);default:'UNPAID'" json:"status"`
	Method       PaymentMethod `gorm:"type:varchar(20)" json:"method,omitempty"`
	Note         string        `gorm:"type:text" json:"note"`
	ReportedAt   *time.Time    `json:"reported_at,omitempty"`

	// Relationships
	Settlement Settlement `gorm:"foreignKey:SettlementID" json:"settlement,omitempty"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// SettlementWithPayment pairs a settlement with one user's payment record.
// A nil payment is equivalent to UNPAID.
type SettlementWithPayment struct {
	Settlement Settlement `json:"settlement"`
	Payment    *Payment   `json:"payment"`
}
