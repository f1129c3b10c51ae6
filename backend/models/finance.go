package models

import "gorm.io/gorm"

// All amounts are integer cents. User balances (total spent, refunded,
// credit balance) are derived by summing these ledgers, never stored.

type Purchase struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null" json:"user_id"`
	CourseID      uint   `gorm:"index" json:"course_id"`
	Amount        int    `gorm:"not null" json:"amount"`
	Status        string `gorm:"default:completed" json:"status"` // pending, completed, failed
	GatewayID     string `json:"gateway_id"`                      // payment gateway charge identifier
	GatewayIntent string `json:"gateway_intent"`
}

type Refund struct {
	gorm.Model
	PurchaseID uint   `gorm:"index;not null" json:"purchase_id"`
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	Amount     int    `gorm:"not null" json:"amount"` // 0 < amount <= purchase amount
	Reason     string `gorm:"not null" json:"reason"` // requested_by_customer, duplicate, fraudulent, other
	Notes      string `json:"notes"`
}

// AccountCredit is a signed ledger entry: positive is a credit, negative a
// debit. Only positive entries are authorable through the admin surface.
type AccountCredit struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	Amount       int    `gorm:"not null" json:"amount"`
	Type         string `gorm:"not null" json:"type"` // goodwill, promotion, refund_credit, adjustment
	Description  string `json:"description"`
	Reference    string `json:"reference"` // internal reference code
	PurchaseID   *uint  `json:"purchase_id"`
	EnrollmentID *uint  `json:"enrollment_id"`
}

var refundReasons = map[string]bool{
	"requested_by_customer": true, "duplicate": true, "fraudulent": true, "other": true,
}

var creditTypes = map[string]bool{
	"goodwill": true, "promotion": true, "refund_credit": true, "adjustment": true,
}

func ValidRefundReason(r string) bool { return refundReasons[r] }

func ValidCreditType(t string) bool { return creditTypes[t] }
