package models

import (
	"time"
)

// Payment statuses
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// Payment package types
const (
	PackageBasic   = "BASIC"
	PackagePremium = "PREMIUM"
	PackageFamily  = "FAMILY"
)

// Payment is a subscription payment record for a user. The status is updated
// when the external payment provider reports a result; no provider call is
// made from this process.
type Payment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	UserID          int64     `gorm:"not null;index;column:user_id" json:"user_id"`
	PackageType     string    `gorm:"size:20;check:package_type IN ('BASIC', 'PREMIUM', 'FAMILY');not null;column:package_type" json:"package_type"`
	Amount          float64   `gorm:"not null;column:amount" json:"amount"`
	StartDate       time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate         time.Time `gorm:"column:end_date" json:"end_date"`
	Status          string    `gorm:"size:10;check:status IN ('Pending', 'Completed', 'Failed');not null;column:status" json:"status"`
	TransactionCode string    `gorm:"size:64;unique;column:transaction_code" json:"transaction_code"`
	CreatedAt       time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	User            User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Payment) TableName() string {
	return "payment"
}

// IsValidPaymentStatus reports whether status is a known payment status.
func IsValidPaymentStatus(status string) bool {
	return status == PaymentPending || status == PaymentCompleted || status == PaymentFailed
}
