package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the processor-side state of a captured charge.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment mirrors the payments table.
type Payment struct {
	PaymentID    string
	RideID       string
	Amount       decimal.Decimal
	Currency     string
	ProcessorFee decimal.Decimal
	ProcessorRef string
	Status       PaymentStatus
	CreatedAt    time.Time
}
