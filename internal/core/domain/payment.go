package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates the processor-side state of a captured charge.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment represents a captured charge for a ride. A payment becomes eligible
// for ledger posting only once its status is succeeded.
type Payment struct {
	PaymentID    string          `json:"paymentID"` // Primary Key (UUID)
	RideID       string          `json:"rideID"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ProcessorFee decimal.Decimal `json:"processorFee"`
	ProcessorRef string          `json:"processorRef"` // External processor identifier
	Status       PaymentStatus   `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}
