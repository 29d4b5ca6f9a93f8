package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction represents one economic event. Immutable once created;
// corrections are recorded as new offsetting transactions.
type LedgerTransaction struct {
	TransactionID string     `json:"transactionID"` // Primary Key (UUID)
	OccurredAt    time.Time  `json:"occurredAt"`
	CreatedBy     *string    `json:"createdBy"`   // Nullable creator reference
	RideID        *string    `json:"rideID"`      // Nullable originating ride
	Description   *string    `json:"description"` // Nullable human description
	ExternalRef   *string    `json:"externalRef"` // Idempotency key, unique when set
	CreatedAt     time.Time  `json:"createdAt"`
}

// LedgerEntry represents one line of a ledger transaction. Exactly one of
// Debit and Credit is non-zero.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> LedgerTransaction
	AccountID     int64           `json:"accountID"`     // FK -> Account
	Debit         decimal.Decimal `json:"debit"`         // Non-negative
	Credit        decimal.Decimal `json:"credit"`        // Non-negative
	Currency      string          `json:"currency"`
}

// EntryTotals holds aggregated debit and credit sums for one transaction.
type EntryTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}
