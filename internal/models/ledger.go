package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction mirrors the ledger_transactions table. Rows are never
// updated; corrections are new offsetting transactions.
type LedgerTransaction struct {
	TransactionID string
	OccurredAt    time.Time
	CreatedBy     *string
	RideID        *string
	Description   *string
	ExternalRef   *string
	CreatedAt     time.Time
}

// LedgerEntry mirrors the ledger_entries table. The check constraint
// guarantees exactly one of debit/credit is positive.
type LedgerEntry struct {
	EntryID       string
	TransactionID string
	AccountID     int64
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Currency      string
}
