package accounting

import (
	"fmt"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateBalancedEntries checks the double-entry invariant over a set of
// ledger entries: every entry carries exactly one non-zero side, no side is
// negative, and per currency the debit sum equals the credit sum.
// This runs before any write is attempted; a failure here is a defect in the
// caller, not bad user input.
func ValidateBalancedEntries(entries []domain.LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("transaction must have at least two entries, got %d", len(entries))
	}

	zero := decimal.Zero
	debitSums := make(map[string]decimal.Decimal)
	creditSums := make(map[string]decimal.Decimal)

	for _, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("entry %s carries a negative amount", e.EntryID)
		}
		debitSet := e.Debit.GreaterThan(zero)
		creditSet := e.Credit.GreaterThan(zero)
		if debitSet == creditSet {
			return fmt.Errorf("entry %s must have exactly one of debit or credit set", e.EntryID)
		}
		if e.Currency == "" {
			return fmt.Errorf("entry %s is missing a currency code", e.EntryID)
		}
		debitSums[e.Currency] = debitSums[e.Currency].Add(e.Debit)
		creditSums[e.Currency] = creditSums[e.Currency].Add(e.Credit)
	}

	for currency, debitSum := range debitSums {
		if !debitSum.Equal(creditSums[currency]) {
			return fmt.Errorf("entries do not balance for %s: debits %s, credits %s",
				currency, debitSum.String(), creditSums[currency].String())
		}
	}
	for currency, creditSum := range creditSums {
		if _, ok := debitSums[currency]; !ok && creditSum.GreaterThan(zero) {
			return fmt.Errorf("entries do not balance for %s: debits 0, credits %s",
				currency, creditSum.String())
		}
	}

	return nil
}

// SumEntries aggregates the debit and credit totals of a set of entries.
func SumEntries(entries []domain.LedgerEntry) domain.EntryTotals {
	totals := domain.EntryTotals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, e := range entries {
		totals.Debit = totals.Debit.Add(e.Debit)
		totals.Credit = totals.Credit.Add(e.Credit)
	}
	return totals
}
