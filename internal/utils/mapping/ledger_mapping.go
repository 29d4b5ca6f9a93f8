package mapping

import (
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
)

// ToModelLedgerTransaction converts a domain LedgerTransaction to its model.
func ToModelLedgerTransaction(d domain.LedgerTransaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID: d.TransactionID,
		OccurredAt:    d.OccurredAt,
		CreatedBy:     d.CreatedBy,
		RideID:        d.RideID,
		Description:   d.Description,
		ExternalRef:   d.ExternalRef,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLedgerTransaction converts a model LedgerTransaction to its domain form.
func ToDomainLedgerTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID: m.TransactionID,
		OccurredAt:    m.OccurredAt,
		CreatedBy:     m.CreatedBy,
		RideID:        m.RideID,
		Description:   m.Description,
		ExternalRef:   m.ExternalRef,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to its model.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Currency:      d.Currency,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to its domain form.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Currency:      m.Currency,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainLedgerTransactionSlice converts a slice of model transactions to domain form.
func ToDomainLedgerTransactionSlice(ms []models.LedgerTransaction) []domain.LedgerTransaction {
	ds := make([]domain.LedgerTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerTransaction(m)
	}
	return ds
}
