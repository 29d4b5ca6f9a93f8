package dto

import (
	"time"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for a chart-of-accounts entry.
type AccountResponse struct {
	AccountID int64  `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsActive  bool   `json:"isActive"`
}

// TransactionResponse defines the data returned for a ledger transaction.
// CreatedByEmail and Payment are listing enrichments resolved from the
// creator profile and the captured ride payment when available.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	OccurredAt     time.Time       `json:"occurredAt"`
	CreatedBy      *string         `json:"createdBy,omitempty"`
	CreatedByEmail *string         `json:"createdByEmail,omitempty"`
	RideID         *string         `json:"rideID,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ExternalRef    *string         `json:"externalRef,omitempty"`
	Payment        *PaymentSummary `json:"payment,omitempty"`
}

// PaymentSummary is the captured-payment context attached to a ride-backed
// transaction in listings.
type PaymentSummary struct {
	Amount       decimal.Decimal `json:"amount"`
	ProcessorFee decimal.Decimal `json:"processorFee"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
}

// EntryResponse defines the data returned for a single ledger entry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     int64           `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Currency      string          `json:"currency"`
}

// TotalsRequest asks for aggregated debit/credit sums per transaction.
type TotalsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// TotalsResponse maps transaction ID to its aggregated totals.
type TotalsResponse struct {
	Totals map[string]domain.EntryTotals `json:"totals"`
}

// PostPayoutRequest initiates a driver payout posting. An omitted currency
// falls back to the service default.
type PostPayoutRequest struct {
	DriverID string          `json:"driverID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency"`
	Note     string          `json:"note"`
}

// PostPaymentRequest posts the captured payment of a ride to the ledger.
type PostPaymentRequest struct {
	RideID string `json:"rideID" binding:"required"`
}

// PostingResponse returns the identifier of the created ledger transaction.
type PostingResponse struct {
	TransactionID string `json:"transactionID"`
}

// ListTransactionsParams holds pagination for the transaction listing.
type ListTransactionsParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		IsActive:  a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ToTransactionResponse converts a domain.LedgerTransaction to TransactionResponse.
func ToTransactionResponse(t *domain.LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		OccurredAt:    t.OccurredAt,
		CreatedBy:     t.CreatedBy,
		RideID:        t.RideID,
		Description:   t.Description,
		ExternalRef:   t.ExternalRef,
	}
}

// ToEnrichedTransactionResponses converts transactions and attaches the
// creator email and captured-payment summary where the lookups resolved.
func ToEnrichedTransactionResponses(
	txns []domain.LedgerTransaction,
	profiles map[string]domain.Profile,
	payments map[string]domain.Payment,
) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		resp := ToTransactionResponse(&txns[i])
		if txns[i].CreatedBy != nil {
			if profile, ok := profiles[*txns[i].CreatedBy]; ok {
				email := profile.Email
				resp.CreatedByEmail = &email
			}
		}
		if txns[i].RideID != nil {
			if payment, ok := payments[*txns[i].RideID]; ok {
				resp.Payment = &PaymentSummary{
					Amount:       payment.Amount,
					ProcessorFee: payment.ProcessorFee,
					Currency:     payment.Currency,
					Status:       string(payment.Status),
				}
			}
		}
		responses[i] = resp
	}
	return responses
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		TransactionID: e.TransactionID,
		AccountID:     e.AccountID,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Currency:      e.Currency,
	}
}

// ToEntryResponses converts a slice of domain.LedgerEntry to []EntryResponse.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
