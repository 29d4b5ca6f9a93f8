package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
	"github.com/Ernest01982/tuktukeazyadmin/internal/utils/accounting"
	"github.com/Ernest01982/tuktukeazyadmin/internal/utils/pagination"
)

// ledgerService is the accounting engine. It is the only writer of ledger
// transactions: posting rules live here, the store only enforces atomicity
// and the idempotency constraint.
type ledgerService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	paymentRepo     portsrepo.PaymentRepositoryFacade
	driverRepo      portsrepo.DriverRepositoryFacade
	defaultCurrency string
}

// NewLedgerService creates a new LedgerService. Payouts posted without an
// explicit currency use defaultCurrency.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	driverRepo portsrepo.DriverRepositoryFacade,
	defaultCurrency string,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:     accountRepo,
		ledgerRepo:      ledgerRepo,
		paymentRepo:     paymentRepo,
		driverRepo:      driverRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	return accounts, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, page, limit int) ([]domain.LedgerTransaction, error) {
	offset, effectiveLimit := pagination.Normalize(page, limit)
	txns, err := s.ledgerRepo.ListTransactions(ctx, offset, effectiveLimit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list ledger transactions", slog.String("error", err.Error()))
		return nil, err
	}
	return txns, nil
}

func (s *ledgerService) EntriesFor(ctx context.Context, txnID string) ([]domain.LedgerEntry, error) {
	if txnID == "" {
		return nil, fmt.Errorf("%w: transaction ID is required", apperrors.ErrValidation)
	}
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, txnID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch ledger entries", slog.String("transaction_id", txnID), slog.String("error", err.Error()))
		return nil, err
	}
	return entries, nil
}

// PaymentsForRides returns the captured payments of the given rides, keyed
// by ride ID. Rides without a captured payment are absent from the map.
func (s *ledgerService) PaymentsForRides(ctx context.Context, rideIDs []string) (map[string]domain.Payment, error) {
	if len(rideIDs) == 0 {
		return map[string]domain.Payment{}, nil
	}
	payments, err := s.paymentRepo.ListPaymentsByRideIDs(ctx, rideIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch ride payments", slog.String("error", err.Error()))
		return nil, err
	}
	return payments, nil
}

// TotalsFor aggregates per-transaction debit and credit sums. Every requested
// ID appears in the result; transactions without entries report zero totals
// and are logged, since a committed transaction always carries entries.
func (s *ledgerService) TotalsFor(ctx context.Context, txnIDs []string) (map[string]domain.EntryTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if len(txnIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one transaction ID is required", apperrors.ErrValidation)
	}

	totals, err := s.ledgerRepo.TotalsForTransactions(ctx, txnIDs)
	if err != nil {
		logger.Error("Failed to aggregate ledger totals", slog.String("error", err.Error()))
		return nil, err
	}

	for _, id := range txnIDs {
		if _, ok := totals[id]; !ok {
			totals[id] = domain.EntryTotals{Debit: decimal.Zero, Credit: decimal.Zero}
			logger.Warn("No ledger entries found for requested transaction", slog.String("transaction_id", id))
		}
	}
	return totals, nil
}

// PostPayment decomposes a captured ride payment into a balanced transaction:
// cash in transit receives the net amount, processor fees receive the fee,
// ride revenue is credited the gross amount. The ride ID doubles as the
// idempotency key, so a ride is posted at most once.
func (s *ledgerService) PostPayment(ctx context.Context, rideID string, postedBy string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if rideID == "" {
		return nil, fmt.Errorf("%w: ride ID is required", apperrors.ErrValidation)
	}

	payment, err := s.paymentRepo.FindPaymentByRideID(ctx, rideID)
	if err != nil {
		logger.Warn("Payment lookup failed for posting", slog.String("ride_id", rideID), slog.String("error", err.Error()))
		return nil, err
	}
	if payment.Status != domain.PaymentSucceeded {
		return nil, fmt.Errorf("%w: payment for ride %s has status %s, only succeeded payments can be posted", apperrors.ErrValidation, rideID, payment.Status)
	}
	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if payment.ProcessorFee.IsNegative() || payment.ProcessorFee.GreaterThanOrEqual(payment.Amount) {
		return nil, fmt.Errorf("%w: processor fee %s is not within the payment amount %s", apperrors.ErrValidation, payment.ProcessorFee.String(), payment.Amount.String())
	}

	accounts, err := s.resolveAccounts(ctx, domain.AccountCodeCashInTransit, domain.AccountCodeProcessorFees, domain.AccountCodeRideRevenue)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txnID := uuid.NewString()
	externalRef := "ride:" + rideID
	description := fmt.Sprintf("Ride payment %s", rideID)

	net := payment.Amount.Sub(payment.ProcessorFee)
	entries := []domain.LedgerEntry{
		debitEntry(txnID, accounts[domain.AccountCodeCashInTransit].AccountID, net, payment.Currency),
	}
	if payment.ProcessorFee.GreaterThan(decimal.Zero) {
		entries = append(entries, debitEntry(txnID, accounts[domain.AccountCodeProcessorFees].AccountID, payment.ProcessorFee, payment.Currency))
	}
	entries = append(entries, creditEntry(txnID, accounts[domain.AccountCodeRideRevenue].AccountID, payment.Amount, payment.Currency))

	txn := domain.LedgerTransaction{
		TransactionID: txnID,
		OccurredAt:    payment.CreatedAt,
		CreatedBy:     &postedBy,
		RideID:        &rideID,
		Description:   &description,
		ExternalRef:   &externalRef,
		CreatedAt:     now,
	}

	if err := s.post(ctx, txn, entries); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPosted) {
			// Another poster won the race. Return the winning transaction so
			// the caller can point at it instead of retrying blindly.
			if existing, lookupErr := s.ledgerRepo.FindTransactionByExternalRef(ctx, externalRef); lookupErr == nil {
				return existing, err
			}
		}
		return nil, err
	}

	logger.Info("Posted ride payment",
		slog.String("transaction_id", txnID),
		slog.String("ride_id", rideID),
		slog.String("amount", payment.Amount.String()),
		slog.String("fee", payment.ProcessorFee.String()))
	return &txn, nil
}

// PostPayout records a driver payout: the payout expense is debited and bank
// cash is credited. Each request gets a fresh idempotency reference, so
// repeated payouts to the same driver are distinct transactions.
func (s *ledgerService) PostPayout(ctx context.Context, driverID string, amount decimal.Decimal, currency string, note string, postedBy string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if driverID == "" {
		return nil, fmt.Errorf("%w: driver ID is required", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payout amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	if currency == "" {
		currency = s.defaultCurrency
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", apperrors.ErrValidation)
	}

	driver, err := s.driverRepo.FindDriverByID(ctx, driverID)
	if err != nil {
		logger.Warn("Driver lookup failed for payout", slog.String("driver_id", driverID), slog.String("error", err.Error()))
		return nil, err
	}

	accounts, err := s.resolveAccounts(ctx, domain.AccountCodeDriverPayouts, domain.AccountCodeCashBank)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txnID := uuid.NewString()
	externalRef := fmt.Sprintf("payout:%s:%s", driverID, uuid.NewString())
	description := fmt.Sprintf("Driver payout to %s", driver.Name)
	if note != "" {
		description = fmt.Sprintf("%s: %s", description, note)
	}

	entries := []domain.LedgerEntry{
		debitEntry(txnID, accounts[domain.AccountCodeDriverPayouts].AccountID, amount, currency),
		creditEntry(txnID, accounts[domain.AccountCodeCashBank].AccountID, amount, currency),
	}

	txn := domain.LedgerTransaction{
		TransactionID: txnID,
		OccurredAt:    now,
		CreatedBy:     &postedBy,
		Description:   &description,
		ExternalRef:   &externalRef,
		CreatedAt:     now,
	}

	if err := s.post(ctx, txn, entries); err != nil {
		return nil, err
	}

	logger.Info("Posted driver payout",
		slog.String("transaction_id", txnID),
		slog.String("driver_id", driverID),
		slog.String("amount", amount.String()),
		slog.String("currency", currency))
	return &txn, nil
}

// post validates the balance invariant and writes the transaction. An
// unbalanced set of entries here means a posting rule is broken, so it is
// logged loudly and never reaches the store.
func (s *ledgerService) post(ctx context.Context, txn domain.LedgerTransaction, entries []domain.LedgerEntry) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := accounting.ValidateBalancedEntries(entries); err != nil {
		logger.Error("Constructed ledger entries failed balance validation",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", apperrors.ErrUnbalanced, err)
	}

	if err := s.ledgerRepo.CreateTransaction(ctx, txn, entries); err != nil {
		if ref := txn.ExternalRef; ref != nil {
			logger.Warn("Ledger transaction write failed", slog.String("external_ref", *ref), slog.String("error", err.Error()))
		}
		return err
	}
	return nil
}

// resolveAccounts loads the named accounts and fails when any code is absent
// from the chart. A missing code is a deployment defect, not caller input.
func (s *ledgerService) resolveAccounts(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to resolve posting accounts", slog.String("error", err.Error()))
		return nil, err
	}
	for _, code := range codes {
		account, ok := accounts[code]
		if !ok {
			return nil, fmt.Errorf("%w: chart of accounts is missing code %s", apperrors.ErrInternal, code)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInternal, code)
		}
	}
	return accounts, nil
}

func debitEntry(txnID string, accountID int64, amount decimal.Decimal, currency string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		TransactionID: txnID,
		AccountID:     accountID,
		Debit:         amount,
		Credit:        decimal.Zero,
		Currency:      currency,
	}
}

func creditEntry(txnID string, accountID int64, amount decimal.Decimal, currency string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		TransactionID: txnID,
		AccountID:     accountID,
		Debit:         decimal.Zero,
		Credit:        amount,
		Currency:      currency,
	}
}
