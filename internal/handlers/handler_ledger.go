package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/dto"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
)

// ledgerHandler handles HTTP requests for the chart of accounts and the
// ledger. The profile service is used to resolve creator emails in listings.
type ledgerHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	profileService portssvc.ProfileSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, ps portssvc.ProfileSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, profileService: ps}
}

// registerLedgerRoutes registers accounts and ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, profileService portssvc.ProfileSvcFacade) {
	h := newLedgerHandler(ledgerService, profileService)

	rg.GET("/accounts", h.listAccounts)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/transactions", h.listTransactions)
		ledger.GET("/transactions/:txnID/entries", h.listEntries)
		ledger.POST("/totals", h.totals)
		ledger.POST("/payments", h.postPayment)
		ledger.POST("/payouts", h.postPayout)
	}
}

// listAccounts returns the full chart of accounts ordered by code.
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	accounts, err := h.ledgerService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// listTransactions returns one page of ledger transactions, newest first.
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind pagination params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	profiles, payments := h.enrichTransactions(c, txns)
	c.JSON(http.StatusOK, dto.ToEnrichedTransactionResponses(txns, profiles, payments))
}

// enrichTransactions resolves creator profiles and captured ride payments
// for one listing page. Enrichment failures degrade the listing instead of
// failing it; the bare transactions are still served.
func (h *ledgerHandler) enrichTransactions(c *gin.Context, txns []domain.LedgerTransaction) (map[string]domain.Profile, map[string]domain.Payment) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorIDs := make([]string, 0, len(txns))
	rideIDs := make([]string, 0, len(txns))
	seenCreators := make(map[string]struct{})
	for i := range txns {
		if id := txns[i].CreatedBy; id != nil && *id != "" {
			if _, ok := seenCreators[*id]; !ok {
				seenCreators[*id] = struct{}{}
				creatorIDs = append(creatorIDs, *id)
			}
		}
		if rideID := txns[i].RideID; rideID != nil && *rideID != "" {
			rideIDs = append(rideIDs, *rideID)
		}
	}

	profiles := map[string]domain.Profile{}
	if len(creatorIDs) > 0 {
		resolved, err := h.profileService.ProfilesByIDs(c.Request.Context(), creatorIDs)
		if err != nil {
			logger.Warn("Creator lookup failed for transaction listing", slog.String("error", err.Error()))
		} else {
			profiles = resolved
		}
	}

	payments := map[string]domain.Payment{}
	if len(rideIDs) > 0 {
		resolved, err := h.ledgerService.PaymentsForRides(c.Request.Context(), rideIDs)
		if err != nil {
			logger.Warn("Payment lookup failed for transaction listing", slog.String("error", err.Error()))
		} else {
			payments = resolved
		}
	}

	return profiles, payments
}

// listEntries returns the entries of one transaction.
func (h *ledgerHandler) listEntries(c *gin.Context) {
	txnID := c.Param("txnID")

	entries, err := h.ledgerService.EntriesFor(c.Request.Context(), txnID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// totals returns aggregated debit/credit sums for a batch of transactions.
func (h *ledgerHandler) totals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for totals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	totals, err := h.ledgerService.TotalsFor(c.Request.Context(), req.TransactionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalsResponse{Totals: totals})
}

// postPayment posts the captured payment of a ride to the ledger.
func (h *ledgerHandler) postPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payment posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	postedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.PostPayment(c.Request.Context(), req.RideID, postedBy)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPosted) && txn != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":         "Ride is already posted",
				"transactionID": txn.TransactionID,
			})
			return
		}
		respondError(c, err)
		return
	}

	logger.Info("Ride payment posted", slog.String("transaction_id", txn.TransactionID), slog.String("ride_id", req.RideID))
	c.JSON(http.StatusCreated, dto.PostingResponse{TransactionID: txn.TransactionID})
}

// postPayout posts a driver payout to the ledger.
func (h *ledgerHandler) postPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payout posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	postedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.PostPayout(c.Request.Context(), req.DriverID, req.Amount, req.Currency, req.Note, postedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Driver payout posted", slog.String("transaction_id", txn.TransactionID), slog.String("driver_id", req.DriverID))
	c.JSON(http.StatusCreated, dto.PostingResponse{TransactionID: txn.TransactionID})
}
