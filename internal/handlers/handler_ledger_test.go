package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/dto"
	"github.com/Ernest01982/tuktukeazyadmin/internal/handlers"
	"github.com/Ernest01982/tuktukeazyadmin/pkg/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, page, limit int) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerService) EntriesFor(ctx context.Context, txnID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) TotalsFor(ctx context.Context, txnIDs []string) (map[string]domain.EntryTotals, error) {
	args := m.Called(ctx, txnIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.EntryTotals), args.Error(1)
}

func (m *MockLedgerService) PaymentsForRides(ctx context.Context, rideIDs []string) (map[string]domain.Payment, error) {
	args := m.Called(ctx, rideIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Payment), args.Error(1)
}

func (m *MockLedgerService) PostPayment(ctx context.Context, rideID string, postedBy string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, rideID, postedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerService) PostPayout(ctx context.Context, driverID string, amount decimal.Decimal, currency string, note string, postedBy string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, driverID, amount, currency, note, postedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock DriverService ---
type MockDriverService struct {
	mock.Mock
}

func (m *MockDriverService) CreateDriver(ctx context.Context, req dto.CreateDriverRequest) (*domain.CommandResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommandResult), args.Error(1)
}

func (m *MockDriverService) SearchDrivers(ctx context.Context, query string) ([]domain.Driver, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Driver), args.Error(1)
}

var _ portssvc.DriverSvcFacade = (*MockDriverService)(nil)

// --- Mock ProfileService ---
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) ResolveRole(ctx context.Context, profileID string) (domain.Role, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockProfileService) EnsureProfile(ctx context.Context, profileID string, email string) (*domain.Profile, domain.ProvisionOutcome, error) {
	args := m.Called(ctx, profileID, email)
	if args.Get(0) == nil {
		return nil, domain.ProvisionOutcome{}, args.Error(2)
	}
	return args.Get(0).(*domain.Profile), args.Get(1).(domain.ProvisionOutcome), args.Error(2)
}

func (m *MockProfileService) ProfilesByIDs(ctx context.Context, profileIDs []string) (map[string]domain.Profile, error) {
	args := m.Called(ctx, profileIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Profile), args.Error(1)
}

var _ portssvc.ProfileSvcFacade = (*MockProfileService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockLedgerService  *MockLedgerService
	mockDriverService  *MockDriverService
	mockProfileService *MockProfileService
	jwtSecret          string
	adminID            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID, email string) string {
	claims := jwt.MapClaims{
		"iss":   "tuktuk-test",
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.adminID = "11111111-1111-1111-1111-111111111111"

	suite.mockLedgerService = new(MockLedgerService)
	suite.mockDriverService = new(MockDriverService)
	suite.mockProfileService = new(MockProfileService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Ledger:  suite.mockLedgerService,
		Driver:  suite.mockDriverService,
		Profile: suite.mockProfileService,
	})
}

func (suite *LedgerHandlerTestSuite) doRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) asAdmin() string {
	suite.mockProfileService.On("ResolveRole", mock.Anything, suite.adminID).Return(domain.RoleAdmin, nil)
	return suite.generateTestToken(suite.adminID, "admin@example.com")
}

// --- Auth and role gating ---

func (suite *LedgerHandlerTestSuite) TestListAccounts_RequiresToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestAuth_RejectsForeignIssuerWhenConfigured() {
	router := gin.New()
	cfg := &config.Config{JWTSecret: suite.jwtSecret, JWTIssuer: "tuktuk-eazy-admin"}
	handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{
		Ledger:  suite.mockLedgerService,
		Driver:  suite.mockDriverService,
		Profile: suite.mockProfileService,
	})

	// Suite tokens are minted with issuer "tuktuk-test"
	req, err := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.adminID, "admin@example.com"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "issuer")
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestListAccounts_RejectsNonAdmin() {
	riderID := "22222222-2222-2222-2222-222222222222"
	suite.mockProfileService.On("ResolveRole", mock.Anything, riderID).Return(domain.RoleRider, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", nil, suite.generateTestToken(riderID, "rider@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

// --- Accounts ---

func (suite *LedgerHandlerTestSuite) TestListAccounts_Success() {
	token := suite.asAdmin()
	suite.mockLedgerService.On("ListAccounts", mock.Anything).Return([]domain.Account{
		{AccountID: 1, Code: "1010", Name: "Cash - Bank", Type: domain.Asset, IsActive: true},
		{AccountID: 3, Code: "4010", Name: "Ride Revenue", Type: domain.Revenue, IsActive: true},
	}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("1010", resp[0].Code)
}

// --- Transactions ---

func (suite *LedgerHandlerTestSuite) TestListTransactions_PassesPagination() {
	token := suite.asAdmin()
	suite.mockLedgerService.On("ListTransactions", mock.Anything, 2, 50).Return([]domain.LedgerTransaction{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/ledger/transactions?page=2&limit=50", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_EnrichesCreatorAndPayment() {
	token := suite.asAdmin()
	creatorID := suite.adminID
	rideID := "ride-1"
	suite.mockLedgerService.On("ListTransactions", mock.Anything, 0, 0).Return([]domain.LedgerTransaction{
		{TransactionID: "t-1", CreatedBy: &creatorID, RideID: &rideID},
	}, nil).Once()
	suite.mockProfileService.On("ProfilesByIDs", mock.Anything, []string{creatorID}).Return(map[string]domain.Profile{
		creatorID: {ProfileID: creatorID, Email: "admin@example.com", Role: domain.RoleAdmin},
	}, nil).Once()
	suite.mockLedgerService.On("PaymentsForRides", mock.Anything, []string{rideID}).Return(map[string]domain.Payment{
		rideID: {PaymentID: "pay-1", RideID: rideID, Amount: decimal.NewFromInt(100), ProcessorFee: decimal.NewFromInt(3), Currency: "ZAR", Status: domain.PaymentSucceeded},
	}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/ledger/transactions", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Require().NotNil(resp[0].CreatedByEmail)
	suite.Equal("admin@example.com", *resp[0].CreatedByEmail)
	suite.Require().NotNil(resp[0].Payment)
	suite.True(resp[0].Payment.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("succeeded", resp[0].Payment.Status)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_EnrichmentFailureStillServesListing() {
	token := suite.asAdmin()
	creatorID := suite.adminID
	suite.mockLedgerService.On("ListTransactions", mock.Anything, 0, 0).Return([]domain.LedgerTransaction{
		{TransactionID: "t-1", CreatedBy: &creatorID},
	}, nil).Once()
	suite.mockProfileService.On("ProfilesByIDs", mock.Anything, []string{creatorID}).
		Return(nil, apperrors.ErrInternal).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/ledger/transactions", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Nil(resp[0].CreatedByEmail)
}

func (suite *LedgerHandlerTestSuite) TestListEntries_Success() {
	token := suite.asAdmin()
	txnID := "33333333-3333-3333-3333-333333333333"
	suite.mockLedgerService.On("EntriesFor", mock.Anything, txnID).Return([]domain.LedgerEntry{
		{EntryID: "e1", TransactionID: txnID, AccountID: 2, Debit: decimal.NewFromInt(97), Credit: decimal.Zero, Currency: "ZAR"},
	}, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/ledger/transactions/%s/entries", txnID), nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(txnID, resp[0].TransactionID)
}

func (suite *LedgerHandlerTestSuite) TestTotals_EmptyBodyRejected() {
	token := suite.asAdmin()

	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/totals", dto.TotalsRequest{}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "TotalsFor", mock.Anything, mock.Anything)
}

// --- Postings ---

func (suite *LedgerHandlerTestSuite) TestPostPayment_Created() {
	token := suite.asAdmin()
	txn := &domain.LedgerTransaction{TransactionID: "t-new"}
	suite.mockLedgerService.On("PostPayment", mock.Anything, "ride-1", suite.adminID).Return(txn, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/payments", dto.PostPaymentRequest{RideID: "ride-1"}, token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("t-new", resp.TransactionID)
}

func (suite *LedgerHandlerTestSuite) TestPostPayment_DuplicateIsConflict() {
	token := suite.asAdmin()
	suite.mockLedgerService.On("PostPayment", mock.Anything, "ride-1", suite.adminID).Return(nil, apperrors.ErrAlreadyPosted).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/payments", dto.PostPaymentRequest{RideID: "ride-1"}, token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostPayment_DuplicateConflictNamesWinningTransaction() {
	token := suite.asAdmin()
	winner := &domain.LedgerTransaction{TransactionID: "t-winner"}
	suite.mockLedgerService.On("PostPayment", mock.Anything, "ride-1", suite.adminID).Return(winner, apperrors.ErrAlreadyPosted).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/payments", dto.PostPaymentRequest{RideID: "ride-1"}, token)

	suite.Equal(http.StatusConflict, w.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("t-winner", resp["transactionID"])
}

func (suite *LedgerHandlerTestSuite) TestPostPayment_UnknownRideIsNotFound() {
	token := suite.asAdmin()
	suite.mockLedgerService.On("PostPayment", mock.Anything, "ride-x", suite.adminID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/payments", dto.PostPaymentRequest{RideID: "ride-x"}, token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostPayout_Created() {
	token := suite.asAdmin()
	txn := &domain.LedgerTransaction{TransactionID: "t-payout"}
	amount := decimal.NewFromInt(250)
	suite.mockLedgerService.On("PostPayout", mock.Anything, "drv-1", amount, "ZAR", "weekly", suite.adminID).Return(txn, nil).Once()

	req := dto.PostPayoutRequest{DriverID: "drv-1", Amount: amount, Currency: "ZAR", Note: "weekly"}
	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/payouts", req, token)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostPayout_ValidationErrorIsBadRequest() {
	token := suite.asAdmin()
	amount := decimal.NewFromInt(-5)
	suite.mockLedgerService.On("PostPayout", mock.Anything, "drv-1", amount, "ZAR", "", suite.adminID).
		Return(nil, fmt.Errorf("%w: payout amount must be positive", apperrors.ErrValidation)).Once()

	req := dto.PostPayoutRequest{DriverID: "drv-1", Amount: amount, Currency: "ZAR"}
	w := suite.doRequest(http.MethodPost, "/api/v1/ledger/payouts", req, token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Drivers ---

func (suite *LedgerHandlerTestSuite) TestCreateDriver_ReportsPath() {
	token := suite.asAdmin()
	suite.mockDriverService.On("CreateDriver", mock.Anything, mock.AnythingOfType("dto.CreateDriverRequest")).
		Return(&domain.CommandResult{Success: true, Path: domain.PathSecondary, CreatedID: "uid-9"}, nil).Once()

	req := dto.CreateDriverRequest{Email: "driver@example.com", Name: "New Driver"}
	w := suite.doRequest(http.MethodPost, "/api/v1/drivers", req, token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateDriverResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("secondary", resp.Path)
	suite.Equal("uid-9", resp.CreatedID)
}

func (suite *LedgerHandlerTestSuite) TestCreateDriver_BothChannelsDownIsUnavailable() {
	token := suite.asAdmin()
	suite.mockDriverService.On("CreateDriver", mock.Anything, mock.AnythingOfType("dto.CreateDriverRequest")).
		Return(nil, fmt.Errorf("primary unreachable; secondary failed: %w", apperrors.ErrUnavailable)).Once()

	req := dto.CreateDriverRequest{Email: "driver@example.com"}
	w := suite.doRequest(http.MethodPost, "/api/v1/drivers", req, token)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestCreateDriver_MissingEmailRejectedAtBinding() {
	token := suite.asAdmin()

	w := suite.doRequest(http.MethodPost, "/api/v1/drivers", map[string]string{"name": "No Email"}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDriverService.AssertNotCalled(suite.T(), "CreateDriver", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestSearchDrivers_ForwardsQuery() {
	token := suite.asAdmin()
	suite.mockDriverService.On("SearchDrivers", mock.Anything, "sipho").Return([]domain.Driver{
		{DriverID: "drv-1", Name: "Sipho M", VehiclePlate: "CA 123"},
	}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/drivers?q=sipho", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.DriverResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Sipho M", resp[0].Name)
}

// --- Profile ---

func (suite *LedgerHandlerTestSuite) TestMe_NonAdminCanReadOwnProfile() {
	riderID := "22222222-2222-2222-2222-222222222222"
	profile := &domain.Profile{ProfileID: riderID, Email: "rider@example.com", Role: domain.RoleRider}

	suite.mockProfileService.On("EnsureProfile", mock.Anything, riderID, "rider@example.com").
		Return(profile, domain.ProvisionOutcome{State: domain.Provisioned}, nil).Once()
	suite.mockProfileService.On("ResolveRole", mock.Anything, riderID).Return(domain.RoleRider, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/me", nil, suite.generateTestToken(riderID, "rider@example.com"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProfileResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("rider", resp.Role)
	suite.Equal("provisioned", resp.ProvisionState)
}

func (suite *LedgerHandlerTestSuite) TestMe_DegradedOutcomeIsVisible() {
	userID := "44444444-4444-4444-4444-444444444444"
	profile := &domain.Profile{ProfileID: userID, Email: "sad@example.com", Role: domain.RoleRider}

	suite.mockProfileService.On("EnsureProfile", mock.Anything, userID, "sad@example.com").
		Return(profile, domain.ProvisionOutcome{State: domain.Degraded, Reason: "profile bootstrap failed: permission denied"}, nil).Once()
	suite.mockProfileService.On("ResolveRole", mock.Anything, userID).Return(domain.RoleRider, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/me", nil, suite.generateTestToken(userID, "sad@example.com"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProfileResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("degraded", resp.ProvisionState)
	suite.Contains(resp.DegradedReason, "permission denied")
}

// --- Health ---

func (suite *LedgerHandlerTestSuite) TestHealthIsPublic() {
	w := suite.doRequest(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
