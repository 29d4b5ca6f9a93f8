package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/services"
)

// MockProfileRepository is a mock type for the ProfileRepositoryFacade interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindProfilesByIDs(ctx context.Context, profileIDs []string) (map[string]domain.Profile, error) {
	args := m.Called(ctx, profileIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ProfileServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProfileRepository
	service  portssvc.ProfileSvcFacade
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProfileRepository)
	suite.service = services.NewProfileService(suite.mockRepo, []string{"Boss@Example.com"})
}

// --- ResolveRole ---

func (suite *ProfileServiceTestSuite) TestResolveRole_RoleColumnWins() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u1").Return(&domain.Profile{
		ProfileID: "u1", Email: "someone@example.com", Role: domain.RoleAdmin,
	}, nil).Once()

	role, err := suite.service.ResolveRole(ctx, "u1")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, role)
}

func (suite *ProfileServiceTestSuite) TestResolveRole_AllowlistGrantsAdmin() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u2").Return(&domain.Profile{
		ProfileID: "u2", Email: "boss@example.com", Role: domain.RoleRider,
	}, nil).Once()

	role, err := suite.service.ResolveRole(ctx, "u2")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, role)
}

func (suite *ProfileServiceTestSuite) TestResolveRole_PlainRiderStaysRider() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u3").Return(&domain.Profile{
		ProfileID: "u3", Email: "rider@example.com", Role: domain.RoleRider,
	}, nil).Once()

	role, err := suite.service.ResolveRole(ctx, "u3")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleRider, role)
}

func (suite *ProfileServiceTestSuite) TestResolveRole_MissingProfileDefaultsToRider() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u4").Return(nil, apperrors.ErrNotFound).Once()

	role, err := suite.service.ResolveRole(ctx, "u4")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleRider, role)
}

func (suite *ProfileServiceTestSuite) TestResolveRole_StoreErrorSurfaces() {
	ctx := context.Background()
	repoErr := errors.New("connection refused")
	suite.mockRepo.On("FindProfileByID", ctx, "u5").Return(nil, repoErr).Once()

	_, err := suite.service.ResolveRole(ctx, "u5")

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

// --- EnsureProfile ---

func (suite *ProfileServiceTestSuite) TestEnsureProfile_ExistingIsProvisioned() {
	ctx := context.Background()
	existing := &domain.Profile{ProfileID: "u1", Email: "someone@example.com", Role: domain.RoleRider}
	suite.mockRepo.On("FindProfileByID", ctx, "u1").Return(existing, nil).Once()

	profile, outcome, err := suite.service.EnsureProfile(ctx, "u1", "someone@example.com")

	suite.Require().NoError(err)
	suite.Equal(existing, profile)
	suite.Equal(domain.Provisioned, outcome.State)
	suite.Empty(outcome.Reason)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestEnsureProfile_BootstrapsOnFirstContact() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u-new").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.ProfileID == "u-new" && p.Email == "fresh@example.com" && p.Role == domain.RoleRider
	})).Return(nil).Once()

	profile, outcome, err := suite.service.EnsureProfile(ctx, "u-new", "Fresh@Example.com")

	suite.Require().NoError(err)
	suite.Equal("fresh@example.com", profile.Email)
	suite.Equal(domain.Provisioned, outcome.State)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestEnsureProfile_AllowlistedBootstrapGetsAdminRole() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u-boss").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.Role == domain.RoleAdmin
	})).Return(nil).Once()

	profile, outcome, err := suite.service.EnsureProfile(ctx, "u-boss", "boss@example.com")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, profile.Role)
	suite.Equal(domain.Provisioned, outcome.State)
}

func (suite *ProfileServiceTestSuite) TestEnsureProfile_FailedBootstrapDegrades() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u-sad").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveProfile", ctx, mock.Anything).Return(errors.New("permission denied")).Once()

	profile, outcome, err := suite.service.EnsureProfile(ctx, "u-sad", "sad@example.com")

	suite.Require().NoError(err)
	suite.Require().NotNil(profile)
	suite.Equal("u-sad", profile.ProfileID)
	suite.Equal(domain.Degraded, outcome.State)
	suite.Contains(outcome.Reason, "permission denied")
}

func (suite *ProfileServiceTestSuite) TestEnsureProfile_LostRaceReturnsWinnerRow() {
	ctx := context.Background()
	winner := &domain.Profile{ProfileID: "u-race", Email: "race@example.com", Role: domain.RoleRider}

	suite.mockRepo.On("FindProfileByID", ctx, "u-race").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveProfile", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindProfileByID", ctx, "u-race").Return(winner, nil).Once()

	profile, outcome, err := suite.service.EnsureProfile(ctx, "u-race", "race@example.com")

	suite.Require().NoError(err)
	suite.Equal(winner, profile)
	suite.Equal(domain.Provisioned, outcome.State)
}

func (suite *ProfileServiceTestSuite) TestEnsureProfile_LookupErrorDegrades() {
	ctx := context.Background()
	suite.mockRepo.On("FindProfileByID", ctx, "u-err").Return(nil, errors.New("timeout")).Once()

	profile, outcome, err := suite.service.EnsureProfile(ctx, "u-err", "err@example.com")

	suite.Require().NoError(err)
	suite.Require().NotNil(profile)
	suite.Equal(domain.Degraded, outcome.State)
	suite.Contains(outcome.Reason, "lookup failed")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

// --- ProfilesByIDs ---

func (suite *ProfileServiceTestSuite) TestProfilesByIDs_EmptyInputShortCircuits() {
	profiles, err := suite.service.ProfilesByIDs(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Empty(profiles)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindProfilesByIDs", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestProfilesByIDs_BatchFetch() {
	ctx := context.Background()
	ids := []string{"u1", "u2"}
	suite.mockRepo.On("FindProfilesByIDs", ctx, ids).Return(map[string]domain.Profile{
		"u1": {ProfileID: "u1"},
		"u2": {ProfileID: "u2"},
	}, nil).Once()

	profiles, err := suite.service.ProfilesByIDs(ctx, ids)

	suite.Require().NoError(err)
	suite.Len(profiles, 2)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
