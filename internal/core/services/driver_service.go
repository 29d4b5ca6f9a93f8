package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portsrepo "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/repositories"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/dto"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
)

// FunctionInvoker invokes a named remote function with the caller's bearer
// credential and returns the raw response body.
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, bearerToken string, payload any) (json.RawMessage, error)
}

const createDriverFunction = "admin-create-driver"

// driverService provisions drivers through the dual-path executor and serves
// the driver directory.
type driverService struct {
	driverRepo    portsrepo.DriverRepositoryFacade
	procedureRepo portsrepo.ProcedureRepositoryFacade
	functions     FunctionInvoker
	executor      *CommandExecutor
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	driverRepo portsrepo.DriverRepositoryFacade,
	procedureRepo portsrepo.ProcedureRepositoryFacade,
	functions FunctionInvoker,
	executor *CommandExecutor,
) portssvc.DriverSvcFacade {
	return &driverService{
		driverRepo:    driverRepo,
		procedureRepo: procedureRepo,
		functions:     functions,
		executor:      executor,
	}
}

var _ portssvc.DriverSvcFacade = (*driverService)(nil)

// createDriverPayload is the primary-channel request body. The password is
// only carried on this channel; the stored procedure never receives one.
type createDriverPayload struct {
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	VehicleType   string `json:"vehicle_type"`
	VehiclePlate  string `json:"vehicle_plate"`
	IsVerified    bool   `json:"is_verified"`
}

type createDriverResult struct {
	UserID string `json:"user_id"`
}

// CreateDriver provisions a driver account. The remote function is attempted
// first; the stored procedure runs only when the function endpoint is
// unreachable. Validation failures never trigger the fallback.
func (s *driverService) CreateDriver(ctx context.Context, req dto.CreateDriverRequest) (*domain.CommandResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	isVerified := true
	if req.IsVerified != nil {
		isVerified = *req.IsVerified
	}

	payload := createDriverPayload{
		Email:         email,
		Password:      req.Password,
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		VehicleType:   req.VehicleType,
		VehiclePlate:  req.VehiclePlate,
		IsVerified:    isVerified,
	}

	bearerToken := middleware.GetBearerTokenFromCtx(ctx)

	cmd := Command{
		Name: createDriverFunction,
		Primary: func(ctx context.Context) (string, error) {
			raw, err := s.functions.Invoke(ctx, createDriverFunction, bearerToken, payload)
			if err != nil {
				return "", err
			}
			var result createDriverResult
			if err := json.Unmarshal(raw, &result); err != nil {
				return "", fmt.Errorf("%w: unexpected response from %s: %v", apperrors.ErrInternal, createDriverFunction, err)
			}
			return result.UserID, nil
		},
		Secondary: func(ctx context.Context) (string, error) {
			return s.procedureRepo.AdminCreateDriver(ctx, portsrepo.AdminCreateDriverParams{
				Email:         email,
				Name:          req.Name,
				Phone:         req.Phone,
				LicenseNumber: req.LicenseNumber,
				VehicleType:   req.VehicleType,
				VehiclePlate:  req.VehiclePlate,
				IsVerified:    isVerified,
			})
		},
	}

	result := s.executor.Execute(ctx, cmd)
	if !result.Success {
		return &result, result.Err
	}

	logger.Info("Driver provisioned",
		slog.String("email", email),
		slog.String("path", string(result.Path)),
		slog.String("created_id", result.CreatedID))
	return &result, nil
}

func (s *driverService) SearchDrivers(ctx context.Context, query string) ([]domain.Driver, error) {
	drivers, err := s.driverRepo.SearchDrivers(ctx, strings.TrimSpace(query))
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Driver search failed", slog.String("error", err.Error()))
		return nil, err
	}
	return drivers, nil
}
