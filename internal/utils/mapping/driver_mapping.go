package mapping

import (
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
)

// ToDomainDriver converts a model Driver to a domain Driver.
func ToDomainDriver(m models.Driver) domain.Driver {
	return domain.Driver{
		DriverID:      m.DriverID,
		Name:          m.Name,
		Phone:         m.Phone,
		LicenseNumber: m.LicenseNumber,
		VehicleType:   m.VehicleType,
		VehiclePlate:  m.VehiclePlate,
		IsVerified:    m.IsVerified,
		Online:        m.Online,
		Rating:        m.Rating,
		TotalRides:    m.TotalRides,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainDriverSlice converts a slice of model Drivers to domain Drivers.
func ToDomainDriverSlice(ms []models.Driver) []domain.Driver {
	ds := make([]domain.Driver, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDriver(m)
	}
	return ds
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:    m.PaymentID,
		RideID:       m.RideID,
		Amount:       m.Amount,
		Currency:     m.Currency,
		ProcessorFee: m.ProcessorFee,
		ProcessorRef: m.ProcessorRef,
		Status:       domain.PaymentStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainProfile converts a model Profile to a domain Profile.
func ToDomainProfile(m models.Profile) domain.Profile {
	return domain.Profile{
		ProfileID: m.ProfileID,
		Email:     m.Email,
		Role:      domain.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
