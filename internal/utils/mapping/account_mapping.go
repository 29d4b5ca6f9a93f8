package mapping

import (
	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	"github.com/Ernest01982/tuktukeazyadmin/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      domain.AccountType(m.Type),
		IsActive:  m.IsActive,
	}
}

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID: d.AccountID,
		Code:      d.Code,
		Name:      d.Name,
		Type:      models.AccountType(d.Type),
		IsActive:  d.IsActive,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
