package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Ledger  LedgerSvcFacade
	Driver  DriverSvcFacade
	Profile ProfileSvcFacade
}
