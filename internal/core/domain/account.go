package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// Well-known account codes from the seeded chart of accounts. The accounting
// engine resolves posting targets through these codes; codes are immutable
// once any entry references them.
const (
	AccountCodeCashBank      = "1010"
	AccountCodeCashInTransit = "1020"
	AccountCodeRideRevenue   = "4010"
	AccountCodeProcessorFees = "5010"
	AccountCodeDriverPayouts = "5020"
)

// Account represents one chart-of-accounts entry.
type Account struct {
	AccountID int64       `json:"accountID"` // Numeric primary key
	Code      string      `json:"code"`      // Unique, immutable once referenced
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	IsActive  bool        `json:"isActive"` // Soft-deactivate only, never deleted
}
