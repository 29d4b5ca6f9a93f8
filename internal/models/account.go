package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID int64       // accounts.id
	Code      string      // Unique chart-of-accounts code
	Name      string      // Display name
	Type      AccountType // asset, liability, equity, revenue, expense
	IsActive  bool        // Soft-deactivate flag
}
