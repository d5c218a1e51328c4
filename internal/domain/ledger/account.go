package ledger

import (
	"github.com/fieldpoint/backend/internal/domain/shared"
)

// AccountType classifies a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Default account codes used by the posting engine. The catalog is seeded
// with these at bootstrap; the posting engine resolves them by code.
const (
	AccountCodeCash       = "1000"
	AccountCodeReceivable = "1100"
	AccountCodeInventory  = "1200"
	AccountCodeRevenue    = "4000"
	AccountCodeCOGS       = "5000"
)

// DefaultAccount describes one entry of the seeded account catalog
type DefaultAccount struct {
	Code string
	Name string
	Type AccountType
}

// DefaultAccounts returns the catalog seeded at install time
func DefaultAccounts() []DefaultAccount {
	return []DefaultAccount{
		{Code: AccountCodeCash, Name: "Cash", Type: AccountTypeAsset},
		{Code: AccountCodeReceivable, Name: "Accounts Receivable", Type: AccountTypeAsset},
		{Code: AccountCodeInventory, Name: "Inventory", Type: AccountTypeAsset},
		{Code: AccountCodeRevenue, Name: "Revenue", Type: AccountTypeRevenue},
		{Code: AccountCodeCOGS, Name: "Cost of Goods Sold", Type: AccountTypeExpense},
	}
}

// Account represents one ledger account in the chart of accounts.
// Accounts are read-mostly after seeding; the posting engine only ever
// resolves them by code.
type Account struct {
	shared.BaseAggregateRoot
	Code string      `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// NewAccount creates a new ledger account
func NewAccount(code, name string, accountType AccountType) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Type:              accountType,
	}, nil
}
