package ledger

import (
	"strings"
	"testing"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		account, err := NewAccount("1000", "Cash", AccountTypeAsset)
		require.NoError(t, err)
		assert.Equal(t, "1000", account.Code)
		assert.Equal(t, "Cash", account.Name)
		assert.Equal(t, AccountTypeAsset, account.Type)
	})

	t.Run("rejects an empty code", func(t *testing.T) {
		_, err := NewAccount("", "Cash", AccountTypeAsset)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACCOUNT_CODE", domainErr.Code)
	})

	t.Run("rejects an overlong code", func(t *testing.T) {
		_, err := NewAccount(strings.Repeat("9", 21), "Cash", AccountTypeAsset)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACCOUNT_CODE", domainErr.Code)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := NewAccount("1000", "", AccountTypeAsset)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACCOUNT_NAME", domainErr.Code)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		_, err := NewAccount("1000", "Cash", AccountType("WEIRD"))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACCOUNT_TYPE", domainErr.Code)
	})
}

func TestDefaultAccounts(t *testing.T) {
	catalog := DefaultAccounts()
	require.Len(t, catalog, 5)

	byCode := make(map[string]DefaultAccount, len(catalog))
	for _, def := range catalog {
		byCode[def.Code] = def
	}

	assert.Equal(t, DefaultAccount{Code: "1000", Name: "Cash", Type: AccountTypeAsset}, byCode[AccountCodeCash])
	assert.Equal(t, DefaultAccount{Code: "1100", Name: "Accounts Receivable", Type: AccountTypeAsset}, byCode[AccountCodeReceivable])
	assert.Equal(t, DefaultAccount{Code: "1200", Name: "Inventory", Type: AccountTypeAsset}, byCode[AccountCodeInventory])
	assert.Equal(t, DefaultAccount{Code: "4000", Name: "Revenue", Type: AccountTypeRevenue}, byCode[AccountCodeRevenue])
	assert.Equal(t, DefaultAccount{Code: "5000", Name: "Cost of Goods Sold", Type: AccountTypeExpense}, byCode[AccountCodeCOGS])
}

func TestAccountTypeIsValid(t *testing.T) {
	for _, accountType := range []AccountType{AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense} {
		assert.True(t, accountType.IsValid(), accountType.String())
	}
	assert.False(t, AccountType("CRYPTO").IsValid())
}
