package posting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockJournalEntryRepository is a mock implementation of
// ledger.JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByIdempotencyKey(ctx context.Context, key string) (*ledger.JournalEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.JournalEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// testRepositories bundles the mocks behind the engine's repository view
type testRepositories struct {
	accounts *MockAccountRepository
	journal  *MockJournalEntryRepository
}

func (r testRepositories) Accounts() ledger.AccountRepository     { return r.accounts }
func (r testRepositories) Journal() ledger.JournalEntryRepository { return r.journal }

func newTestRepositories() testRepositories {
	return testRepositories{
		accounts: new(MockAccountRepository),
		journal:  new(MockJournalEntryRepository),
	}
}

func validInput() EntryInput {
	return EntryInput{
		EntryDate:       time.Now(),
		Description:     "Invoice " + uuid.NewString() + " posting",
		DebitAccountID:  uuid.New(),
		CreditAccountID: uuid.New(),
		Amount:          decimal.RequireFromString("120.00"),
	}
}

func TestEngine_PostEntry_Success(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()
	input := validInput()

	repos.journal.On("FindByIdempotencyKey", ctx, input.Description).Return(nil, shared.ErrNotFound)
	repos.journal.On("Create", ctx, mock.AnythingOfType("*ledger.JournalEntry")).Return(nil)

	entry, err := engine.PostEntry(ctx, repos, input)
	require.NoError(t, err)
	assert.Equal(t, input.Description, entry.Description)
	assert.Equal(t, input.Description, entry.IdempotencyKey)
	assert.Equal(t, input.DebitAccountID, entry.DebitAccountID)
	assert.Equal(t, input.CreditAccountID, entry.CreditAccountID)
	assert.Equal(t, "120.00", entry.Amount.String())

	repos.journal.AssertExpectations(t)
}

func TestEngine_PostEntry_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()

	input := validInput()
	input.Amount = decimal.Zero

	_, err := engine.PostEntry(ctx, repos, input)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Rejected before any repository call.
	repos.journal.AssertNotCalled(t, "FindByIdempotencyKey", mock.Anything, mock.Anything)
	repos.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngine_PostEntry_SameAccount(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()

	input := validInput()
	input.CreditAccountID = input.DebitAccountID

	_, err := engine.PostEntry(ctx, repos, input)
	assert.ErrorIs(t, err, ErrSameAccount)
	repos.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngine_PostEntry_ReplayDetected(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()
	input := validInput()

	existing, err := ledger.NewJournalEntry(time.Now(), input.Description, input.DebitAccountID, input.CreditAccountID, input.Amount)
	require.NoError(t, err)
	repos.journal.On("FindByIdempotencyKey", ctx, input.Description).Return(existing, nil)

	_, err = engine.PostEntry(ctx, repos, input)
	assert.ErrorIs(t, err, ErrAlreadyPosted)
	repos.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngine_PostEntry_LosesInsertRace(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()
	input := validInput()

	// The existence check sees nothing, but a concurrent poster wins the
	// insert; the unique index reports the duplicate.
	repos.journal.On("FindByIdempotencyKey", ctx, input.Description).Return(nil, shared.ErrNotFound)
	repos.journal.On("Create", ctx, mock.AnythingOfType("*ledger.JournalEntry")).Return(shared.ErrAlreadyExists)

	_, err := engine.PostEntry(ctx, repos, input)
	assert.ErrorIs(t, err, ErrAlreadyPosted)
}

func TestEngine_PostEntry_LookupFailure(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()
	input := validInput()

	dbErr := errors.New("connection reset")
	repos.journal.On("FindByIdempotencyKey", ctx, input.Description).Return(nil, dbErr)

	_, err := engine.PostEntry(ctx, repos, input)
	assert.ErrorIs(t, err, dbErr)
}

func TestEngine_GetOrCreateAccount_Existing(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()

	account, err := ledger.NewAccount(ledger.AccountCodeCash, "Cash", ledger.AccountTypeAsset)
	require.NoError(t, err)
	repos.accounts.On("FindByCode", ctx, ledger.AccountCodeCash).Return(account, nil)

	got, err := engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeCash, "Cash", ledger.AccountTypeAsset)
	require.NoError(t, err)
	assert.Equal(t, account, got)
	repos.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngine_GetOrCreateAccount_UnknownCodeRejected(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewEngine()

	repos.accounts.On("FindByCode", ctx, "9999").Return(nil, shared.ErrNotFound)

	_, err := engine.GetOrCreateAccount(ctx, repos, "9999", "Mystery", ledger.AccountTypeAsset)
	assert.ErrorIs(t, err, ErrUnknownAccount)
	repos.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngine_GetOrCreateAccount_BootstrapCreates(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewBootstrapEngine()

	repos.accounts.On("FindByCode", ctx, ledger.AccountCodeRevenue).Return(nil, shared.ErrNotFound)
	repos.accounts.On("Create", ctx, mock.AnythingOfType("*ledger.Account")).Return(nil)

	account, err := engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeRevenue, "Revenue", ledger.AccountTypeRevenue)
	require.NoError(t, err)
	assert.Equal(t, ledger.AccountCodeRevenue, account.Code)
	assert.Equal(t, ledger.AccountTypeRevenue, account.Type)
	repos.accounts.AssertExpectations(t)
}

func TestEngine_GetOrCreateAccount_BootstrapLosesCreateRace(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()
	engine := NewBootstrapEngine()

	winner, err := ledger.NewAccount(ledger.AccountCodeCOGS, "Cost of Goods Sold", ledger.AccountTypeExpense)
	require.NoError(t, err)

	repos.accounts.On("FindByCode", ctx, ledger.AccountCodeCOGS).Return(nil, shared.ErrNotFound).Once()
	repos.accounts.On("Create", ctx, mock.AnythingOfType("*ledger.Account")).Return(shared.ErrAlreadyExists)
	repos.accounts.On("FindByCode", ctx, ledger.AccountCodeCOGS).Return(winner, nil).Once()

	account, err := engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeCOGS, "Cost of Goods Sold", ledger.AccountTypeExpense)
	require.NoError(t, err)
	assert.Equal(t, winner, account)
}

func TestEngine_SeedDefaultAccounts(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories()

	repos.accounts.On("FindByCode", ctx, mock.AnythingOfType("string")).Return(nil, shared.ErrNotFound)
	repos.accounts.On("Create", ctx, mock.AnythingOfType("*ledger.Account")).Return(nil)

	require.NoError(t, NewBootstrapEngine().SeedDefaultAccounts(ctx, repos))
	repos.accounts.AssertNumberOfCalls(t, "Create", 5)
}
