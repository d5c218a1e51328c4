package posting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known engine errors. ALREADY_POSTED signals an idempotent replay and
// maps to HTTP 409 at the boundary.
var (
	ErrInvalidAmount  = shared.NewDomainError("INVALID_AMOUNT", "Journal entry amount must be positive")
	ErrSameAccount    = shared.NewDomainError("SAME_ACCOUNT", "Debit and credit accounts must differ")
	ErrAlreadyPosted  = shared.NewDomainError("ALREADY_POSTED", "Journal entry already recorded for this event")
	ErrUnknownAccount = shared.NewDomainError("UNKNOWN_ACCOUNT", "Ledger account does not exist")
)

// Repositories is the slice of the ledger persistence the engine needs.
// Callers pass their transaction-scoped repositories so every entry lands in
// the caller's transaction.
type Repositories interface {
	Accounts() ledger.AccountRepository
	Journal() ledger.JournalEntryRepository
}

// EntryInput describes one balanced journal entry to post
type EntryInput struct {
	EntryDate       time.Time
	Description     string
	DebitAccountID  uuid.UUID
	CreditAccountID uuid.UUID
	Amount          decimal.Decimal
}

// Engine creates balanced journal entries with at-most-once semantics. The
// entry description is the business event's canonical idempotency key; a
// unique index on the dedicated idempotency_key column backstops the
// existence check under concurrency.
type Engine struct {
	allowAccountCreation bool
}

// NewEngine creates a posting engine for production use: the account catalog
// is fixed and unknown codes are rejected.
func NewEngine() *Engine {
	return &Engine{}
}

// NewBootstrapEngine creates a posting engine that may create missing
// accounts on first touch. Used during seeding and in tests.
func NewBootstrapEngine() *Engine {
	return &Engine{allowAccountCreation: true}
}

// PostEntry writes exactly one journal entry in the caller's transaction.
// Replays of the same idempotency key return ErrAlreadyPosted.
func (e *Engine) PostEntry(ctx context.Context, repos Repositories, input EntryInput) (*ledger.JournalEntry, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if input.DebitAccountID == input.CreditAccountID {
		return nil, ErrSameAccount
	}

	existing, err := repos.Journal().FindByIdempotencyKey(ctx, input.Description)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyPosted
	}

	entry, err := ledger.NewJournalEntry(input.EntryDate, input.Description, input.DebitAccountID, input.CreditAccountID, input.Amount)
	if err != nil {
		return nil, err
	}
	if err := repos.Journal().Create(ctx, entry); err != nil {
		// A concurrent poster may have won the race; the unique index on the
		// idempotency key turns that into a duplicate-key error.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrAlreadyPosted
		}
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return entry, nil
}

// GetOrCreateAccount resolves an account by code. The defaults are used only
// on first-touch creation, which is permitted only for bootstrap engines;
// existing rows are returned unchanged.
func (e *Engine) GetOrCreateAccount(ctx context.Context, repos Repositories, code, defaultName string, defaultType ledger.AccountType) (*ledger.Account, error) {
	account, err := repos.Accounts().FindByCode(ctx, code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", code, err)
	}
	if !e.allowAccountCreation {
		return nil, ErrUnknownAccount
	}

	account, err = ledger.NewAccount(code, defaultName, defaultType)
	if err != nil {
		return nil, err
	}
	if err := repos.Accounts().Create(ctx, account); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return repos.Accounts().FindByCode(ctx, code)
		}
		return nil, fmt.Errorf("failed to create account %s: %w", code, err)
	}
	return account, nil
}

// SeedDefaultAccounts installs the default catalog, leaving existing rows
// untouched. Safe to run on every boot.
func (e *Engine) SeedDefaultAccounts(ctx context.Context, repos Repositories) error {
	seeder := &Engine{allowAccountCreation: true}
	for _, def := range ledger.DefaultAccounts() {
		if _, err := seeder.GetOrCreateAccount(ctx, repos, def.Code, def.Name, def.Type); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", def.Code, err)
		}
	}
	return nil
}
