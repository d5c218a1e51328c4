package ledger

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository manages the chart of accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, code string) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)
	Create(ctx context.Context, account *Account) error
}

// JournalEntryRepository manages the append-only journal
type JournalEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)
	// FindByIdempotencyKey looks up an entry by its dedicated idempotency key,
	// falling back to the legacy description match for migrated rows.
	FindByIdempotencyKey(ctx context.Context, key string) (*JournalEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]JournalEntry, error)
	Create(ctx context.Context, entry *JournalEntry) error
}
