package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// translateError maps GORM errors onto the shared domain errors
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds an account by its catalog code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists accounts with pagination
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.AccountModel{}), filter)
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Create inserts a new account. A duplicate code surfaces as
// shared.ErrAlreadyExists via the unique index.
func (r *GormAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// GormJournalEntryRepository implements ledger.JournalEntryRepository using
// GORM. The journal is append-only: no update or delete paths exist.
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// FindByID finds a journal entry by its ID
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIdempotencyKey finds an entry by its idempotency key. Rows posted
// before the dedicated column existed are matched by description.
func (r *GormJournalEntryRepository) FindByIdempotencyKey(ctx context.Context, key string) (*ledger.JournalEntry, error) {
	var model models.JournalEntryModel
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ? OR description = ?", key, key).
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists journal entries with pagination
func (r *GormJournalEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.JournalEntry, error) {
	var entryModels []models.JournalEntryModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.JournalEntryModel{}), filter)
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.JournalEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Create inserts a new journal entry. A concurrent insert with the same
// idempotency key surfaces as shared.ErrAlreadyExists via the unique index.
func (r *GormJournalEntryRepository) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	model := models.JournalEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

var (
	_ ledger.AccountRepository      = (*GormAccountRepository)(nil)
	_ ledger.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
)
