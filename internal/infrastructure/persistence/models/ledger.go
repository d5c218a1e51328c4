package models

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AccountModel is the persistence model for the Account aggregate root
type AccountModel struct {
	AggregateModel
	Code string `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_code"`
	Name string `gorm:"type:varchar(200);not null"`
	Type string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Type:              ledger.AccountType(m.Type),
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Code = a.Code
	m.Name = a.Name
	m.Type = a.Type.String()
}

// AccountModelFromDomain creates a new persistence model from a domain Account
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// JournalEntryModel is the persistence model for the immutable JournalEntry.
// IdempotencyKey carries a unique index; a concurrent duplicate insert
// surfaces as a constraint violation rather than a second entry.
type JournalEntryModel struct {
	BaseModel
	EntryDate       time.Time         `gorm:"type:date;not null;index"`
	Description     string            `gorm:"type:varchar(500);not null;index"`
	IdempotencyKey  string            `gorm:"type:varchar(500);not null;uniqueIndex:idx_journal_entries_idempotency_key"`
	DebitAccountID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	CreditAccountID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount          valueobject.Money `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry
func (m *JournalEntryModel) ToDomain() *ledger.JournalEntry {
	return &ledger.JournalEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		IdempotencyKey:  m.IdempotencyKey,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Amount:          m.Amount,
	}
}

// FromDomain populates the persistence model from a domain JournalEntry
func (m *JournalEntryModel) FromDomain(e *ledger.JournalEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.EntryDate = e.EntryDate
	m.Description = e.Description
	m.IdempotencyKey = e.IdempotencyKey
	m.DebitAccountID = e.DebitAccountID
	m.CreditAccountID = e.CreditAccountID
	m.Amount = e.Amount
}

// JournalEntryModelFromDomain creates a new persistence model from a domain
// JournalEntry
func JournalEntryModelFromDomain(e *ledger.JournalEntry) *JournalEntryModel {
	m := &JournalEntryModel{}
	m.FromDomain(e)
	return m
}
