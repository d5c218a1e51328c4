package billing

import (
	"context"
	"testing"
	"time"

	"github.com/fieldpoint/backend/internal/application/posting"
	auditdomain "github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPostingService(f *testFixture) *InvoicePostingService {
	return NewInvoicePostingService(f.scope, posting.NewEngine(), f.auditor, zap.NewNop())
}

func newDraftInvoice(t *testing.T, unitPrice string, quantity int) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(uuid.New(), nil, []billing.InvoiceItem{
		{Description: "Service call", Quantity: quantity, UnitPrice: decimal.RequireFromString(unitPrice)},
	})
	require.NoError(t, err)
	return inv
}

func TestInvoicePostingService_PostInvoice_Success(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	service := newPostingService(f)

	invoice := newDraftInvoice(t, "150.00", 2)
	key := ledger.InvoicePostingKey(invoice.ID)

	f.invoices.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)
	f.journal.On("FindByIdempotencyKey", ctx, key).Return(nil, shared.ErrNotFound)
	receivable := f.expectAccount(ctx, ledger.AccountCodeReceivable, "Accounts Receivable", ledger.AccountTypeAsset)
	revenue := f.expectAccount(ctx, ledger.AccountCodeRevenue, "Revenue", ledger.AccountTypeRevenue)

	var posted *ledger.JournalEntry
	f.journal.On("Create", ctx, mock.AnythingOfType("*ledger.JournalEntry")).
		Run(func(args mock.Arguments) {
			posted = args.Get(1).(*ledger.JournalEntry)
		}).Return(nil)
	f.invoices.On("Save", ctx, invoice).Return(nil)

	actor := uuid.New()
	result, err := service.PostInvoice(ctx, invoice.ID, &actor)
	require.NoError(t, err)

	assert.Equal(t, invoice.ID, result.InvoiceID)
	assert.Equal(t, "300.00", result.Amount.StringFixed(2))
	require.NotNil(t, posted)
	assert.Equal(t, result.JournalEntryID, posted.ID)
	assert.Equal(t, key, posted.IdempotencyKey)
	assert.Equal(t, receivable.ID, posted.DebitAccountID)
	assert.Equal(t, revenue.ID, posted.CreditAccountID)

	assert.True(t, invoice.IsPosted())
	assert.Equal(t, billing.InvoiceStatusPosted, invoice.Status)

	entries := f.auditRepo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, auditdomain.ActionPost, entries[0].Action)
	assert.Equal(t, "Invoice", entries[0].TargetType)
	assert.Equal(t, invoice.ID, entries[0].TargetID)
	assert.Equal(t, actor, *entries[0].UserID)

	f.invoices.AssertExpectations(t)
	f.journal.AssertExpectations(t)
}

func TestInvoicePostingService_PostInvoice_EmptyInvoice(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	service := newPostingService(f)

	invoice, err := billing.NewInvoice(uuid.New(), nil, nil)
	require.NoError(t, err)
	f.invoices.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)

	_, err = service.PostInvoice(ctx, invoice.ID, nil)
	assert.ErrorIs(t, err, ErrEmptyInvoice)

	f.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.auditRepo.Entries())
}

func TestInvoicePostingService_PostInvoice_Replay(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	service := newPostingService(f)

	invoice := newDraftInvoice(t, "99.00", 1)
	require.NoError(t, invoice.MarkPosted(uuid.New()))
	f.invoices.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)

	_, err := service.PostInvoice(ctx, invoice.ID, nil)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPosted)
	f.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoicePostingService_PostInvoice_LegacyRowDetected(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	service := newPostingService(f)

	// The invoice row predates the posted-journal reference but the journal
	// already holds an entry under the canonical description.
	invoice := newDraftInvoice(t, "45.00", 1)
	key := ledger.InvoicePostingKey(invoice.ID)
	legacy, err := ledger.NewJournalEntry(time.Now(), key, uuid.New(), uuid.New(), decimal.NewFromInt(45))
	require.NoError(t, err)

	f.invoices.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)
	f.journal.On("FindByIdempotencyKey", ctx, key).Return(legacy, nil)

	_, err = service.PostInvoice(ctx, invoice.ID, nil)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPosted)
	f.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoicePostingService_PostInvoice_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	service := newPostingService(f)

	missingID := uuid.New()
	f.invoices.On("FindByIDForUpdate", ctx, missingID).Return(nil, shared.ErrNotFound)

	_, err := service.PostInvoice(ctx, missingID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoicePostingService_PostInvoice_ConcurrentInsertMapsToReplay(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture()
	service := newPostingService(f)

	invoice := newDraftInvoice(t, "20.00", 1)
	key := ledger.InvoicePostingKey(invoice.ID)

	f.invoices.On("FindByIDForUpdate", ctx, invoice.ID).Return(invoice, nil)
	f.journal.On("FindByIdempotencyKey", ctx, key).Return(nil, shared.ErrNotFound)
	f.expectAccount(ctx, ledger.AccountCodeReceivable, "Accounts Receivable", ledger.AccountTypeAsset)
	f.expectAccount(ctx, ledger.AccountCodeRevenue, "Revenue", ledger.AccountTypeRevenue)
	f.journal.On("Create", ctx, mock.AnythingOfType("*ledger.JournalEntry")).Return(shared.ErrAlreadyExists)

	_, err := service.PostInvoice(ctx, invoice.ID, nil)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPosted)
	f.invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
