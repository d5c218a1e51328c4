package billing

import (
	"context"
	"sync"

	auditapp "github.com/fieldpoint/backend/internal/application/audit"
	auditdomain "github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumPostedForTarget(ctx context.Context, target billing.PaymentTarget, excludePaymentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, target, excludePaymentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockWorkOrderInvoiceRepository is a mock implementation of
// billing.WorkOrderInvoiceRepository
type MockWorkOrderInvoiceRepository struct {
	mock.Mock
}

func (m *MockWorkOrderInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.WorkOrderInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WorkOrderInvoice), args.Error(1)
}

func (m *MockWorkOrderInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.WorkOrderInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WorkOrderInvoice), args.Error(1)
}

func (m *MockWorkOrderInvoiceRepository) Save(ctx context.Context, invoice *billing.WorkOrderInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

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

// recordingAuditRepo captures activity records appended during a test
type recordingAuditRepo struct {
	mu      sync.Mutex
	entries []auditdomain.ActivityLog
}

func (r *recordingAuditRepo) Create(_ context.Context, log *auditdomain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *recordingAuditRepo) FindByTarget(context.Context, string, uuid.UUID, shared.Filter) ([]auditdomain.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]auditdomain.ActivityLog(nil), r.entries...), nil
}

func (r *recordingAuditRepo) Entries() []auditdomain.ActivityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]auditdomain.ActivityLog(nil), r.entries...)
}

// testFixture wires mocks behind a NoOpTransactionScope
type testFixture struct {
	invoices         *MockInvoiceRepository
	payments         *MockPaymentRepository
	workOrderInvoice *MockWorkOrderInvoiceRepository
	accounts         *MockAccountRepository
	journal          *MockJournalEntryRepository
	auditRepo        *recordingAuditRepo
	scope            *NoOpTransactionScope
	auditor          *auditapp.ActivityLogger
}

func newTestFixture() *testFixture {
	f := &testFixture{
		invoices:         new(MockInvoiceRepository),
		payments:         new(MockPaymentRepository),
		workOrderInvoice: new(MockWorkOrderInvoiceRepository),
		accounts:         new(MockAccountRepository),
		journal:          new(MockJournalEntryRepository),
		auditRepo:        &recordingAuditRepo{},
	}
	f.scope = &NoOpTransactionScope{
		InvoiceRepo:          f.invoices,
		PaymentRepo:          f.payments,
		WorkOrderInvoiceRepo: f.workOrderInvoice,
		AccountRepo:          f.accounts,
		JournalRepo:          f.journal,
	}
	f.auditor = auditapp.NewActivityLogger(f.auditRepo, zap.NewNop())
	return f
}

// expectAccount stubs the catalog lookup for one account code
func (f *testFixture) expectAccount(ctx context.Context, code, name string, accountType ledger.AccountType) *ledger.Account {
	account, err := ledger.NewAccount(code, name, accountType)
	if err != nil {
		panic(err)
	}
	f.accounts.On("FindByCode", ctx, code).Return(account, nil)
	return account
}
