package persistence

import (
	"context"

	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID, items included
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the invoice under a FOR UPDATE row lock. The lock
// covers the invoice row only; items are read afterwards.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an invoice together with its items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// SumPostedForTarget sums posted payment amounts against the target,
// excluding the given payment. Callers hold a row lock on the target, so the
// sum cannot move under the overpayment check.
func (r *GormPaymentRepository) SumPostedForTarget(ctx context.Context, target billing.PaymentTarget, excludePaymentID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("target_kind = ? AND target_id = ? AND posted_journal_id IS NOT NULL AND id <> ?",
			target.Kind.String(), target.ID, excludePaymentID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Create inserts a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// GormWorkOrderInvoiceRepository implements billing.WorkOrderInvoiceRepository
// using GORM
type GormWorkOrderInvoiceRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderInvoiceRepository creates a new
// GormWorkOrderInvoiceRepository
func NewGormWorkOrderInvoiceRepository(db *gorm.DB) *GormWorkOrderInvoiceRepository {
	return &GormWorkOrderInvoiceRepository{db: db}
}

// FindByID finds a work-order invoice by its ID
func (r *GormWorkOrderInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.WorkOrderInvoice, error) {
	var model models.WorkOrderInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the work-order invoice under a FOR UPDATE row lock
func (r *GormWorkOrderInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.WorkOrderInvoice, error) {
	var model models.WorkOrderInvoiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a work-order invoice
func (r *GormWorkOrderInvoiceRepository) Save(ctx context.Context, invoice *billing.WorkOrderInvoice) error {
	model := models.WorkOrderInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

var (
	_ billing.InvoiceRepository          = (*GormInvoiceRepository)(nil)
	_ billing.PaymentRepository          = (*GormPaymentRepository)(nil)
	_ billing.WorkOrderInvoiceRepository = (*GormWorkOrderInvoiceRepository)(nil)
)
