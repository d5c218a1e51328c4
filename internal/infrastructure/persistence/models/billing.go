package models

import (
	"time"

	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root
type InvoiceModel struct {
	AggregateModel
	DealID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DueDate         *time.Time `gorm:"type:date"`
	Status          string     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Paid            bool       `gorm:"not null;default:false"`
	PostedJournalID *uuid.UUID `gorm:"type:uuid;index"`
	PostedAt        *time.Time
	// Associations
	Items []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		DealID:            m.DealID,
		DueDate:           m.DueDate,
		Status:            billing.InvoiceStatus(m.Status),
		Paid:              m.Paid,
		PostedJournalID:   m.PostedJournalID,
		PostedAt:          m.PostedAt,
		Items:             make([]billing.InvoiceItem, len(m.Items)),
	}
	for i, item := range m.Items {
		inv.Items[i] = item.ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.DealID = inv.DealID
	m.DueDate = inv.DueDate
	m.Status = inv.Status.String()
	m.Paid = inv.Paid
	m.PostedJournalID = inv.PostedJournalID
	m.PostedAt = inv.PostedAt
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModelFromDomain(inv.ID, item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for an invoice line item
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() billing.InvoiceItem {
	return billing.InvoiceItem{
		ID:          m.ID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
	}
}

// InvoiceItemModelFromDomain creates a persistence model from a domain
// InvoiceItem
func InvoiceItemModelFromDomain(invoiceID uuid.UUID, item billing.InvoiceItem) InvoiceItemModel {
	return InvoiceItemModel{
		ID:          item.ID,
		InvoiceID:   invoiceID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
	}
}

// PaymentModel is the persistence model for the Payment aggregate root
type PaymentModel struct {
	AggregateModel
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate     time.Time       `gorm:"type:date;not null"`
	Method          string          `gorm:"type:varchar(20);not null"`
	TargetKind      string          `gorm:"type:varchar(30);not null;index:idx_payments_target"`
	TargetID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_payments_target"`
	PostedJournalID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
		Method:            billing.PaymentMethod(m.Method),
		Target: billing.PaymentTarget{
			Kind: billing.TargetKind(m.TargetKind),
			ID:   m.TargetID,
		},
		PostedJournalID: m.PostedJournalID,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Method = string(p.Method)
	m.TargetKind = p.Target.Kind.String()
	m.TargetID = p.Target.ID
	m.PostedJournalID = p.PostedJournalID
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// WorkOrderInvoiceModel is the persistence model for the WorkOrderInvoice
// aggregate root
type WorkOrderInvoiceModel struct {
	AggregateModel
	WorkOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IssuedDate  time.Time       `gorm:"type:date;not null"`
	DueDate     *time.Time      `gorm:"type:date"`
	IsPaid      bool            `gorm:"not null;default:false"`
	PaidDate    *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (WorkOrderInvoiceModel) TableName() string {
	return "work_order_invoices"
}

// ToDomain converts the persistence model to a domain WorkOrderInvoice
func (m *WorkOrderInvoiceModel) ToDomain() *billing.WorkOrderInvoice {
	return &billing.WorkOrderInvoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		WorkOrderID:       m.WorkOrderID,
		TotalAmount:       m.TotalAmount,
		IssuedDate:        m.IssuedDate,
		DueDate:           m.DueDate,
		IsPaid:            m.IsPaid,
		PaidDate:          m.PaidDate,
	}
}

// FromDomain populates the persistence model from a domain WorkOrderInvoice
func (m *WorkOrderInvoiceModel) FromDomain(w *billing.WorkOrderInvoice) {
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.WorkOrderID = w.WorkOrderID
	m.TotalAmount = w.TotalAmount
	m.IssuedDate = w.IssuedDate
	m.DueDate = w.DueDate
	m.IsPaid = w.IsPaid
	m.PaidDate = w.PaidDate
}

// WorkOrderInvoiceModelFromDomain creates a new persistence model from a
// domain WorkOrderInvoice
func WorkOrderInvoiceModelFromDomain(w *billing.WorkOrderInvoice) *WorkOrderInvoiceModel {
	m := &WorkOrderInvoiceModel{}
	m.FromDomain(w)
	return m
}
