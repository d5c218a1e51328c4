package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditapp "github.com/fieldpoint/backend/internal/application/audit"
	"github.com/fieldpoint/backend/internal/application/posting"
	auditdomain "github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrEmptyInvoice rejects posting of an invoice whose computed total is zero
var ErrEmptyInvoice = shared.NewDomainError("EMPTY_INVOICE", "Invoice total must be positive to post")

// ErrInvoiceAlreadyPosted signals an idempotent replay of invoice posting
var ErrInvoiceAlreadyPosted = shared.NewDomainError("ALREADY_POSTED", "Invoice already posted")

// PostInvoiceResult is the outcome of a successful invoice posting
type PostInvoiceResult struct {
	InvoiceID      uuid.UUID
	JournalEntryID uuid.UUID
	Amount         decimal.Decimal
}

// InvoicePostingService posts finalized invoices to the ledger:
// DR Accounts Receivable, CR Revenue for the computed total.
type InvoicePostingService struct {
	scope   TransactionScope
	engine  *posting.Engine
	auditor *auditapp.ActivityLogger
	log     *zap.Logger
}

// NewInvoicePostingService creates an InvoicePostingService
func NewInvoicePostingService(scope TransactionScope, engine *posting.Engine, auditor *auditapp.ActivityLogger, log *zap.Logger) *InvoicePostingService {
	return &InvoicePostingService{scope: scope, engine: engine, auditor: auditor, log: log}
}

// PostInvoice writes the invoice's journal entry and marks the invoice
// posted, all in one transaction. Replays return ErrInvoiceAlreadyPosted and
// leave no second entry behind.
func (s *InvoicePostingService) PostInvoice(ctx context.Context, invoiceID uuid.UUID, actor *uuid.UUID) (*PostInvoiceResult, error) {
	var result *PostInvoiceResult

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}

		total := invoice.Total()
		if total.LessThanOrEqual(decimal.Zero) {
			return ErrEmptyInvoice
		}
		if invoice.IsPosted() {
			return ErrInvoiceAlreadyPosted
		}

		// Legacy guard: rows posted before the dedicated idempotency key
		// existed are found by their canonical description.
		key := ledger.InvoicePostingKey(invoiceID)
		if existing, err := repos.Journal().FindByIdempotencyKey(ctx, key); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check for prior posting: %w", err)
		} else if existing != nil {
			return ErrInvoiceAlreadyPosted
		}

		receivable, err := s.engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeReceivable, "Accounts Receivable", ledger.AccountTypeAsset)
		if err != nil {
			return err
		}
		revenue, err := s.engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeRevenue, "Revenue", ledger.AccountTypeRevenue)
		if err != nil {
			return err
		}

		entry, err := s.engine.PostEntry(ctx, repos, posting.EntryInput{
			EntryDate:       time.Now(),
			Description:     key,
			DebitAccountID:  receivable.ID,
			CreditAccountID: revenue.ID,
			Amount:          total,
		})
		if err != nil {
			if errors.Is(err, posting.ErrAlreadyPosted) {
				return ErrInvoiceAlreadyPosted
			}
			return err
		}

		if err := invoice.MarkPosted(entry.ID); err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		result = &PostInvoiceResult{
			InvoiceID:      invoiceID,
			JournalEntryID: entry.ID,
			Amount:         entry.Amount.Amount(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actor, auditdomain.ActionPost, "Invoice", invoiceID,
		fmt.Sprintf("Invoice posted to ledger for %s", result.Amount.StringFixed(2)))
	s.log.Info("invoice posted",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("journal_entry_id", result.JournalEntryID.String()),
		zap.String("amount", result.Amount.StringFixed(2)))

	return result, nil
}
