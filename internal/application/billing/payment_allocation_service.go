package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditapp "github.com/fieldpoint/backend/internal/application/audit"
	"github.com/fieldpoint/backend/internal/application/posting"
	auditdomain "github.com/fieldpoint/backend/internal/domain/audit"
	"github.com/fieldpoint/backend/internal/domain/billing"
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Allocation statuses reported on the wire
const (
	AllocationStatusPosted        = "posted"
	AllocationStatusAlreadyPosted = "already-posted"
)

// Settlement statuses reported on the wire
const (
	SettlementStatusPartial = "partial"
	SettlementStatusPaid    = "paid"
	SettlementStatusPosted  = "posted"
)

// ErrPaymentAlreadyPosted signals an idempotent replay of a payment
// allocation. The accompanying result carries the already-posted payload.
var ErrPaymentAlreadyPosted = shared.NewDomainError("ALREADY_POSTED", "Payment already posted")

// OverpaymentError rejects an allocation that would push the settled total
// past the target total. No journal entry is written.
type OverpaymentError struct {
	TotalDue         decimal.Decimal
	PreviouslyPaid   decimal.Decimal
	AttemptedPayment decimal.Decimal
}

// Error implements the error interface
func (e *OverpaymentError) Error() string {
	return "Payment exceeds open balance"
}

// AllocationResult is the outcome of a payment allocation
type AllocationResult struct {
	PaymentID        uuid.UUID
	JournalEntryID   *uuid.UUID
	AllocatedAmount  decimal.Decimal
	AllocationStatus string
	// OpenBalance is nil for zero-total targets
	OpenBalance *decimal.Decimal
	Status      string
}

// PaymentAllocationService applies a payment to its target document:
// DR Cash, CR Accounts Receivable, with partial/full settlement tracking and
// an overpayment guard evaluated under a row lock on the target.
type PaymentAllocationService struct {
	scope   TransactionScope
	engine  *posting.Engine
	auditor *auditapp.ActivityLogger
	log     *zap.Logger
}

// NewPaymentAllocationService creates a PaymentAllocationService
func NewPaymentAllocationService(scope TransactionScope, engine *posting.Engine, auditor *auditapp.ActivityLogger, log *zap.Logger) *PaymentAllocationService {
	return &PaymentAllocationService{scope: scope, engine: engine, auditor: auditor, log: log}
}

// AllocatePayment posts the payment's journal entry and updates the target's
// settlement state in one transaction. A replay returns
// ErrPaymentAlreadyPosted together with a result describing the prior
// allocation.
func (s *PaymentAllocationService) AllocatePayment(ctx context.Context, paymentID uuid.UUID, actor *uuid.UUID) (*AllocationResult, error) {
	var result *AllocationResult

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		// Lock the target row first: the previously-paid sum below must
		// serialize with every other allocation against the same target.
		targetTotal, err := s.lockTarget(ctx, repos, payment.Target)
		if err != nil {
			return err
		}

		key := ledger.PaymentPostingKey(paymentID)
		existing, err := repos.Journal().FindByIdempotencyKey(ctx, key)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check for prior posting: %w", err)
		}
		if existing != nil || payment.IsPosted() {
			result = &AllocationResult{
				PaymentID:        paymentID,
				AllocatedAmount:  payment.Amount,
				AllocationStatus: AllocationStatusAlreadyPosted,
			}
			return ErrPaymentAlreadyPosted
		}

		previouslyPaid, err := repos.Payments().SumPostedForTarget(ctx, payment.Target, paymentID)
		if err != nil {
			return fmt.Errorf("failed to sum prior payments: %w", err)
		}
		newTotalPaid := previouslyPaid.Add(payment.Amount)

		if targetTotal.IsPositive() && newTotalPaid.GreaterThan(targetTotal) {
			return &OverpaymentError{
				TotalDue:         targetTotal,
				PreviouslyPaid:   previouslyPaid,
				AttemptedPayment: payment.Amount,
			}
		}

		cash, err := s.engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeCash, "Cash", ledger.AccountTypeAsset)
		if err != nil {
			return err
		}
		receivable, err := s.engine.GetOrCreateAccount(ctx, repos, ledger.AccountCodeReceivable, "Accounts Receivable", ledger.AccountTypeAsset)
		if err != nil {
			return err
		}

		entry, err := s.engine.PostEntry(ctx, repos, posting.EntryInput{
			EntryDate:       time.Now(),
			Description:     key,
			DebitAccountID:  cash.ID,
			CreditAccountID: receivable.ID,
			Amount:          payment.Amount,
		})
		if err != nil {
			if errors.Is(err, posting.ErrAlreadyPosted) {
				result = &AllocationResult{
					PaymentID:        paymentID,
					AllocatedAmount:  payment.Amount,
					AllocationStatus: AllocationStatusAlreadyPosted,
				}
				return ErrPaymentAlreadyPosted
			}
			return err
		}

		if err := payment.MarkPosted(entry.ID); err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		status, err := s.settleTarget(ctx, repos, payment.Target, targetTotal, newTotalPaid)
		if err != nil {
			return err
		}

		result = &AllocationResult{
			PaymentID:        paymentID,
			JournalEntryID:   &entry.ID,
			AllocatedAmount:  payment.Amount,
			AllocationStatus: AllocationStatusPosted,
			Status:           status,
		}
		if targetTotal.IsPositive() {
			openBalance := targetTotal.Sub(newTotalPaid)
			result.OpenBalance = &openBalance
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentAlreadyPosted) {
			return result, err
		}
		return nil, err
	}

	s.auditor.Record(ctx, actor, auditdomain.ActionUpdate, "Payment", paymentID,
		fmt.Sprintf("Payment of %s allocated (%s)", result.AllocatedAmount.StringFixed(2), result.Status))
	s.log.Info("payment allocated",
		zap.String("payment_id", paymentID.String()),
		zap.String("amount", result.AllocatedAmount.StringFixed(2)),
		zap.String("status", result.Status))

	return result, nil
}

// lockTarget loads the payment's target under a row lock and returns its
// total. The lock is held until the surrounding transaction ends.
func (s *PaymentAllocationService) lockTarget(ctx context.Context, repos TransactionalRepositories, target billing.PaymentTarget) (decimal.Decimal, error) {
	switch target.Kind {
	case billing.TargetKindInvoice:
		invoice, err := repos.Invoices().FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return decimal.Zero, err
		}
		return invoice.Total(), nil
	case billing.TargetKindWorkOrderInvoice:
		woInvoice, err := repos.WorkOrderInvoices().FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return decimal.Zero, err
		}
		return woInvoice.TotalAmount, nil
	default:
		return decimal.Zero, shared.NewDomainError("INVALID_TARGET", "Payment target kind is not valid")
	}
}

// settleTarget updates the target's settlement state and returns the wire
// status string: "paid", "partial", or "posted" for zero-total targets.
func (s *PaymentAllocationService) settleTarget(ctx context.Context, repos TransactionalRepositories, target billing.PaymentTarget, targetTotal, newTotalPaid decimal.Decimal) (string, error) {
	if !targetTotal.IsPositive() {
		return SettlementStatusPosted, nil
	}
	fullyPaid := newTotalPaid.GreaterThanOrEqual(targetTotal)

	switch target.Kind {
	case billing.TargetKindInvoice:
		invoice, err := repos.Invoices().FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return "", err
		}
		invoice.RecordSettlement(newTotalPaid)
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return "", fmt.Errorf("failed to save invoice: %w", err)
		}
	case billing.TargetKindWorkOrderInvoice:
		woInvoice, err := repos.WorkOrderInvoices().FindByIDForUpdate(ctx, target.ID)
		if err != nil {
			return "", err
		}
		if fullyPaid {
			woInvoice.MarkPaid(time.Now())
			if err := repos.WorkOrderInvoices().Save(ctx, woInvoice); err != nil {
				return "", fmt.Errorf("failed to save work order invoice: %w", err)
			}
		}
	}

	if fullyPaid {
		return SettlementStatusPaid, nil
	}
	return SettlementStatusPartial, nil
}
