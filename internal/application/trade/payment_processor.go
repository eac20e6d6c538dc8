package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PaymentListener is notified after a payment attempt has been settled
type PaymentListener interface {
	PaymentCompleted(ctx context.Context, sale *trade.Sale, payment *finance.Payment)
	PaymentFailed(ctx context.Context, saleID uuid.UUID, kind PaymentErrorKind)
}

// PaymentProcessor moves a pending sale to completed: it deducts stock,
// updates customer statistics and records the payment in one transaction.
type PaymentProcessor struct {
	txScope   TransactionScope
	saleRepo  trade.SaleRepository
	listeners []PaymentListener
	logger    *zap.Logger
	now       func() time.Time
}

// PaymentProcessorOption configures a PaymentProcessor
type PaymentProcessorOption func(*PaymentProcessor)

// WithPaymentListener registers a listener for settled payments
func WithPaymentListener(l PaymentListener) PaymentProcessorOption {
	return func(p *PaymentProcessor) {
		if l != nil {
			p.listeners = append(p.listeners, l)
		}
	}
}

// WithClock overrides the time source used for payment ids
func WithClock(now func() time.Time) PaymentProcessorOption {
	return func(p *PaymentProcessor) {
		p.now = now
	}
}

// NewPaymentProcessor creates a PaymentProcessor. saleRepo must not be bound
// to a transaction; it is used to record failures after a rollback.
func NewPaymentProcessor(txScope TransactionScope, saleRepo trade.SaleRepository, logger *zap.Logger, opts ...PaymentProcessorOption) *PaymentProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PaymentProcessor{
		txScope:  txScope,
		saleRepo: saleRepo,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process settles payment for the sale. On failure it returns a
// *PaymentError; for insufficient stock and storage failures the sale is
// marked failed after the transaction has been rolled back.
func (p *PaymentProcessor) Process(ctx context.Context, saleID uuid.UUID, method finance.PaymentMethod) (*trade.Sale, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment method must be one of cash, card, mobile").
			WithDetail("payment_method", "\""+string(method)+"\" is not a valid choice.")
	}

	var (
		completed *trade.Sale
		payment   *finance.Payment
	)
	err := p.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return classifyLoadError(saleID, err)
		}
		if !sale.IsPending() {
			return newPaymentError(PaymentErrorInvalidState, saleID, shared.NewDomainError("INVALID_STATE", "Payment already processed or cancelled"))
		}

		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, sale.ProductID)
		if err != nil {
			return classifyLoadError(saleID, err)
		}
		loadedVersion := product.Version
		if err := product.DeductStock(sale.Quantity); err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				return newPaymentError(PaymentErrorInsufficientStock, saleID, err)
			}
			return err
		}
		product.Version = loadedVersion + 1
		if err := repos.ProductRepo().SaveWithLock(ctx, product, loadedVersion); err != nil {
			return err
		}

		if err := sale.Complete(method); err != nil {
			return err
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, sale.CustomerID)
		if err != nil {
			return classifyLoadError(saleID, err)
		}
		now := p.now()
		if err := customer.RecordPurchase(sale.TotalPrice, now); err != nil {
			return err
		}
		if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
			return err
		}

		record, err := finance.NewPaymentForSale(sale.ID, customer.ID, sale.TotalPrice, method, now)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, record); err != nil {
			return err
		}

		completed = sale
		payment = record
		return nil
	})

	if err != nil {
		pe, ok := AsPaymentError(err)
		if !ok {
			pe = newPaymentError(PaymentErrorStorageFailure, saleID, err)
		}
		p.fail(ctx, pe)
		return nil, pe
	}

	p.logger.Info("sale payment completed",
		zap.String("sale_id", completed.ID.String()),
		zap.String("transaction_id", payment.TransactionID),
		zap.String("method", string(method)),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	for _, l := range p.listeners {
		l.PaymentCompleted(ctx, completed, payment)
	}
	return completed, nil
}

func (p *PaymentProcessor) fail(ctx context.Context, pe *PaymentError) {
	p.logger.Warn("sale payment failed",
		zap.String("sale_id", pe.SaleID.String()),
		zap.String("kind", string(pe.Kind)),
		zap.Error(pe.Err),
	)

	if pe.Kind.MarksSaleFailed() {
		if err := p.markFailed(ctx, pe.SaleID); err != nil {
			p.logger.Error("failed to mark sale as failed",
				zap.String("sale_id", pe.SaleID.String()),
				zap.Error(err),
			)
		}
	}

	for _, l := range p.listeners {
		l.PaymentFailed(ctx, pe.SaleID, pe.Kind)
	}
}

func (p *PaymentProcessor) markFailed(ctx context.Context, saleID uuid.UUID) error {
	sale, err := p.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return err
	}
	if !sale.IsPending() {
		return nil
	}
	if err := sale.MarkFailed(); err != nil {
		return err
	}
	return p.saleRepo.Save(ctx, sale)
}

func classifyLoadError(saleID uuid.UUID, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return newPaymentError(PaymentErrorNotFound, saleID, err)
	}
	return err
}
