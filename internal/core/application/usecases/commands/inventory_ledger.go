package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/ports"
	"deliveryno/internal/pkg/errs"
)

// InventoryLedger keeps seller stock in step with the order workflow.
//
// CheckAvailability guards order creation and never mutates stock.
// SettleDelivery runs when an order enters delivered: it decrements stock with
// a single conditional update, so concurrent settlements of the same item can
// never drive quantity below zero. A shortfall or a missing item does not fail
// the delivery; it is logged and recorded as a skipped settlement. Each order
// has at most one settlement, which makes repeated calls idempotent.
type InventoryLedger struct {
	logger *slog.Logger
}

func NewInventoryLedger(logger *slog.Logger) InventoryLedger {
	return InventoryLedger{logger: logger.With("component", "InventoryLedger")}
}

// CheckAvailability returns stock.ErrItemNotFound, stock.ErrApprovalPending or
// stock.ErrInsufficientStock when an order of quantity item cannot be placed
// against sellerID's stock.
func (l InventoryLedger) CheckAvailability(
	ctx context.Context, stocks ports.StockRepository, sellerID kernel.UUID, item string, quantity int,
) error {
	entry, err := stocks.FindBySellerAndItem(ctx, sellerID, item)
	if err != nil {
		return err
	}
	return entry.CheckAvailability(quantity)
}

// SettleDelivery decrements stock for a delivered order and records the outcome.
// Only infrastructure failures are returned as errors.
func (l InventoryLedger) SettleDelivery(
	ctx context.Context, stocks ports.StockRepository, settlements ports.SettlementRepository, o *order.Order,
) (*stock.Settlement, error) {
	existing, err := settlements.GetByOrder(ctx, o.ID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	decremented, err := stocks.DecrementIfAvailable(ctx, o.SellerID(), o.Item(), o.Quantity())
	if err != nil {
		return nil, err
	}

	entry, err := stocks.FindBySellerAndItem(ctx, o.SellerID(), o.Item())
	if err != nil && !errors.Is(err, stock.ErrItemNotFound) {
		return nil, err
	}

	var settlement *stock.Settlement
	switch {
	case decremented && entry != nil:
		settlement, err = stock.NewSettled(o.ID(), entry.ID(), o.SellerID(), o.Item(), o.Quantity())
	case entry == nil:
		settlement, err = l.skip(ctx, o, nil, stock.ReasonItemNotFound)
	default:
		id := entry.ID()
		settlement, err = l.skip(ctx, o, &id, stock.ReasonInsufficientStock)
	}
	if err != nil {
		return nil, err
	}

	if err = settlements.Add(ctx, settlement); err != nil {
		return nil, err
	}

	if settlement.IsSettled() {
		l.logger.InfoContext(ctx, "delivery settled",
			"order_id", o.ID().String(),
			"stock_id", entry.ID().String(),
			"quantity", o.Quantity(),
			"remaining", entry.Quantity())
	}
	return settlement, nil
}

func (l InventoryLedger) skip(
	ctx context.Context, o *order.Order, stockID *kernel.UUID, reason stock.SkipReason,
) (*stock.Settlement, error) {
	l.logger.WarnContext(ctx, "settlement skipped",
		"order_id", o.ID().String(),
		"seller_id", o.SellerID().String(),
		"item", o.Item(),
		"quantity", o.Quantity(),
		"reason", string(reason))

	return stock.NewSkipped(o.ID(), stockID, o.SellerID(), o.Item(), o.Quantity(), reason)
}
