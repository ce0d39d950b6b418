package commands

import (
	"context"

	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
)

// ChangeOrderStatusResult is the state of the order after the change. Settlement
// is set when the order entered delivered in this call.
type ChangeOrderStatusResult struct {
	Status     order.Status
	Settlement *stock.Settlement
}

// ChangeOrderStatusCommandHandler applies a status change and, on delivery,
// settles stock in the same transaction. Writers of one order are serialized.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.TransitionPolicy
	ledger     InventoryLedger
	serializer Serializer
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.TransitionPolicy,
	ledger InventoryLedger,
	serializer Serializer,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		ledger:     ledger,
		serializer: serializer,
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	var result ChangeOrderStatusResult
	err := h.serializer.Run(ctx, OrderLockKey(cmd.OrderID().String()), "change order status",
		func(ctx context.Context) error {
			var err error
			result, err = h.change(ctx, cmd)
			return err
		})
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	return result, nil
}

func (h ChangeOrderStatusCommandHandler) change(
	ctx context.Context, cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	delivered, err := o.ChangeStatus(cmd.Actor(), cmd.Status(), h.policy)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	result := ChangeOrderStatusResult{Status: o.Status()}
	if delivered {
		result.Settlement, err = h.ledger.SettleDelivery(
			ctx, uow.StockRepository(), uow.SettlementRepository(), o)
		if err != nil {
			return ChangeOrderStatusResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	return result, nil
}
