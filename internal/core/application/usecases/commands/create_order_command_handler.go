package commands

import (
	"context"
	"fmt"

	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
)

// CreateOrderCommandHandler checks the seller's stock and stores a pending order.
// Stock is not reserved; it is decremented only when the order is delivered.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     InventoryLedger
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, ledger InventoryLedger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.Actor().IsAdmin() {
		seller, err := uow.UserRepository().Get(ctx, cmd.SellerID())
		if err != nil {
			return err
		}
		if seller.Role() != user.Seller {
			return errs.NewValueIsInvalidErrorWithCause("seller", fmt.Errorf("user %s is a %s", seller.ID(), seller.Role()))
		}
	}

	if err := h.ledger.CheckAvailability(
		ctx, uow.StockRepository(), cmd.SellerID(), cmd.Item(), cmd.Quantity(),
	); err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(), cmd.SellerID(), cmd.Customer(), cmd.Address(), cmd.Location(),
		cmd.Item(), cmd.Quantity(), cmd.Comment(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
