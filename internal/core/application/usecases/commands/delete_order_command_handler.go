package commands

import (
	"context"
)

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	serializer Serializer
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, serializer Serializer) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		serializer: serializer,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.serializer.Run(ctx, OrderLockKey(cmd.OrderID().String()), "delete order",
		func(ctx context.Context) error {
			uow := h.uowFactory.Create()
			if err := uow.Begin(ctx); err != nil {
				return err
			}

			defer func() {
				_ = uow.Rollback(ctx)
			}()

			if _, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID()); err != nil {
				return err
			}
			if err := uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
				return err
			}

			return uow.Commit(ctx)
		})
}
