package commands

import (
	"context"

	"deliveryno/internal/pkg/errs"
)

type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	serializer Serializer
}

func NewEditOrderCommandHandler(uowFactory OrderUoWFactory, serializer Serializer) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		serializer: serializer,
	}
}

func (h EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.serializer.Run(ctx, OrderLockKey(cmd.OrderID().String()), "edit order",
		func(ctx context.Context) error {
			return h.edit(ctx, cmd)
		})
}

func (h EditOrderCommandHandler) edit(ctx context.Context, cmd EditOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	// Orders the actor cannot see are reported as missing.
	if !o.VisibleTo(cmd.Actor()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	if err = o.Edit(cmd.Actor(), cmd.Customer(), cmd.Address(), cmd.Location(), cmd.Comment()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
