package commands

import (
	"context"

	"deliveryno/internal/core/domain/model/order"
)

type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.TransitionPolicy
	serializer Serializer
}

func NewAssignDriverCommandHandler(
	uowFactory OrderUoWFactory, policy order.TransitionPolicy, serializer Serializer,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		serializer: serializer,
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.serializer.Run(ctx, OrderLockKey(cmd.OrderID().String()), "assign driver",
		func(ctx context.Context) error {
			return h.assign(ctx, cmd)
		})
}

func (h AssignDriverCommandHandler) assign(ctx context.Context, cmd AssignDriverCommand) error {
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

	driver, err := uow.UserRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = o.AssignDriver(cmd.Actor(), driver, h.policy); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
