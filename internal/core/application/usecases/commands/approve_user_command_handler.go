package commands

import (
	"context"

	"deliveryno/internal/core/domain/model/user"
)

type ApproveUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewApproveUserCommandHandler(uowFactory UserUoWFactory) ApproveUserCommandHandler {
	return ApproveUserCommandHandler{uowFactory: uowFactory}
}

func (h ApproveUserCommandHandler) Handle(ctx context.Context, cmd ApproveUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = u.Approve(cmd.Actor()); err != nil {
		return nil, err
	}

	if err = uow.UserRepository().Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}
