package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrApproveUserCommandIsNotConstructed = errors.New(
	"ApproveUserCommand must be created via NewApproveUserCommand constructor",
)

type ApproveUserCommand struct { //nolint:recvcheck //using for validation
	actor  user.Actor
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveUserCommand(actor user.Actor, userID kernel.UUID) (ApproveUserCommand, error) {
	if !actor.IsAdmin() {
		return ApproveUserCommand{}, errs.NewPermissionDeniedError(actor.Role().String(), "approve users")
	}
	if err := userID.Validate(); err != nil {
		return ApproveUserCommand{}, err
	}

	return ApproveUserCommand{
		actor:  actor,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveUserCommand) Validate() error {
	return c.guard.Validate(ErrApproveUserCommandIsNotConstructed)
}

func (c ApproveUserCommand) Actor() user.Actor {
	return c.actor
}

func (c ApproveUserCommand) UserID() kernel.UUID {
	return c.userID
}
