package commands

import (
	"context"
	"errors"
	"fmt"

	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
)

type BootstrapAdminCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewBootstrapAdminCommandHandler(uowFactory UserUoWFactory) BootstrapAdminCommandHandler {
	return BootstrapAdminCommandHandler{uowFactory: uowFactory}
}

// Handle creates the admin unless it already exists. It reports whether a
// user was created. An existing non-admin user under the same id is an error.
func (h BootstrapAdminCommandHandler) Handle(ctx context.Context, cmd BootstrapAdminCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.UserRepository().Get(ctx, cmd.UserID())
	switch {
	case err == nil:
		if existing.Role() != user.Admin {
			return false, errs.NewValueIsInvalidErrorWithCause("admin id",
				fmt.Errorf("user %s is a %s", existing.ID(), existing.Role()))
		}
		return false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return false, err
	}

	admin, err := user.NewAdmin(cmd.UserID(), cmd.Username(), cmd.Email())
	if err != nil {
		return false, err
	}
	if err = uow.UserRepository().Add(ctx, admin); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
