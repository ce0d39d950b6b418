package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrBootstrapAdminCommandIsNotConstructed = errors.New(
	"BootstrapAdminCommand must be created via NewBootstrapAdminCommand constructor",
)

// BootstrapAdminCommand makes sure the configured admin exists so the
// directory has someone to approve registrations.
type BootstrapAdminCommand struct {
	userID   kernel.UUID
	username string
	email    string

	guard guard.ConstructorGuard
}

func NewBootstrapAdminCommand(userID kernel.UUID, username, email string) (BootstrapAdminCommand, error) {
	if err := userID.Validate(); err != nil {
		return BootstrapAdminCommand{}, errs.NewValueIsRequiredErrorWithCause("admin id", err)
	}
	return BootstrapAdminCommand{
		userID:   userID,
		username: username,
		email:    email,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c BootstrapAdminCommand) Validate() error {
	return c.guard.Validate(ErrBootstrapAdminCommandIsNotConstructed)
}

func (c BootstrapAdminCommand) UserID() kernel.UUID {
	return c.userID
}

func (c BootstrapAdminCommand) Username() string {
	return c.username
}

func (c BootstrapAdminCommand) Email() string {
	return c.email
}
