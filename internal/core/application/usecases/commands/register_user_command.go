package commands

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand adds a seller or driver to the directory. Admins are
// only created at bootstrap.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	username string
	email    string
	role     user.Role
	phone    string
	city     string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID, username, email string, role user.Role, phone, city string,
) (RegisterUserCommand, error) {
	if role != user.Seller && role != user.Driver {
		return RegisterUserCommand{}, errs.NewValueIsInvalidError("role")
	}
	if err := userID.Validate(); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:   userID,
		username: username,
		email:    email,
		role:     role,
		phone:    phone,
		city:     city,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RegisterUserCommand) Username() string {
	return c.username
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func (c RegisterUserCommand) Phone() string {
	return c.phone
}

func (c RegisterUserCommand) City() string {
	return c.city
}
