package queries

import (
	"errors"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var ErrGetUsersQueryIsNotConstructed = errors.New(
	"GetUsersQuery must be created via NewGetUsersQuery constructor",
)

// GetUsersQuery lists the user directory for admins, optionally narrowed to
// one role or to accounts still awaiting approval.
type GetUsersQuery struct {
	role        user.Role
	pendingOnly bool

	guard guard.ConstructorGuard
}

func NewGetUsersQuery(actor user.Actor, role user.Role, pendingOnly bool) (GetUsersQuery, error) {
	if !actor.IsAdmin() {
		return GetUsersQuery{}, errs.NewPermissionDeniedError(actor.Role().String(), "list users")
	}
	if role != user.UnknownRole {
		if err := role.Validate(); err != nil {
			return GetUsersQuery{}, err
		}
	}

	return GetUsersQuery{
		role:        role,
		pendingOnly: pendingOnly,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetUsersQuery) Validate() error {
	return q.guard.Validate(ErrGetUsersQueryIsNotConstructed)
}

type UserView struct {
	ID        kernel.UUID
	Username  string
	Email     string
	Role      user.Role
	Approved  bool
	Phone     string
	City      string
	CreatedAt time.Time
}
