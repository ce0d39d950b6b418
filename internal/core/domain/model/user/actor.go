package user

import (
	"errors"

	"deliveryno/internal/core/domain/model/kernel"
)

// Actor is the caller of an operation: who they are and in which role they act.
type Actor struct {
	id   kernel.UUID
	role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role == Admin
}

func (a Actor) IsSeller() bool {
	return a.role == Seller
}

func (a Actor) IsDriver() bool {
	return a.role == Driver
}

// Is reports whether the actor is the user with the given id.
func (a Actor) Is(id kernel.UUID) bool {
	return a.id.IsEqual(id)
}

func (a Actor) String() string {
	return a.role.String() + " " + a.id.String()
}
