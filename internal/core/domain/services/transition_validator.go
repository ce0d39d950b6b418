package services

import (
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
)

const actionChangeStatus = "change order status"

// TransitionValidator decides whether a status change is legal for a caller.
//
// Checks run in this order:
//  1. both statuses must be known;
//  2. the role must be allowed to request the target status;
//  3. terminal statuses admit nothing, not even a same-status write;
//  4. a same-status write on a live order is an accepted no-op;
//  5. otherwise (current, requested) must be an edge of the transition table.
//
// Permission failures unwrap to errs.ErrPermissionDenied and table failures to
// errs.ErrTransitionIsInvalid, so callers can tell them apart.
type TransitionValidator struct{}

func NewTransitionValidator() TransitionValidator {
	return TransitionValidator{}
}

// driverTargets are the only statuses a driver may request.
func driverTargets() map[order.Status]struct{} {
	return map[order.Status]struct{}{
		order.InTransit: {},
		order.Delivered: {},
		order.NoAnswer:  {},
		order.Postponed: {},
	}
}

func (TransitionValidator) Validate(current, requested order.Status, role user.Role, isAssignedDriver bool) error {
	if current.Validate() != nil || requested.Validate() != nil {
		return errs.NewTransitionIsInvalidError(current.String(), requested.String())
	}

	if err := authorize(requested, role, isAssignedDriver); err != nil {
		return err
	}

	if current.IsTerminal() {
		return errs.NewTransitionIsInvalidErrorWithCause(
			current.String(), requested.String(), errTerminal{status: current})
	}
	if current == requested {
		return nil
	}
	if !current.CanTransitionTo(requested) {
		return errs.NewTransitionIsInvalidError(current.String(), requested.String())
	}
	return nil
}

func authorize(requested order.Status, role user.Role, isAssignedDriver bool) error {
	switch role {
	case user.Admin:
		return nil
	case user.Driver:
		if !isAssignedDriver {
			return errs.NewPermissionDeniedError("driver", "change status of an order assigned to someone else")
		}
		if _, ok := driverTargets()[requested]; !ok {
			return errs.NewPermissionDeniedError("driver", "set status "+requested.String())
		}
		return nil
	case user.Seller:
		return errs.NewPermissionDeniedError("seller", actionChangeStatus)
	case user.UnknownRole:
	}
	return errs.NewPermissionDeniedError(role.String(), actionChangeStatus)
}

type errTerminal struct {
	status order.Status
}

func (e errTerminal) Error() string {
	return e.status.String() + " is a terminal status"
}
