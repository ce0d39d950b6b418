package services_test

import (
	"errors"
	"fmt"
	"testing"

	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/core/domain/services"
	"deliveryno/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var table = map[order.Status][]order.Status{
	order.Pending:   {order.Assigned, order.Canceled},
	order.Assigned:  {order.InTransit, order.Canceled, order.Pending},
	order.InTransit: {order.Delivered, order.NoAnswer, order.Postponed, order.Canceled},
	order.NoAnswer:  {order.InTransit, order.Canceled, order.Postponed},
	order.Postponed: {order.InTransit, order.Canceled},
	order.Delivered: {},
	order.Canceled:  {},
}

func inTable(from, to order.Status) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

func isDriverTarget(s order.Status) bool {
	return s == order.InTransit || s == order.Delivered || s == order.NoAnswer || s == order.Postponed
}

func TestTransitionValidator_TableEdges(t *testing.T) {
	v := services.NewTransitionValidator()

	for from, targets := range table {
		for _, to := range targets {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				require.NoError(t, v.Validate(from, to, user.Admin, false))

				err := v.Validate(from, to, user.Seller, false)
				require.ErrorIs(t, err, errs.ErrPermissionDenied)
				assert.NotErrorIs(t, err, errs.ErrTransitionIsInvalid)

				if isDriverTarget(to) {
					require.NoError(t, v.Validate(from, to, user.Driver, true))
					require.ErrorIs(t, v.Validate(from, to, user.Driver, false), errs.ErrPermissionDenied)
				} else {
					require.ErrorIs(t, v.Validate(from, to, user.Driver, true), errs.ErrPermissionDenied)
				}
			})
		}
	}
}

func TestTransitionValidator_Rejections(t *testing.T) {
	v := services.NewTransitionValidator()

	testCases := []struct {
		name     string
		from     order.Status
		to       order.Status
		role     user.Role
		assigned bool
		want     error
	}{
		{"pending_to_delivered", order.Pending, order.Delivered, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"pending_to_in_transit", order.Pending, order.InTransit, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"postponed_to_no_answer", order.Postponed, order.NoAnswer, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"delivered_to_canceled", order.Delivered, order.Canceled, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"canceled_to_pending", order.Canceled, order.Pending, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"repeat_delivered_by_driver", order.Delivered, order.Delivered, user.Driver, true, errs.ErrTransitionIsInvalid},
		{"repeat_canceled_by_admin", order.Canceled, order.Canceled, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"driver_cancels", order.InTransit, order.Canceled, user.Driver, true, errs.ErrPermissionDenied},
		{"driver_assigns", order.Pending, order.Assigned, user.Driver, true, errs.ErrPermissionDenied},
		{"seller_same_status", order.Pending, order.Pending, user.Seller, false, errs.ErrPermissionDenied},
		{"unknown_role", order.Assigned, order.InTransit, user.UnknownRole, false, errs.ErrPermissionDenied},
		{"unknown_current", order.Unknown, order.Pending, user.Admin, false, errs.ErrTransitionIsInvalid},
		{"out_of_range_target", order.Pending, order.Status(42), user.Admin, false, errs.ErrTransitionIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.from, tc.to, tc.role, tc.assigned)

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransitionValidator_SameStatusIsIdempotent(t *testing.T) {
	v := services.NewTransitionValidator()

	for _, s := range []order.Status{order.Pending, order.Assigned, order.InTransit, order.NoAnswer, order.Postponed} {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, v.Validate(s, s, user.Admin, false))
		})
	}

	require.NoError(t, v.Validate(order.InTransit, order.InTransit, user.Driver, true))
}

func TestTransitionValidator_Properties(t *testing.T) {
	v := services.NewTransitionValidator()
	statuses := order.AllStatuses()
	roles := []user.Role{user.Admin, user.Seller, user.Driver, user.UnknownRole}

	rapid.Check(t, func(t *rapid.T) {
		from := rapid.SampledFrom(statuses).Draw(t, "from")
		to := rapid.SampledFrom(statuses).Draw(t, "to")
		role := rapid.SampledFrom(roles).Draw(t, "role")
		assigned := rapid.Bool().Draw(t, "assigned")

		err := v.Validate(from, to, role, assigned)

		if from != to && !inTable(from, to) && err == nil {
			t.Fatalf("%s -> %s accepted for %s although it is not in the table", from, to, role)
		}
		if from.IsTerminal() && err == nil {
			t.Fatalf("terminal %s admitted %s for %s", from, to, role)
		}
		if role == user.Seller && !errors.Is(err, errs.ErrPermissionDenied) {
			t.Fatalf("seller was not denied for %s -> %s", from, to)
		}
		if role == user.Admin && inTable(from, to) && err != nil {
			t.Fatalf("admin rejected table edge %s -> %s: %v", from, to, err)
		}
		if role == user.Driver && err == nil && (!assigned || !isDriverTarget(to)) {
			t.Fatalf("driver (assigned=%v) allowed to set %s", assigned, to)
		}
	})
}

func TestStatus_TerminalStatesHaveNoEdges(t *testing.T) {
	for _, s := range []order.Status{order.Delivered, order.Canceled} {
		assert.True(t, s.IsTerminal())
		assert.Empty(t, s.Next())
		for _, to := range order.AllStatuses() {
			assert.False(t, s.CanTransitionTo(to))
		}
	}
}
