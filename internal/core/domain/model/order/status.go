package order

import (
	"fmt"
	"strings"

	"deliveryno/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	pending    -> assigned, canceled
//	assigned   -> in_transit, canceled, pending
//	in_transit -> delivered, no_answer, postponed, canceled
//	no_answer  -> in_transit, canceled, postponed
//	postponed  -> in_transit, canceled
//	delivered, canceled: terminal
//
// Role rules are layered on top by services.TransitionValidator.
type Status int

const (
	// Unknown catches uninitialised values and unrecognised codes.
	Unknown Status = iota
	Pending
	Assigned
	InTransit
	Delivered
	Canceled
	NoAnswer
	Postponed
)

func getStatusCodes() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Delivered: "delivered",
		Canceled:  "canceled",
		NoAnswer:  "no_answer",
		Postponed: "postponed",
	}
}

// transitions lists, for every known status, the statuses it may move to.
// Terminal statuses map to an empty set.
func transitions() map[Status]map[Status]struct{} {
	return map[Status]map[Status]struct{}{
		Pending:   {Assigned: {}, Canceled: {}},
		Assigned:  {InTransit: {}, Canceled: {}, Pending: {}},
		InTransit: {Delivered: {}, NoAnswer: {}, Postponed: {}, Canceled: {}},
		NoAnswer:  {InTransit: {}, Canceled: {}, Postponed: {}},
		Postponed: {InTransit: {}, Canceled: {}},
		Delivered: {},
		Canceled:  {},
	}
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{Pending, Assigned, InTransit, Delivered, Canceled, NoAnswer, Postponed}
}

// ParseStatus converts a wire/persisted code such as "in_transit" into a Status.
func ParseStatus(code string) (Status, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, s := range AllStatuses() {
		if getStatusCodes()[s] == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case code used on the wire and in the database.
func (s Status) String() string {
	if str, ok := getStatusCodes()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions()[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether (s, to) is an edge of the lifecycle table.
// Same-status writes are not edges.
func (s Status) CanTransitionTo(to Status) bool {
	_, ok := transitions()[s][to]
	return ok
}

// Next returns the statuses reachable from s in one step.
func (s Status) Next() []Status {
	out := make([]Status, 0, len(transitions()[s]))
	for _, candidate := range AllStatuses() {
		if s.CanTransitionTo(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
