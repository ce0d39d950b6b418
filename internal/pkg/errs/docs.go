// Package errs provides the error vocabulary shared by the domain, the use
// cases and the adapters of the delivery backend.
//
// Every structured error unwraps to one sentinel, so callers classify with
// errors.Is and never inspect messages:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: bad input
//   - ErrObjectNotFound: a missing order, stock entry, settlement or user
//   - ErrVersionIsInvalid: a concurrent writer got there first
//   - ErrTransitionIsInvalid: a status change outside the lifecycle table
//   - ErrPermissionDenied: the actor's role forbids the action
//   - ErrTransient: a retryable lock or serialization failure
//
// Each type has a constructor with and without cause. The cause is kept for
// logging and is reachable through Unwrap.
//
// The HTTP adapter maps the sentinels onto status codes; nothing else in the
// application depends on their text.
package errs
