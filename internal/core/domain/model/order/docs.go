// Package order implements the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root, owned by a seller and optionally assigned to a driver
//   - Status: the seven lifecycle states and the fixed transition table
//   - Customer: recipient name and phone
//
// Key business rules:
//   - Orders are created at pending with a positive quantity
//   - Only admins assign drivers; assignment requires an approved driver
//   - Status changes go through a TransitionPolicy; delivered and canceled are terminal
//   - Moving back to pending releases the driver
//   - ChangeStatus reports entry into delivered so stock is settled exactly once
package order
