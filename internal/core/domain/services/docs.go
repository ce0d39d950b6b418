// Package services provides domain services whose rules span more than a
// single aggregate field.
//
// The package includes:
//   - TransitionValidator: the order lifecycle validator, combining the status
//     transition table with the role rules for admins, sellers and drivers
package services
