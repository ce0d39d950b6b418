// Package kernel provides the value objects shared by every aggregate of the
// delivery backend.
//
// The package includes:
//   - UUID: identifier wrapper over github.com/google/uuid
//   - Address: validated delivery street and city
//   - MapLink: optional delivery location restricted to Google Maps links
//   - DomainEvent and EventRecorder: facts recorded by aggregates and relayed through the outbox
//
// Zero values of UUID and Address are invalid and fail Validate.
package kernel
