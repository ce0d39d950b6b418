// Package guard lets aggregates detect instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in aggregates and value objects. Its zero value
// marks an object that was never built by its constructor, e.g. a struct literal
// or a zero row hydrated by the ORM.
//
//	type Stock struct {
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func (s *Stock) Validate() error {
//	    return s.guard.Validate(ErrStockIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed owners and validationError otherwise.
// A nil validationError falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
