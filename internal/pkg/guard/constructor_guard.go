// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands to detect instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is zero-valued (and therefore invalid) unless produced by
// NewConstructorGuard. Embed it in a struct and call Validate from the struct's
// own Validate method:
//
//	type PayOrderCommand struct {
//	    orderID kernel.UUID
//	    amount  kernel.Money
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c PayOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
//	}
//
// The guard holds no references and is safe to copy and to read concurrently.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
