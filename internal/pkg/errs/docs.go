// Package errs provides standardized error types for the restaurant order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateError: For operations that are illegal in the current order status
//   - NoPriceAvailableError: For menu items without a price on the requested day
//   - ConcurrentModificationError: For stale version tokens on commit
//   - NumberingUnavailableError: For when no order number could be issued
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error onto the small taxonomy callers branch on, so that
// transport layers never need to know the concrete types.
package errs
